package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Markdowner is implemented by values that have a markdown rendering.
type Markdowner interface {
	Markdown() string
}

// Options controls Write.
type Options struct {
	// Format is one of json (default), edn, markdown (md).
	Format string
	Pretty bool
	// Render pipes markdown output through the terminal renderer.
	Render bool
	// Width is the wrap width for rendered markdown (0 = 80).
	Width int
}

// Write writes v in the requested format.
func Write(w io.Writer, v any, opts Options) error {
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "json":
		return WriteJSON(w, v, opts.Pretty)
	case "edn":
		return WriteEDN(w, v, opts.Pretty)
	case "markdown", "md":
		m, ok := v.(Markdowner)
		if !ok {
			return fmt.Errorf("markdown output is not supported for %T", v)
		}
		md := m.Markdown()
		if opts.Render {
			out, err := RenderMarkdown(md, opts.Width)
			if err != nil {
				return err
			}
			md = out
		}
		_, err := io.WriteString(w, md)
		return err
	default:
		return fmt.Errorf("unknown format: %s", opts.Format)
	}
}

// WriteJSON writes strict JSON, one document per call.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
