// Package script parses and applies scripted item list actions.
//
// Three encodings are accepted. Text scripts hold one action per line:
//
//	add Buy milk
//	edit 1
//	type Buy oat milk
//	commit
//	delete 1
//
// JSON and YAML scripts hold a list of {op, text, id} objects and are
// validated against the embedded JSON schema before use.
package script

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

type Op string

const (
	OpAdd    Op = "add"
	OpEdit   Op = "edit"
	OpType   Op = "type"
	OpCommit Op = "commit"
	OpCancel Op = "cancel"
	OpDelete Op = "delete"
)

type Action struct {
	Op   Op     `json:"op" yaml:"op"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	ID   int    `json:"id,omitempty" yaml:"id,omitempty"`

	// Line is the 1-based source line for text scripts (0 otherwise).
	Line int `json:"-" yaml:"-"`
}

func (a Action) String() string {
	switch a.Op {
	case OpAdd, OpType:
		return fmt.Sprintf("%s %q", a.Op, a.Text)
	case OpEdit, OpDelete:
		return fmt.Sprintf("%s %d", a.Op, a.ID)
	default:
		return string(a.Op)
	}
}

type Encoding string

const (
	EncodingText Encoding = "text"
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// EncodingForPath picks an encoding from a file extension.
func EncodingForPath(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return EncodingJSON
	case ".yaml", ".yml":
		return EncodingYAML
	default:
		return EncodingText
	}
}

// Sniff guesses the encoding of unnamed input (stdin): a leading '[' is
// JSON, a leading "- " is YAML, anything else is text.
func Sniff(b []byte) Encoding {
	trimmed := bytes.TrimSpace(b)
	switch {
	case bytes.HasPrefix(trimmed, []byte("[")):
		return EncodingJSON
	case bytes.HasPrefix(trimmed, []byte("- ")), bytes.HasPrefix(trimmed, []byte("---")):
		return EncodingYAML
	default:
		return EncodingText
	}
}

// ParseError reports a malformed text script line.
type ParseError struct {
	Line int
	Msg  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ErrInvalidScript wraps schema validation failures.
var ErrInvalidScript = errors.New("invalid script")

func Parse(r io.Reader, enc Encoding) ([]Action, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch enc {
	case EncodingJSON:
		return parseJSON(b)
	case EncodingYAML:
		return parseYAML(b)
	case EncodingText, "":
		return parseText(b)
	default:
		return nil, fmt.Errorf("unknown script encoding: %s", enc)
	}
}

func parseText(b []byte) ([]Action, error) {
	var out []Action
	sc := bufio.NewScanner(bytes.NewReader(b))
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		verb, rest := splitVerb(raw)
		a := Action{Op: Op(strings.ToLower(verb)), Line: line}
		switch a.Op {
		case OpAdd, OpType:
			// Text is kept verbatim; the store decides what counts as empty.
			a.Text = rest
		case OpEdit, OpDelete:
			id, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil || id < 1 {
				return nil, ParseError{Line: line, Msg: fmt.Sprintf("%s needs a positive item id, got %q", a.Op, strings.TrimSpace(rest))}
			}
			a.ID = id
		case OpCommit, OpCancel:
			if strings.TrimSpace(rest) != "" {
				return nil, ParseError{Line: line, Msg: fmt.Sprintf("%s takes no arguments", a.Op)}
			}
		default:
			return nil, ParseError{Line: line, Msg: fmt.Sprintf("unknown action %q", verb)}
		}
		out = append(out, a)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// splitVerb cuts a text line at its first whitespace run after the verb.
// Only the single separator rune is dropped, so the remainder of the line
// keeps its own leading whitespace.
func splitVerb(line string) (verb, rest string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return line[:i], line[i+size:]
}

func parseJSON(b []byte) ([]Action, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json script: %w", err)
	}
	return decodeValidated(doc)
}

func parseYAML(b []byte) ([]Action, error) {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml script: %w", err)
	}
	if raw == nil {
		raw = []any{}
	}
	// Normalize through JSON so the schema sees the same value shapes for
	// both encodings.
	jb, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("decode yaml script: %w", err)
	}
	return parseJSON(jb)
}

func decodeValidated(doc any) ([]Action, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidScript, describeValidation(err))
	}
	jb, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out []Action
	if err := json.Unmarshal(jb, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func describeValidation(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	loc := leaf.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, leaf.Message)
}

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://todo-cli.dev/schema/script.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft7
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load script schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Schema returns the embedded JSON schema for JSON/YAML scripts.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}
