package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The list must stay readable on light and dark terminals, so colors are
// adaptive and faint styling is only used on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted        lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg   lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg   lipgloss.TerminalColor = ac("235", "255")
	colorInputBg      lipgloss.TerminalColor = ac("254", "234")
	colorAccent       lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg     lipgloss.TerminalColor = ac("255", "235")
	colorFlashErrorBg lipgloss.TerminalColor = ac("196", "160")
	colorFlashInfoFg  lipgloss.TerminalColor = ac("28", "114")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleEditing() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func styleFlash(isErr bool) lipgloss.Style {
	if isErr {
		return lipgloss.NewStyle().Background(colorFlashErrorBg).Foreground(colorAccentFg).Padding(0, 1)
	}
	return lipgloss.NewStyle().Foreground(colorFlashInfoFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR, which can disable colors in a TUI;
// here only NO_COLOR is honored and the terminal's capabilities decide the rest.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile == termenv.ANSI {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference picks the light or dark palette when the terminal
// does not report its background reliably.
//
// Priority: TODO_TUI_THEME=light|dark|auto, then the COLORFGBG heuristic.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TODO_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	// COLORFGBG is usually "fg;bg"; the last segment is the background.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
