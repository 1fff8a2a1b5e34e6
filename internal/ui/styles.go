// Package ui implements the interactive tagging dashboard: tabbed pages for
// the audit overview, untagged resources, filter exploration, and the tag
// remediation editor.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color scheme for one terminal background.
type Theme struct {
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#1a2536"),
		Accent:     lipgloss.Color("#00877c"),
		Muted:      lipgloss.Color("#8a919c"),
		Warning:    lipgloss.Color("#b58900"),
		Danger:     lipgloss.Color("#c0392b"),
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#e8e8e8"),
		Accent:     lipgloss.Color("#2dd4bf"),
		Muted:      lipgloss.Color("#6b7280"),
		Warning:    lipgloss.Color("#fbbf24"),
		Danger:     lipgloss.Color("#f87171"),
		IsDark:     true,
	}
}

// ResolveTheme maps a configured theme name to a Theme. "auto" inspects
// COLORFGBG the way terminals advertise light backgrounds; anything else
// falls back to dark.
func ResolveTheme(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		if v := os.Getenv("COLORFGBG"); v != "" {
			parts := strings.Split(v, ";")
			if len(parts) > 0 && parts[len(parts)-1] == "15" {
				return LightTheme()
			}
		}
		return DarkTheme()
	}
}

// Styles bundles the rendered text styles derived from a theme.
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Warning  lipgloss.Style
	Danger   lipgloss.Style
	TabOn    lipgloss.Style
	TabOff   lipgloss.Style
	StatusOK lipgloss.Style
}

// NewStyles derives the style set for a theme.
func NewStyles(th Theme) Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(th.Foreground).Underline(true),
		Body:     lipgloss.NewStyle().Foreground(th.Foreground),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(th.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(th.Muted),
		Warning:  lipgloss.NewStyle().Foreground(th.Warning),
		Danger:   lipgloss.NewStyle().Foreground(th.Danger),
		TabOn:    lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Padding(0, 1),
		TabOff:   lipgloss.NewStyle().Foreground(th.Muted).Padding(0, 1),
		StatusOK: lipgloss.NewStyle().Foreground(th.Accent),
	}
}
