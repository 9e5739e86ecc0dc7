package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and the frame border.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending lipgloss.TerminalColor
	BoxUnchecked, BoxChecked, Flag                string
	Border                                        lipgloss.Border
	Plain                                         bool // no colors at all
}

// ThemeByName returns the named theme; unknown names get classic.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: lipgloss.Color("13"), Muted: lipgloss.Color("8"), Accent: lipgloss.Color("14"),
			Success: lipgloss.Color("10"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("11"),
			BoxUnchecked: "◻", BoxChecked: "◼", Flag: "★",
			Border: lipgloss.RoundedBorder(),
		}
	case "mono":
		return Theme{
			Name:  "mono",
			Title: lipgloss.NoColor{}, Muted: lipgloss.NoColor{}, Accent: lipgloss.NoColor{},
			Success: lipgloss.NoColor{}, Error: lipgloss.NoColor{}, Pending: lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]", Flag: "!",
			Border: lipgloss.ASCIIBorder(),
			Plain:  true,
		}
	default:
		return Theme{
			Name:  "classic",
			Title: lipgloss.NoColor{}, Muted: lipgloss.Color("8"), Accent: lipgloss.Color("12"),
			Success: lipgloss.Color("42"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("214"),
			BoxUnchecked: "☐", BoxChecked: "☑", Flag: "!",
			Border: lipgloss.NormalBorder(),
		}
	}
}

// Styles are a theme bound to one renderer.
type Styles struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Frame                         lipgloss.Style
}

// Styles binds the theme's palette to r.
func (t Theme) Styles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(t.Title),
		Muted:    r.NewStyle().Foreground(t.Muted).Faint(true),
		Accent:   r.NewStyle().Foreground(t.Accent),
		Success:  r.NewStyle().Foreground(t.Success),
		Error:    r.NewStyle().Foreground(t.Error).Bold(true),
		Pending:  r.NewStyle().Foreground(t.Pending),
		Selected: r.NewStyle().Bold(true).Reverse(true),
		Done:     r.NewStyle().Faint(true).Strikethrough(true),
		Frame: r.NewStyle().
			Border(t.Border).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}
