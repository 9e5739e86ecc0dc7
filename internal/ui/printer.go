// Package ui renders terminal output in the configured theme.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes confirmations to out and failures to errOut.
type Printer struct {
	out, errOut io.Writer
	outStyles   Styles
	errStyles   Styles
}

// NewRenderer returns a renderer for w honoring color: auto, always or never.
func NewRenderer(w io.Writer, theme Theme, color string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch {
	case theme.Plain, color == "never":
		r.SetColorProfile(termenv.Ascii)
	case color == "always":
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

func NewPrinter(out, errOut io.Writer, theme Theme, color string) *Printer {
	return &Printer{
		out:       out,
		errOut:    errOut,
		outStyles: theme.Styles(NewRenderer(out, theme, color)),
		errStyles: theme.Styles(NewRenderer(errOut, theme, color)),
	}
}

// Out is the writer for plain output such as listings.
func (p *Printer) Out() io.Writer { return p.out }

// Info prints a neutral progress line, e.g. "Adding: buy milk".
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, p.outStyles.Accent.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.errOut, p.errStyles.Error.Render("✖ "+msg))
}

func (p *Printer) Heading(msg string) {
	fmt.Fprintln(p.out, p.outStyles.Title.Render(msg))
}

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}
