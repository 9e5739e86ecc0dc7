package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterPlainOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, ThemeByName("classic"), "never")

	p.Info("Adding: %s", "buy milk")
	p.Heading("your todos:")
	p.Fail("Please provide only one action at a time")

	if got, want := out.String(), "Adding: buy milk\nyour todos:\n"; got != want {
		t.Errorf("out = %q, want %q", got, want)
	}
	if got, want := errOut.String(), "✖ Please provide only one action at a time\n"; got != want {
		t.Errorf("errOut = %q, want %q", got, want)
	}
}

func TestPrinterForcedColor(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ThemeByName("classic"), "always")
	p.Info("Adding: %s", "x")
	if !strings.Contains(out.String(), "\x1b[") {
		t.Errorf("color=always produced no escape codes: %q", out.String())
	}
}

func TestMonoThemeNeverColors(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, ThemeByName("mono"), "always")
	p.Info("Adding: %s", "x")
	if strings.Contains(out.String(), "\x1b[") {
		t.Errorf("mono theme produced escape codes: %q", out.String())
	}
}

func TestThemeByName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"neon", "neon"},
		{"MONO", "mono"},
		{"classic", "classic"},
		{"unknown", "classic"},
	}
	for _, tt := range tests {
		if got := ThemeByName(tt.in).Name; got != tt.want {
			t.Errorf("ThemeByName(%q).Name = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name               string
		done, total, width int
		want               string
	}{
		{"empty list", 0, 0, 10, "░░░░░░░░░░   0%"},
		{"half", 1, 2, 10, "█████░░░░░  50%"},
		{"all", 3, 3, 5, "█████ 100%"},
		{"min width", 1, 1, 2, "█████ 100%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
				t.Errorf("ProgressBar = %q, want %q", got, tt.want)
			}
		})
	}
}
