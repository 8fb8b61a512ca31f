package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Flowant ASCII art banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Warm gradient (Amber/Orange/Red), one color per line
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _                            _   ", "#fbbf24"},
		{"  / _| | _____      ____ _ _ __ | |_ ", "#f59e0b"},
		{" | |_| |/ _ \\ \\ /\\ / / _` | '_ \\| __|", "#f97316"},
		{" |  _| | (_) \\ V  V / (_| | | | | |_ ", "#ea580c"},
		{" |_| |_|\\___/ \\_/\\_/ \\__,_|_| |_|\\__|", "#dc2626"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String(" v"+version).Faint())
	fmt.Fprintln(w)
}
