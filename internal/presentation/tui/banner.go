package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the transposer ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _", "#818cf8"},
		{" | |_ _ __ __ _ _ __  ___ _ __   ___  ___  ___ _ __", "#a78bfa"},
		{" | __| '__/ _` | '_ \\/ __| '_ \\ / _ \\/ __|/ _ \\ '__|", "#c084fc"},
		{" | |_| | | (_| | | | \\__ \\ |_) | (_) \\__ \\  __/ |", "#e879f9"},
		{"  \\__|_|  \\__,_|_| |_|___/ .__/ \\___/|___/\\___|_|", "#f472b6"},
		{"                         |_|", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
