package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the menutrail banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{` _ __ ___   ___ _ __  _   _ _| |_ _ __ __ _(_) |`, "#34d399"},
		{`| '_ ' _ \ / _ \ '_ \| | | |_   _| '__/ _' | | |`, "#2dd4bf"},
		{`| | | | | |  __/ | | | |_| | | | | | | (_| | | |`, "#22d3ee"},
		{`|_| |_| |_|\___|_| |_|\__,_| |_| |_|  \__,_|_|_|`, "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
