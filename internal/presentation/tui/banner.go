package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"        _             _",
	" _ __  | | __ _ _ __ | |_ _ __ __ _  ___ ___",
	"| '_ \\ | |/ _` | '_ \\| __| '__/ _` |/ __/ _ \\",
	"| |_) || | (_| | | | | |_| | | (_| | (_|  __/",
	"| .__/ |_|\\__,_|_| |_|\\__|_|  \\__,_|\\___\\___|",
	"|_|",
}

var bannerColors = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa", "#818cf8"}

// PrintBanner writes the plantrace banner to w, colored when the terminal
// supports it.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  "+version).Faint())
	}
	fmt.Fprintln(w)
}
