package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the dateq ASCII art banner with the version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Teal-to-violet gradient, one color per row
	lines := []struct {
		text  string
		color string
	}{
		{"     _       _             ", "#2dd4bf"},
		{"  __| | __ _| |_ ___  __ _ ", "#38bdf8"},
		{" / _` |/ _` | __/ _ \\/ _` |", "#60a5fa"},
		{"| (_| | (_| | ||  __/ (_| |", "#818cf8"},
		{" \\__,_|\\__,_|\\__\\___|\\__, |", "#a78bfa"},
		{"                         |_|", "#c084fc"},
	}

	fmt.Println()
	for _, line := range lines {
		fmt.Println(termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Println(termenv.String("  dateq v" + strings.TrimSpace(version)).Faint())
	fmt.Println()
}
