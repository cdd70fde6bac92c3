package utils

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"io"
	"strings"
)

func Pluralize(s string, count int64) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", s)
	}

	// batches, hashes
	if strings.HasSuffix(strings.ToLower(s), "h") {
		s += "e"
	}

	// directories
	if strings.HasSuffix(s, "y") {
		s = strings.TrimSuffix(s, "y") + "ie"
	}

	return fmt.Sprintf("%s %ss", humanize.Comma(count), s)
}

func PrintFormattedTitle(w io.Writer, title string) {
	color.New(color.FgHiCyan).Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
}

// PrintCount prints a labelled count, red when non-zero as every count printed this way is a problem.
func PrintCount(w io.Writer, label string, count int) {
	printer := color.New(color.FgGreen)

	if count > 0 {
		printer = color.New(color.FgRed)
	}

	fmt.Fprintf(w, "  %-28s ", label)
	printer.Fprintln(w, humanize.Comma(int64(count)))
}
