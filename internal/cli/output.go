package cli

import (
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	headerColor  = color.New(color.Bold)
)

func success(w io.Writer, format string, args ...any) {
	_, _ = successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	_, _ = warnColor.Fprintf(w, "! "+format+"\n", args...)
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-1]) + "…"
}
