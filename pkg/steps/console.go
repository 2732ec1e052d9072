package steps

import (
	"io"

	"github.com/fatih/color"
)

var (
	titleColor   = color.New(color.FgMagenta, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow)
)

// Title prints a step heading to stdout.
func Title(message string) {
	titleColor.Fprintf(color.Output, "\n%s...\n", message)
}

// Info prints an informational message to stdout.
func Info(message string) {
	infoColor.Fprintln(color.Output, message)
}

// Warning prints a warning to stderr, keeping stdout clean for step output.
func Warning(message string) {
	Fwarning(color.Error, message)
}

// Fwarning prints a warning to an explicit writer.
func Fwarning(w io.Writer, message string) {
	warningColor.Fprintln(w, message)
}
