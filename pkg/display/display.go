// Package display prints the one-line status messages shown to the user.
// Colour is used only when the destination is a terminal.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes status lines to a single writer.
type Printer struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
}

// NewPrinter returns a Printer for out. Colour is enabled when out is a
// terminal and NO_COLOR is not set.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
	if isTerminal(out) {
		p.success.EnableColor()
		p.failure.EnableColor()
	} else {
		p.success.DisableColor()
		p.failure.DisableColor()
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Success prints a formatted confirmation line.
func (p *Printer) Success(format string, args ...interface{}) {
	p.success.Fprintf(p.out, format+"\n", args...)
}

// Error prints "Error: " followed by the formatted message.
func (p *Printer) Error(format string, args ...interface{}) {
	p.failure.Fprintf(p.out, "Error: "+format+"\n", args...)
}

// Plain prints a line without colour.
func (p *Printer) Plain(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
