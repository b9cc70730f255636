// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output prints user-facing progress messages for the pipeline.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// ColorMode selects when progress output is coloured.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always", or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to colour output. In auto mode colours are
// used unless NO_COLOR is set, TERM is "dumb", or out is not a terminal.
func ResolveColors(mode ColorMode, out io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// Printer writes progress to out and warnings and errors to errOut.
// It is safe for concurrent use; each message is written whole.
type Printer struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	useColors bool
}

// NewPrinter returns a Printer writing to out and errOut.
func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{out: out, errOut: errOut, useColors: useColors}
}

// Discard returns a Printer that drops everything.
func Discard() *Printer {
	return NewPrinter(io.Discard, io.Discard, false)
}

// Info prints a progress message.
func (p *Printer) Info(format string, args ...any) {
	p.print(p.out, color.FgCyan, "", format, args...)
}

// Success prints a completion message.
func (p *Printer) Success(format string, args ...any) {
	p.print(p.out, color.FgGreen, "", format, args...)
}

// Warning prints a non-fatal problem.
func (p *Printer) Warning(format string, args ...any) {
	p.print(p.errOut, color.FgYellow, "warning: ", format, args...)
}

// Error prints a fatal problem.
func (p *Printer) Error(format string, args ...any) {
	p.print(p.errOut, color.FgRed, "error: ", format, args...)
}

func (p *Printer) print(w io.Writer, attr color.Attribute, plainPrefix, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.useColors {
		c := color.New(attr)
		c.EnableColor()
		c.Fprintf(w, format+"\n", args...)
		return
	}
	fmt.Fprintf(w, plainPrefix+format+"\n", args...)
}
