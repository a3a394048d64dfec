// Package output formats cardctl results for the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors honours NO_COLOR and dumb terminals in auto mode.
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return true
	}
}

// Printer handles formatted output to the terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

func NewPrinter(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

func (p *Printer) Out() io.Writer {
	return p.out
}

func (p *Printer) Heading(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgMagenta, color.Bold).Fprintf(p.out, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "== "+format+" ==\n", args...)
}

func (p *Printer) Info(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Success(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

func (p *Printer) Warning(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "! "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

func (p *Printer) Error(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
}

// Line prints text indented by depth levels. Dim text is used for structure.
func (p *Printer) Line(depth int, dim bool, format string, args ...interface{}) {
	indent := strings.Repeat("  ", depth)
	if p.useColors && dim {
		color.New(color.Faint).Fprintf(p.out, indent+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, indent+format+"\n", args...)
}
