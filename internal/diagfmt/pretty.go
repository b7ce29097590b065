// Package diagfmt renders configuration diagnostics for terminals.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"aslsp/internal/diag"
)

// Pretty writes one line per diagnostic in the order given:
//
//	<path>[:<line>]: <SEV> <CODE>: <Message>
//
// The offending option is appended when the message does not mention it.
// When Max truncates the list a final "... and N more" line is written.
func Pretty(w io.Writer, list []diag.Diagnostic, opts PrettyOpts) error {
	shown := list
	if opts.Max > 0 && len(shown) > opts.Max {
		shown = shown[:opts.Max]
	}
	for _, d := range shown {
		if _, err := fmt.Fprintf(w, "%s%s\n", opts.Indent, line(d, opts)); err != nil {
			return err
		}
	}
	if hidden := len(list) - len(shown); hidden > 0 {
		if _, err := fmt.Fprintf(w, "%s... and %d more\n", opts.Indent, hidden); err != nil {
			return err
		}
	}
	return nil
}

func line(d diag.Diagnostic, opts PrettyOpts) string {
	loc := diag.Location{
		Source: FormatPath(d.Primary.Source, opts.PathMode, opts.BaseDir),
		Line:   d.Primary.Line,
	}
	msg := d.Message
	if opt := d.Primary.Option; opt != "" && !strings.Contains(msg, opt) {
		msg += " (" + opt + ")"
	}
	sev := severityColor(d.Severity, opts.Color).Sprint(d.Severity.String())
	return fmt.Sprintf("%s: %s %s: %s", loc.String(), sev, d.Code.ID(), msg)
}

func severityColor(sev diag.Severity, enabled bool) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// FormatPath renders a diagnostic source according to mode. The command
// line pseudo-source is returned unchanged.
func FormatPath(src string, mode PathMode, baseDir string) string {
	if src == "" || src == diag.CommandLine {
		return diag.CommandLine
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(src); err == nil {
			return abs
		}
		return src
	case PathModeBasename:
		return filepath.Base(src)
	case PathModeRelative:
		return relative(src, baseDir, false)
	default:
		return relative(src, baseDir, true)
	}
}

func relative(src, baseDir string, onlyBelow bool) string {
	if baseDir == "" {
		return src
	}
	rel, err := filepath.Rel(baseDir, src)
	if err != nil {
		return src
	}
	if onlyBelow && (rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return src
	}
	return rel
}
