package main

import (
	"io"
	"strings"

	"github.com/fatih/color"

	"aslsp/internal/compiler"
	"aslsp/internal/diag"
	"aslsp/internal/diagfmt"
	"aslsp/internal/session"
)

var (
	labelColor = color.New(color.Bold)
	okColor    = color.New(color.FgGreen, color.Bold)
	failColor  = color.New(color.FgRed, color.Bold)
)

// renderText prints a summary for humans. Problem paths are shown relative
// to baseDir; maxProblems <= 0 prints all.
func renderText(w io.Writer, manifestPath, baseDir string, s session.Summary, problems []diag.Diagnostic, maxProblems int) error {
	out := &errWriter{w: w}
	field := func(label, value string) {
		out.printf("%s %s\n", labelColor.Sprintf("%-9s", label), value)
	}

	field("project", manifestPath)
	field("config", s.ConfigName+" ("+s.Kind+")")
	field("sdk", s.FrameworkLib+" ("+s.Flavor+")")
	field("backend", s.Backend)
	field("target", s.TargetType)
	if s.Overlay != "" {
		field("overlay", s.Overlay)
	}
	field("options", strings.Join(s.Options, " "))
	if s.Settings != nil {
		field("settings", settingsLine(s.Settings))
	}

	if len(problems) > 0 {
		out.printf("%s\n", labelColor.Sprint("problems"))
		if out.err == nil {
			out.err = diagfmt.Pretty(w, problems, diagfmt.PrettyOpts{
				Color:   !color.NoColor,
				BaseDir: baseDir,
				Max:     maxProblems,
				Indent:  "  ",
			})
		}
	}

	if s.OK {
		out.printf("%s\n", okColor.Sprint("ok"))
	} else {
		out.printf("%s %s\n", failColor.Sprint("failed"), s.Failure)
	}
	if s.Timings != nil {
		out.printf("%s", s.Timings.Summary())
	}
	return out.err
}

func settingsLine(ts *compiler.TargetSettings) string {
	parts := []string{
		"file-specs=" + itoa(len(ts.FileSpecs)),
		"include-classes=" + itoa(len(ts.IncludeClasses)),
		"source-path=" + itoa(len(ts.SourcePath)),
		"library-path=" + itoa(len(ts.LibraryPath)),
		"external-library-path=" + itoa(len(ts.ExternalLibraryPath)),
		"defines=" + itoa(len(ts.Defines)),
	}
	if ts.Debug {
		parts = append(parts, "debug")
	}
	return strings.Join(parts, " ")
}
