package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"aslsp/internal/project"
	"aslsp/internal/session"
)

var errResolveFailed = errors.New("resolution failed")

type resolveOptions struct {
	format string
}

func newResolveCmd(app *cli) *cobra.Command {
	opts := &resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve [dir]",
		Short: "Resolve the project above dir and print the configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return app.runResolve(cmd, dir, opts)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text|json|msgpack)")
	return cmd
}

func (app *cli) runResolve(cmd *cobra.Command, dir string, opts *resolveOptions) error {
	format := strings.ToLower(opts.format)
	switch format {
	case "text", "json", "msgpack":
	default:
		return fmt.Errorf("unsupported format %q (must be text, json or msgpack)", opts.format)
	}

	manifest, ok, err := project.LoadFromDir(dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no %s found in %s or its parents", project.ManifestName, dir)
	}

	sess := session.New(session.Options{ProbeCache: app.host.ProbeCache, Logger: app.log})
	defer func() { _ = sess.Close() }()

	out, err := sess.Resolve(cmd.Context(), manifest.Description, app.host.FrameworkLib)
	if err != nil {
		return err
	}
	summary := session.Summarize(out, app.host.Timings)

	w := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(summary)
	case "msgpack":
		err = msgpack.NewEncoder(w).Encode(summary)
	default:
		err = renderText(w, manifest.Path, manifest.Root, summary, out.Problems, app.host.MaxDiagnostics)
	}
	if err != nil {
		return err
	}
	if !summary.OK {
		return fmt.Errorf("%w: %s", errResolveFailed, summary.Failure)
	}
	return nil
}

// errWriter remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func itoa(n int) string { return strconv.Itoa(n) }
