package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"aslsp/internal/lsp"
	"aslsp/internal/session"
)

func newLSPCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runLSP(cmd)
		},
	}
}

func (app *cli) runLSP(cmd *cobra.Command) error {
	sess := session.New(session.Options{ProbeCache: app.host.ProbeCache, Logger: app.log})
	defer func() { _ = sess.Close() }()

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Resolver:       sess,
		FrameworkLib:   app.host.FrameworkLib,
		MaxDiagnostics: app.host.MaxDiagnostics,
		Logger:         app.log.With("component", "lsp"),
	})
	app.log.Debug("language server started", "framework", app.host.FrameworkLib)
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		return err
	}
	return nil
}
