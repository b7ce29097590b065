package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aslsp/internal/config"
	"aslsp/internal/logger"
	"aslsp/internal/version"
)

// cli carries state shared by the subcommands of one invocation.
type cli struct {
	cfgFile string
	host    *config.Config
	log     logger.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{}
	rootCmd := &cobra.Command{
		Use:           "aslsp",
		Short:         "ActionScript/MXML project resolver and language server",
		Long:          `aslsp resolves asconfig.toml projects against a Royale or Flex SDK and serves the result over LSP`,
		Version:       version.Plain(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.cfgFile, "config", "", "configuration file (default ./"+config.FileName+")")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	config.BindFlags(flags)

	rootCmd.AddCommand(newResolveCmd(app))
	rootCmd.AddCommand(newLSPCmd(app))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main builds the command tree and exits with status 1 on any error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func (app *cli) setup(cmd *cobra.Command) error {
	host, err := config.Load(app.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	app.host = host
	app.log = logger.NewLogger(host.LoggerConfig())
	logger.SetDefault(app.log)

	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", colorFlag)
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
