// Package cmd implements the fiberdemo CLI commands.
//
// The root command dispatches to run, snapshot and version. Every command
// reads the optional fiber.yaml named by --config.
package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/go-drift/fiber/cmd/fiberdemo/internal/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand builds the fiberdemo command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "fiberdemo",
		Short: "Drive the fiber renderer with a scripted demo app",
		Long: `fiberdemo renders a small counter and todo application with the fiber
renderer, replays a script of user events against the host tree and reports
what each commit changed.

Use "fiberdemo <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to the configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newRunCommand(opts),
		newSnapshotCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// resolve loads the configuration and builds the logger writing to w.
func (o *globalOptions) resolve(w io.Writer) (*config.Resolved, *slog.Logger, error) {
	res, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		if err := res.LogLevel.UnmarshalText([]byte(o.logLevel)); err != nil {
			return nil, nil, err
		}
	}
	logger := newLogger(w, res.LogLevel, res.LogFormat)
	if res.Path != "" {
		logger.Debug("configuration loaded", "path", res.Path)
	}
	return res, logger, nil
}
