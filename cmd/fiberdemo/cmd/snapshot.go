package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/fiber/cmd/fiberdemo/internal/demo"
	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/host"
	"github.com/go-drift/fiber/pkg/host/raster"
)

type snapshotOptions struct {
	out     string
	script  string
	replay  bool
	padding int
}

func newSnapshotCommand(global *globalOptions) *cobra.Command {
	opts := &snapshotOptions{}
	c := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the demo app synchronously and write the host tree as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return snapshot(cmd, global, opts)
		},
	}
	c.Flags().StringVarP(&opts.out, "out", "o", "fiber.png", "output PNG file")
	c.Flags().StringVar(&opts.script, "script", "", "YAML file of steps to apply before the snapshot")
	c.Flags().BoolVar(&opts.replay, "replay", false, "apply the built-in script before the snapshot")
	c.Flags().IntVar(&opts.padding, "padding", 8, "padding around the text in pixels")
	return c
}

func snapshot(cmd *cobra.Command, global *globalOptions, opts *snapshotOptions) error {
	res, logger, err := global.resolve(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var steps []demo.Step
	if opts.replay || opts.script != "" {
		if steps, err = loadScript(opts.script); err != nil {
			return err
		}
	}

	tree := host.New()
	container := tree.NewContainer("body")
	sched := &core.SyncScheduler{}
	root := core.NewRoot(tree, container, sched, core.WithLogger(logger))
	root.Render(demo.NewApp(res.AppName))
	sched.Drain()
	for _, step := range steps {
		if err := demo.Apply(container, step); err != nil {
			return err
		}
		sched.Drain()
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.out, err)
	}
	if err := raster.WritePNG(f, container, raster.Options{Padding: opts.padding}); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Debug("snapshot written", "path", opts.out, "steps", len(steps), "commits", root.Stats().Commits)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.out)
	return nil
}
