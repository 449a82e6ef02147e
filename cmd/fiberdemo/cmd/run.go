package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/go-drift/fiber/cmd/fiberdemo/internal/demo"
	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/engine"
	"github.com/go-drift/fiber/pkg/errors"
	"github.com/go-drift/fiber/pkg/host"
)

type runOptions struct {
	metricsAddr string
	script      string
	keepAlive   bool
	quiet       bool
}

func newRunCommand(global *globalOptions) *cobra.Command {
	opts := &runOptions{}
	c := &cobra.Command{
		Use:   "run",
		Short: "Render the demo app on the real-time loop and replay a script",
		Long: `Run mounts the demo app on a frame-paced work loop, fires each scripted
event on the host tree and prints every commit. With --metrics-addr the loop
metrics, the slice timeline and the fiber tree are served over HTTP.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, global, opts)
		},
	}
	c.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics, /slices and /tree on this address")
	c.Flags().StringVar(&opts.script, "script", "", "YAML file of steps to replay instead of the built-in script")
	c.Flags().BoolVar(&opts.keepAlive, "keep-alive", false, "keep serving after the script until interrupted")
	c.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print commit summaries without the host tree")
	return c
}

func runDemo(cmd *cobra.Command, global *globalOptions, opts *runOptions) error {
	res, logger, err := global.resolve(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	steps, err := loadScript(opts.script)
	if err != nil {
		return err
	}
	errors.SetHandler(&errors.LogHandler{Logger: logger})
	defer errors.SetHandler(nil)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	trace := engine.NewSliceTraceBuffer(256, res.Budget)
	loop := engine.NewLoop(engine.Config{
		Budget:        res.Budget,
		FrameInterval: res.FrameInterval,
		Logger:        logger,
		Trace:         trace,
	})
	reg := prometheus.NewRegistry()
	tree := host.New()
	container := tree.NewContainer("body")
	out := cmd.OutOrStdout()
	root := core.NewRoot(tree, container, loop,
		core.WithLogger(logger),
		core.WithMinRemaining(res.MinRemaining),
		core.WithObserver(engine.NewMetrics(reg)),
		core.WithObserver(&commitPrinter{w: out, container: container, quiet: opts.quiet}),
	)

	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()
	defer loop.Stop()

	if opts.metricsAddr != "" {
		srv, err := engine.StartDebugServer(opts.metricsAddr, engine.NewDebugMux(engine.DebugOptions{
			Gatherer: reg,
			Trace:    trace,
			Tree: func(ctx context.Context) (string, error) {
				var s string
				err := loop.Call(ctx, func() { s = root.DebugString() })
				return s, err
			},
		}))
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Close(shutdownCtx); err != nil {
				logger.Warn("debug server shutdown failed", "err", err)
			}
		}()
		logger.Info("debug server listening", "addr", srv.Addr())
	}

	logger.Info("mounting app", "name", res.AppName, "budget", res.Budget, "steps", len(steps))
	if err := loop.Call(ctx, func() { root.Render(demo.NewApp(res.AppName)) }); err != nil {
		return err
	}
	if err := waitIdle(ctx, loop, root); err != nil {
		return err
	}

	for _, step := range steps {
		fmt.Fprintf(out, "> %s\n", step)
		var applyErr error
		if err := loop.Call(ctx, func() { applyErr = demo.Apply(container, step) }); err != nil {
			return err
		}
		if applyErr != nil {
			return applyErr
		}
		if err := waitIdle(ctx, loop, root); err != nil {
			return err
		}
	}

	var stats core.Stats
	if err := loop.Call(ctx, func() { stats = root.Stats() }); err != nil {
		return err
	}
	fmt.Fprintf(out, "renders=%d restarts=%d units=%d slices=%d yields=%d commits=%d\n",
		stats.Renders, stats.Restarts, stats.Units, stats.Slices, stats.Yields, stats.Commits)

	if opts.keepAlive {
		logger.Info("script finished, waiting for interrupt")
		<-ctx.Done()
	}
	loop.Stop()
	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// waitIdle polls the root on the loop goroutine until no render is pending.
func waitIdle(ctx context.Context, loop *engine.Loop, root *core.Root) error {
	for {
		var pending bool
		if err := loop.Call(ctx, func() { pending = root.Pending() }); err != nil {
			return err
		}
		if !pending {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

// commitPrinter writes a summary of every commit, followed by the host
// tree unless quiet is set.
type commitPrinter struct {
	w         io.Writer
	container *host.Node
	quiet     bool
}

func (p *commitPrinter) ObserveSlice(core.SliceEvent) {}

func (p *commitPrinter) ObserveCommit(ev core.CommitEvent) {
	fmt.Fprintf(p.w, "commit: %d placed, %d updated, %d deleted\n", ev.Placements, ev.Updates, ev.Deletions)
	if !p.quiet {
		fmt.Fprint(p.w, host.Dump(p.container))
	}
}
