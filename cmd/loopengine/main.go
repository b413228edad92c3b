package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/loopforge/loopengine/internal/cliconfig"
	"github.com/loopforge/loopengine/pkg/log"
	"github.com/loopforge/loopengine/pkg/loop"
	"github.com/loopforge/loopengine/plugins/interval"
	"github.com/loopforge/loopengine/plugins/pausefile"
)

const helpDescription = `
Run a lifecycle-managed counting loop.

The loop executes one counting action per iteration, paced by --interval,
until --iterations is reached or a signal arrives. Touch the --pause-file
to suspend the loop at its next safe point; remove it to resume.
Configure via file, env (LOOPENGINE_*), or flags.
`

var exampleUsage = strings.TrimSpace(`
  loopengine --iterations 100 --interval 250ms
  loopengine --role worker --pause-file /tmp/worker.pause
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "loopengine",
		Short:   "Run a lifecycle-managed counting loop",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.loopengine/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zl := cliconfig.Logger(cfg.LogLevel)
			logger := log.NewZerologAdapterWithLogger(zl)
			zl.Info().Interface("config", cfg).Msg("configuration")

			return run(cfg, logger)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.loopengine/config.toml)")
	root.Flags().StringVar(&cfg.Role, "role", cfg.Role, "role tag attached to every log line")
	root.Flags().DurationVar(&cfg.Interval, "interval", cfg.Interval, "minimum spacing between iterations (0 disables pacing)")
	root.Flags().IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "stop after this many iterations (0 runs until signal)")
	root.Flags().StringVar(&cfg.PauseFile, "pause-file", cfg.PauseFile, "control file: create to pause, remove to resume")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "loopengine: %v\n", err)
		os.Exit(1)
	}
}

// run wires the handle, executes it and reports the recorded result.
func run(cfg cliconfig.Config, logger log.Logger) error {
	opts := []loop.Option{
		loop.WithRole(cfg.Role),
		loop.WithLogger(logger),
	}
	pace := cfg.Interval > 0
	if pace {
		opts = append(opts, interval.WithInterval(interval.Config{Every: cfg.Interval}))
	}
	if cfg.PauseFile != "" {
		opts = append(opts, pausefile.WithPauseFile(pausefile.Config{Path: cfg.PauseFile}))
	}

	h, err := loop.New(opts...)
	if err != nil {
		return fmt.Errorf("create loop: %w", err)
	}

	var count atomic.Int64
	limit := int64(cfg.Iterations)

	if err := h.OnStart(func(ctx context.Context, ec any) (any, error) {
		logger.Info("counting loop starting", log.Int("iterations", cfg.Iterations))
		return nil, nil
	}); err != nil {
		return err
	}
	if err := h.OnPause(func(ctx context.Context, ec any) (any, error) {
		logger.Info("counting loop paused", log.Int("count", int(count.Load())))
		return nil, nil
	}); err != nil {
		return err
	}
	if err := h.OnResume(func(ctx context.Context, ec any) (any, error) {
		logger.Info("counting loop resumed")
		return nil, nil
	}); err != nil {
		return err
	}
	if err := h.OnLoopResult(func(ctx context.Context, ec any) (any, error) {
		return count.Load(), nil
	}); err != nil {
		return err
	}

	// Pacing hooks in through the notify flag, so the action only sees the
	// reactor when an interval is configured.
	if err := h.AppendAction("count", func(ctx context.Context, ac any) (any, error) {
		n := count.Add(1)
		if limit > 0 && n >= limit {
			return nil, loop.ErrBreak
		}
		return n, nil
	}, pace); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	task, err := h.Start(ctx)
	if err != nil {
		return fmt.Errorf("start loop: %w", err)
	}

	// The run context is signal-bound; a signal cancels the circuit and the
	// run still finalizes before the task completes.
	runErr := task.Wait(context.Background())

	rec := h.Result()
	logger.Info("counting loop finished",
		log.Any("result", rec.LoopResult()),
		log.String("last_process", rec.LastProcess()),
		log.Bool("unclean", rec.Unclean()),
	)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("loop failed: %w", runErr)
	}
	return nil
}
