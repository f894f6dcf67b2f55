package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vkdebug/internal/capture"
	"vkdebug/internal/config"
	"vkdebug/internal/observ"
	"vkdebug/internal/replay"
	"vkdebug/internal/sink"
)

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <capture>",
		Short: "Replay a capture through a debug messenger",
		Long: `Replay reads a .vkcap or .ndjson capture and submits every message to a
software debug-utils instance. The messenger filters decide which messages are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraced(cmd, func(ctx context.Context) error {
				return runReplay(ctx, cmd, args[0])
			})
		},
	}
	filterFlags(cmd)
	sinkFlags(cmd)
	cmd.Flags().String("format", "", "output format (auto|text|ndjson)")
	cmd.Flags().StringP("output", "o", "", "write delivered messages to this file (\"-\" for stdout)")
	cmd.Flags().String("record", "", "also record delivered messages to a .vkcap or .ndjson file")
	cmd.Flags().Int("jobs", 0, "concurrent submitters (default from config)")
	cmd.Flags().String("ui", "", "live view (auto|on|off), default from config")
	cmd.Flags().Bool("timings", false, "print per-phase timings to stderr")
	return cmd
}

type replayOptions struct {
	cfg     config.Config
	record  string
	quiet   bool
	timings bool
}

func readReplayOptions(cmd *cobra.Command) (replayOptions, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return replayOptions{}, err
	}
	if err := applyFilterFlags(cmd, &cfg); err != nil {
		return replayOptions{}, err
	}
	if err := applySinkFlags(cmd, &cfg); err != nil {
		return replayOptions{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		text, _ := flags.GetString("format")
		if cfg.Format, err = sink.ParseFormat(text); err != nil {
			return replayOptions{}, fmt.Errorf("--format: %w", err)
		}
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("jobs") {
		jobs, _ := flags.GetInt("jobs")
		if jobs < 1 {
			return replayOptions{}, fmt.Errorf("--jobs must be at least 1, got %d", jobs)
		}
		cfg.Jobs = jobs
	}
	if flags.Changed("ui") {
		mode, _ := flags.GetString("ui")
		mode = strings.ToLower(strings.TrimSpace(mode))
		if err := config.CheckMode(mode); err != nil {
			return replayOptions{}, fmt.Errorf("--ui: %w", err)
		}
		cfg.UI = mode
	}
	opts := replayOptions{cfg: cfg}
	opts.record, _ = flags.GetString("record")
	opts.quiet, _ = cmd.Root().PersistentFlags().GetBool("quiet")
	opts.timings, _ = flags.GetBool("timings")
	return opts, nil
}

func toStdout(path string) bool {
	return path == "" || path == "-"
}

func runReplay(ctx context.Context, cmd *cobra.Command, path string) error {
	opts, err := readReplayOptions(cmd)
	if err != nil {
		return err
	}
	cfg := opts.cfg
	timer := observ.NewTimer()

	loadPhase := timer.Begin("load")
	src, err := capture.Open(path)
	if err != nil {
		return err
	}
	records, err := capture.ReadAll(src)
	if cerr := src.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	timer.End(loadPhase, fmt.Sprintf("%d records", len(records)))

	withUI := shouldUseTUI(cfg.UI)
	var sinks []sink.Sink
	var failureRing *sink.Ring
	// the live view owns stdout
	if !withUI || !toStdout(cfg.Output) {
		var out *os.File
		if toStdout(cfg.Output) {
			out = os.Stdout
		}
		built, err := sink.New(sink.Config{
			Mode:       cfg.Mode,
			Format:     cfg.Format,
			Color:      useColor(cfg.Color, out),
			Output:     stdoutFor(cmd, cfg.Output),
			OutputPath: cfg.Output,
			RingSize:   cfg.RingSize,
		})
		if err != nil {
			return err
		}
		sinks = append(sinks, built.Sink)
		if cfg.Mode == sink.ModeBoth {
			failureRing = built.Ring
		}
	}
	if opts.record != "" {
		rec, err := capture.Create(opts.record)
		if err != nil {
			closeSinks(cmd, sinks)
			return err
		}
		sinks = append(sinks, rec)
	}
	out := sink.NewMulti(sinks...)

	req := replay.Request{
		Records:  records,
		Severity: cfg.Severity,
		Category: cfg.Category,
		Sink:     out,
		Jobs:     cfg.Jobs,
	}
	var res replay.Result
	runPhase := timer.Begin("replay")
	if withUI {
		res, err = runReplayWithUI(ctx, path, req)
	} else {
		res, err = replay.Run(ctx, req)
	}
	timer.End(runPhase, fmt.Sprintf("%d jobs", cfg.Jobs))
	closePhase := timer.Begin("close")
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	timer.End(closePhase, "")
	if err != nil {
		dumpRing(cmd, failureRing)
		return err
	}
	if opts.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if !opts.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "replayed %d messages: %d delivered, %d filtered (severity %s, category %s) in %s\n",
			res.Submitted, res.Delivered, res.Filtered, cfg.Severity, cfg.Category, res.Elapsed.Round(time.Millisecond))
	}
	return nil
}

// stdoutFor routes "-" through the command's writer. The wrapper hides Close so the
// stream never closes os.Stdout.
func stdoutFor(cmd *cobra.Command, path string) io.Writer {
	if !toStdout(path) {
		return nil
	}
	return struct{ io.Writer }{cmd.OutOrStdout()}
}

func closeSinks(cmd *cobra.Command, sinks []sink.Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}
}
