package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vkdebug/internal/trace"
)

// setupTracing reads the trace flags and attaches a tracer to the command context.
// The returned cleanup dumps the ring tracer to stderr when failed is true.
func setupTracing(cmd *cobra.Command) (func(failed bool), error) {
	flags := cmd.Root().PersistentFlags()

	output, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace alone turns tracing on at command level
	if level == trace.LevelOff && output != "" {
		level = trace.LevelCommand
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(commandContext(cmd), trace.Nop))
		return func(bool) {}, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	res, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(commandContext(cmd), res.Tracer))

	return func(failed bool) {
		if failed && res.Ring != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "trace: last events before the failure:")
			if err := res.Ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := res.Tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runTraced wraps a command body in a command-scope span.
func runTraced(cmd *cobra.Command, run func(ctx context.Context) error) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeCommand, cmd.Name(), 0)
	err = run(trace.WithSpan(ctx, span.ID()))
	span.Fail(err)
	span.End("")
	cleanup(err != nil)
	return err
}
