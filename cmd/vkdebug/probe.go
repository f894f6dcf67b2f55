package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"vkdebug/internal/messenger"
	"vkdebug/internal/sink"
	"vkdebug/internal/trace"
	"vkdebug/internal/vk"
	"vkdebug/internal/vk/loader"
)

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Subscribe on a real Vulkan instance and print what the loader reports",
		Long: `Probe loads the system Vulkan loader, creates an instance with VK_EXT_debug_utils
and the requested layers, subscribes with the configured filters and enumerates
physical devices. Messages emitted meanwhile are printed like replayed ones.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraced(cmd, func(ctx context.Context) error {
				return runProbe(ctx, cmd)
			})
		},
	}
	filterFlags(cmd)
	sinkFlags(cmd)
	cmd.Flags().String("lib", "", "path to the Vulkan loader library (default: platform loader)")
	cmd.Flags().StringSlice("layer", nil, "instance layer to enable, e.g. VK_LAYER_KHRONOS_validation (repeatable)")
	return cmd
}

func runProbe(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFilterFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := applySinkFlags(cmd, &cfg); err != nil {
		return err
	}
	libPath, _ := cmd.Flags().GetString("lib")
	layers, _ := cmd.Flags().GetStringSlice("layer")
	tracer := trace.FromContext(ctx)
	parent := trace.SpanFrom(ctx)

	lib, err := loader.Open(libPath)
	if err != nil {
		return err
	}
	defer lib.Close()

	offered, err := lib.InstanceExtensions()
	if err != nil {
		return err
	}
	var extensions []string
	if slices.Contains(offered, vk.ExtDebugUtils) {
		extensions = append(extensions, vk.ExtDebugUtils)
	}
	trace.Point(tracer, trace.ScopeSubscription, parent, "extensions", fmt.Sprintf("%d offered", len(offered)))

	inst, err := lib.CreateInstance("vkdebug probe", layers, extensions)
	if err != nil {
		return err
	}
	defer func() {
		if err := inst.Destroy(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}()

	built, err := sink.New(sink.Config{
		Mode:       cfg.Mode,
		Format:     cfg.Format,
		Color:      useColor(cfg.Color, os.Stdout),
		Output:     stdoutFor(cmd, cfg.Output),
		OutputPath: cfg.Output,
		RingSize:   cfg.RingSize,
	})
	if err != nil {
		return err
	}
	counter := sink.NewCounter()
	out := sink.NewMulti(built.Sink, counter)
	defer func() {
		if err := out.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}()

	sub, err := messenger.New(inst, cfg.Severity, cfg.Category, sink.Handler(out))
	if errors.Is(err, messenger.ErrMissingExtension) {
		return fmt.Errorf("%w; the loader does not offer it", err)
	}
	if err != nil {
		return err
	}
	devices, err := inst.PhysicalDeviceCount()
	if cerr := sub.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if cfg.Mode == sink.ModeBoth {
			dumpRing(cmd, built.Ring)
		}
		return err
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "probe: %d physical devices, %d messages delivered\n", devices, counter.Total())
	}
	return nil
}
