package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vkdebug/internal/config"
	"vkdebug/internal/messenger"
	"vkdebug/internal/sink"
)

// loadConfig reads --config, or the nearest vkdebug.toml, or the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	if color, _ := cmd.Flags().GetString("color"); color != "" {
		if err := config.CheckMode(color); err != nil {
			return config.Config{}, fmt.Errorf("--color: %w", err)
		}
		cfg.Color = color
	}
	return cfg, nil
}

// filterFlags registers --severity and --category on cmd.
func filterFlags(cmd *cobra.Command) {
	cmd.Flags().String("severity", "", "severities to subscribe to, e.g. error,warning or all (default from config)")
	cmd.Flags().String("category", "", "categories to subscribe to, e.g. validation or all (default from config)")
}

// applyFilterFlags overrides the config filters with flags that were set.
func applyFilterFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("severity") {
		text, _ := cmd.Flags().GetString("severity")
		s, err := messenger.ParseSeverity(text)
		if err != nil {
			return fmt.Errorf("--severity: %w", err)
		}
		cfg.Severity = s
	}
	if cmd.Flags().Changed("category") {
		text, _ := cmd.Flags().GetString("category")
		c, err := messenger.ParseCategory(text)
		if err != nil {
			return fmt.Errorf("--category: %w", err)
		}
		cfg.Category = c
	}
	return nil
}

// sinkFlags registers --sink-mode and --ring-size on cmd.
func sinkFlags(cmd *cobra.Command) {
	cmd.Flags().String("sink-mode", "", "how delivered messages are kept (stream|ring|both), default from config")
	cmd.Flags().Int("ring-size", 0, "messages kept by the ring and both modes (default from config)")
}

// applySinkFlags overrides the config sink settings with flags that were set.
func applySinkFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("sink-mode") {
		text, _ := cmd.Flags().GetString("sink-mode")
		m, err := sink.ParseMode(text)
		if err != nil {
			return fmt.Errorf("--sink-mode: %w", err)
		}
		cfg.Mode = m
	}
	if cmd.Flags().Changed("ring-size") {
		n, _ := cmd.Flags().GetInt("ring-size")
		if n < 1 {
			return fmt.Errorf("--ring-size must be at least 1, got %d", n)
		}
		cfg.RingSize = n
	}
	return nil
}

// dumpRing writes the ring kept in both mode to stderr after a failure.
func dumpRing(cmd *cobra.Command, ring *sink.Ring) {
	if ring == nil || ring.Len() == 0 {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "last delivered messages before the failure:")
	if err := ring.Dump(cmd.ErrOrStderr(), sink.FormatText); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: dump error: %v\n", err)
	}
}

// useColor resolves an auto|on|off mode for output going to f. f is nil for files.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return f != nil && os.Getenv("NO_COLOR") == "" && isTerminal(f)
	}
}
