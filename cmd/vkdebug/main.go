package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vkdebug/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vkdebug",
		Short:         "Vulkan debug messenger toolkit",
		Long:          `vkdebug subscribes to VK_EXT_debug_utils messages, replays recorded ones and converts capture files`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newReplayCmd())
	root.AddCommand(newFiltersCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newProbeCmd())
	root.AddCommand(newVersionCmd())

	flags := root.PersistentFlags()
	flags.String("color", "", "colorize output (auto|on|off), default from config or auto")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.String("config", "", "path to vkdebug.toml (default: search upwards from the working directory)")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|command|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both); ring is dumped to stderr on failure")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime execution trace to this file")
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
