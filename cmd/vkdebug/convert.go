package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vkdebug/internal/capture"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a capture between .vkcap and .ndjson",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraced(cmd, func(ctx context.Context) error {
				return runConvert(cmd, args[0], args[1])
			})
		},
	}
}

func runConvert(cmd *cobra.Command, in, out string) error {
	src, err := capture.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := capture.Create(out)
	if err != nil {
		return err
	}
	n, err := capture.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("convert %s: %w", in, err)
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "converted %d messages: %s (%s) -> %s\n", n, in, src.Kind, out)
	}
	return nil
}
