package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"vkdebug/internal/messenger"
)

type filtersPayload struct {
	Severity       string `json:"severity"`
	SeverityNative uint32 `json:"severity_native"`
	Category       string `json:"category"`
	CategoryNative uint32 `json:"category_native"`
}

func newFiltersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Show the native bitmasks a messenger would be created with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyFilterFlags(cmd, &cfg); err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "pretty":
				renderFiltersPretty(cmd.OutOrStdout(), cfg.Severity, cfg.Category)
				return nil
			case "json":
				return renderFiltersJSON(cmd.OutOrStdout(), cfg.Severity, cfg.Category)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	filterFlags(cmd)
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderFiltersPretty(out io.Writer, s messenger.Severity, c messenger.Category) {
	fmt.Fprintf(out, "severity  0x%08x  %s\n", uint32(s.Native()), s)
	fmt.Fprintf(out, "category  0x%08x  %s\n", uint32(c.Native()), c)
}

func renderFiltersJSON(out io.Writer, s messenger.Severity, c messenger.Category) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(filtersPayload{
		Severity:       s.String(),
		SeverityNative: uint32(s.Native()),
		Category:       c.String(),
		CategoryNative: uint32(c.Native()),
	})
}
