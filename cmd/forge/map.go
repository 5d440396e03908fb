package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marlonoliveira182/the-forge-sub002/pkg/forge"
)

func newMapCmd() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "map <source-schema> <target-schema>",
		Short: "Map the fields of a source schema onto a target schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			res, err := forge.MapFiles(args[0], args[1], cfg)
			if err != nil {
				return err
			}

			stats := res.Stats()
			slog.Info("schemas mapped",
				"source", args[0],
				"target", args[1],
				"entries", stats.Total,
				"exact", stats.Exact,
				"fuzzy", stats.Fuzzy,
				"unmatched", stats.Unmatched,
				"coverage", stats.Coverage)

			return writeMapping(res, output, format, cfg.Export)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: csv, json or xlsx")
	return cmd
}
