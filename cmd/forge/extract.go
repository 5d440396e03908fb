package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marlonoliveira182/the-forge-sub002/pkg/forge"
)

func newExtractCmd() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "extract <schema>",
		Short: "Extract the field tree of one schema document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			fields, detected, err := forge.ExtractFile(args[0], cfg.Extract)
			if err != nil {
				return err
			}
			slog.Info("schema extracted",
				"file", args[0],
				"format", string(detected),
				"fields", len(fields))

			return writeFields(fields, output, format, cfg.Export)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: csv, json or xlsx")
	return cmd
}
