package main

import (
	"github.com/spf13/cobra"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "forge",
		Short:         "Extract schema fields and map them across schemas",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML config file")

	cmd.AddCommand(newExtractCmd(), newMapCmd())
	return cmd
}

func loadConfig() *config.Config {
	if cfgFile == "" {
		return config.NewDefaultConfig()
	}
	return config.MustConfig(cfgFile)
}
