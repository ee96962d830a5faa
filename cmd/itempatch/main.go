package main

import (
	"os"

	"github.com/spf13/cobra"

	"itempatch/internal/config"
)

var configPath string

func main() {
	config.LoadEnv()

	root := &cobra.Command{
		Use:          "itempatch",
		Short:        "Item name and command patching for the legacy client",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "itempatch.yaml", "Path to the client config file")
	root.AddCommand(initCmd())
	root.AddCommand(importCmd())
	root.AddCommand(applyCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
