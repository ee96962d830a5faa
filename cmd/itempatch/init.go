package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var dsn string
	var itemsPath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold an itempatch config and patch store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(dsn) == "" {
				return fmt.Errorf("--dsn is required")
			}
			return runInit(dsn, itemsPath)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "sqlite://assets/itempatch.db", "Patch store DSN")
	cmd.Flags().StringVar(&itemsPath, "items", "assets/items.yaml", "Base item definition file")
	return cmd
}

func runInit(dsn, itemsPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	configContents := fmt.Sprintf(`version: 1

database:
  dsn: %s

items:
  path: %s

log:
  level: info
  format: text

profile: default

profiles:
  default:
    name_patch_level: 3
    command_patch_mode: 1
    speedrun_override: false
  speedrun:
    name_patch_level: 3
    command_patch_mode: 3
    speedrun_override: true
`, dsn, itemsPath)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	if _, err := os.Stat(itemsPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(itemsPath), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(itemsPath), err)
		}
		if err := os.WriteFile(itemsPath, []byte("items: []\n"), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", itemsPath, err)
		}
	}

	fmt.Fprintf(os.Stdout, "Wrote %s\n", configPath)
	return nil
}
