package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"itempatch/internal/store"
)

func queryItemCmd() *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "item <id>",
		Short: "Show an item's base name, its patches and the resolved name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			return runQueryItem(id, profile)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "Profile to resolve with (defaults to the configured one)")
	return cmd
}

func runQueryItem(id int, profile string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, settings, err := newSession(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	if profile != "" {
		if err := settings.SetCurrentProfile(profile); err != nil {
			return err
		}
	}

	table := sess.Table()
	baseName, ok := table.Name(id)
	if !ok {
		return fmt.Errorf("item %d is outside the item table (%d items)", id, table.Len())
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	fmt.Fprintf(os.Stdout, "Item %d\n", id)
	fmt.Fprintf(os.Stdout, "  base:   %q\n", baseName)
	for _, tier := range store.Tiers {
		patches, err := db.QueryTier(ctx, tier)
		if err != nil {
			return err
		}
		for _, p := range patches {
			if p.ItemID == id {
				fmt.Fprintf(os.Stdout, "  %s:  %q\n", tier, p.Name)
			}
		}
	}

	result := sess.Start(ctx)
	name, _ := table.Name(id)
	command, _ := table.Command(id)
	fmt.Fprintf(os.Stdout, "  name:   %q (profile %s)\n", name, result.Profile)
	fmt.Fprintf(os.Stdout, "  command: %q\n", command)
	if sess.ShouldSwapCommand(id) {
		fmt.Fprintln(os.Stdout, "  command swapped behind examine")
	}
	return nil
}
