package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"itempatch/internal/patch"
)

func applyCmd() *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Show the name and command changes a profile makes to the item table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(profile)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "Profile to apply (defaults to the configured one)")
	return cmd
}

func runApply(profile string) error {
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
	base := table.Snapshot()
	result := sess.Start(ctx)

	fmt.Fprintf(os.Stdout, "Profile %s (name patch level %d, command patch mode %d)\n",
		result.Profile, result.Names.Level, patch.NormalizeLevel(result.CommandPatchMode))
	if result.Names.Unavailable {
		fmt.Fprintln(os.Stdout, "  Patch store unavailable, names left unpatched.")
	}
	for _, tier := range result.Names.FailedTiers {
		fmt.Fprintf(os.Stdout, "  Tier %d could not be read.\n", int(tier))
	}

	changed := 0
	for id := 0; id < table.Len(); id++ {
		name, _ := table.Name(id)
		if before := base.Name(id); before != name {
			fmt.Fprintf(os.Stdout, "  %d: %q -> %q\n", id, before, name)
			changed++
		}
	}
	fmt.Fprintf(os.Stdout, "Names changed:    %d\n", changed)
	if result.Names.OutOfRange > 0 {
		fmt.Fprintf(os.Stdout, "Unknown item ids: %d\n", result.Names.OutOfRange)
	}
	fmt.Fprintf(os.Stdout, "Commands removed: %d\n", result.CommandsCleared)

	var swapped []int
	for id := range patch.QuestEdibles {
		if sess.ShouldSwapCommand(id) {
			swapped = append(swapped, id)
		}
	}
	if len(swapped) > 0 {
		slices.Sort(swapped)
		fmt.Fprintf(os.Stdout, "Commands swapped: %v\n", swapped)
	}
	return nil
}
