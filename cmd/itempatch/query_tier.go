package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"itempatch/internal/store"
)

func queryTierCmd() *cobra.Command {
	var countOnly bool
	cmd := &cobra.Command{
		Use:   "tier <1|2|3>",
		Short: "List the name patches stored in a tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid tier %q", args[0])
			}
			tier := store.Tier(n)
			if err := tier.Validate(); err != nil {
				return err
			}
			return runQueryTier(tier, countOnly)
		},
	}
	cmd.Flags().BoolVar(&countOnly, "count", false, "Print only the number of patches in the tier")
	return cmd
}

func runQueryTier(tier store.Tier, countOnly bool) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if countOnly {
		n, err := db.CountTier(ctx, tier)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d\n", n)
		return nil
	}

	patches, err := db.QueryTier(ctx, tier)
	if err != nil {
		return err
	}
	if len(patches) == 0 {
		fmt.Fprintln(os.Stdout, "No patches found.")
		return nil
	}

	for _, p := range patches {
		fmt.Fprintf(os.Stdout, "%d\t%s\n", p.ItemID, p.Name)
	}
	return nil
}
