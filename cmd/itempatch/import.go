package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"itempatch/internal/ingest"
)

func importCmd() *cobra.Command {
	var replace bool
	var exclude []string
	cmd := &cobra.Command{
		Use:   "import <path>...",
		Short: "Load YAML patch files into the patch store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args, ingest.Options{Replace: replace, Exclude: exclude})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Clear each imported tier before writing")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Path prefix to skip (repeatable)")
	return cmd
}

func runImport(paths []string, options ingest.Options) error {
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

	result, err := ingest.Run(ctx, paths, db, options)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Import complete.")
	fmt.Fprintf(os.Stdout, "  Files read:       %d\n", result.FilesRead)
	fmt.Fprintf(os.Stdout, "  Files skipped:    %d\n", result.FilesSkipped)
	fmt.Fprintf(os.Stdout, "  Patches upserted: %d\n", result.PatchesUpserted)
	fmt.Fprintf(os.Stdout, "  Patches removed:  %d\n", result.PatchesRemoved)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("import completed with errors")
	}

	return nil
}
