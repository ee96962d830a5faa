package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"itempatch/internal/parser"
	"itempatch/internal/store"
)

type Store interface {
	EnsureSchema(ctx context.Context) error
	UpsertPatch(ctx context.Context, tier store.Tier, patch store.NamePatch) error
	DeletePatch(ctx context.Context, tier store.Tier, itemID int) (bool, error)
	ClearTier(ctx context.Context, tier store.Tier) (int64, error)
}

type Result struct {
	FilesRead       int
	FilesSkipped    int
	PatchesUpserted int
	PatchesRemoved  int
	Errors          []error
}

type Options struct {
	// Replace clears every tier that appears in the input before writing.
	Replace bool
	Exclude []string
}

// Run imports patch files into db. Paths may name files or directories;
// directories are walked for .yaml and .yml files. Per-file problems are
// collected in Result.Errors rather than aborting the import.
func Run(ctx context.Context, paths []string, db Store, options Options) (*Result, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	files, err := walkPatchFiles(paths, options.Exclude)
	if err != nil {
		return nil, fmt.Errorf("walking patch files: %w", err)
	}

	result := &Result{}
	var docs []*parser.Document
	for _, path := range files {
		doc, err := parser.ParseFile(path)
		if err != nil {
			if errors.Is(err, parser.ErrMissingTier) {
				result.FilesSkipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, err))
			continue
		}
		result.FilesRead++
		docs = append(docs, doc)
	}

	if options.Replace {
		var tiers []store.Tier
		for _, doc := range docs {
			if !slices.Contains(tiers, doc.Tier) {
				tiers = append(tiers, doc.Tier)
			}
		}
		slices.Sort(tiers)
		for _, tier := range tiers {
			removed, err := db.ClearTier(ctx, tier)
			if err != nil {
				return result, fmt.Errorf("clearing %s: %w", tier, err)
			}
			result.PatchesRemoved += int(removed)
		}
	}

	for _, doc := range docs {
		for _, p := range doc.Patches {
			if err := db.UpsertPatch(ctx, doc.Tier, p); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("upserting item %d from %s: %w", p.ItemID, doc.SourceFile, err))
				continue
			}
			result.PatchesUpserted++
		}
		for _, id := range doc.Removals {
			removed, err := db.DeletePatch(ctx, doc.Tier, id)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("removing item %d from %s: %w", id, doc.SourceFile, err))
				continue
			}
			if removed {
				result.PatchesRemoved++
			}
		}
	}

	return result, nil
}

func walkPatchFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if isExcluded(path, excluded) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if path != root && !isPatchFile(d.Name()) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isPatchFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
