// Package open picks a patch store backend from a DSN.
package open

import (
	"context"
	"fmt"
	"strings"

	"itempatch/internal/store"
	"itempatch/internal/store/bolt"
	"itempatch/internal/store/postgres"
	"itempatch/internal/store/sqlite"
)

func Open(ctx context.Context, dsn string) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch Scheme(dsn) {
	case "sqlite":
		db, err = sqlite.New(ctx, dsn)
	case "postgres", "postgresql":
		db, err = postgres.New(ctx, dsn)
	case "bolt":
		db, err = bolt.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnsupportedScheme, dsn)
	}
	if err != nil {
		return nil, err
	}
	return db, nil
}

// OpenReadOnly opens an existing store for reading. Unlike Open it never
// creates a missing sqlite or bolt file.
func OpenReadOnly(ctx context.Context, dsn string) (store.PatchSource, error) {
	var (
		src store.PatchSource
		err error
	)
	switch Scheme(dsn) {
	case "sqlite":
		src, err = sqlite.NewReadOnly(ctx, dsn)
	case "postgres", "postgresql":
		src, err = postgres.New(ctx, dsn)
	case "bolt":
		src, err = bolt.NewReadOnly(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnsupportedScheme, dsn)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

// Source adapts OpenReadOnly to the resolver's per-call acquisition.
func Source(dsn string) func(ctx context.Context) (store.PatchSource, error) {
	return func(ctx context.Context) (store.PatchSource, error) {
		return OpenReadOnly(ctx, dsn)
	}
}

func Scheme(dsn string) string {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return ""
	}
	return strings.ToLower(scheme)
}
