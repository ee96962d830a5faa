package store

import (
	"context"
	"errors"
)

var (
	ErrInvalidTier       = errors.New("invalid patch tier")
	ErrUnsupportedScheme = errors.New("unsupported DSN scheme")
)

// PatchSource is the read side the name resolver consumes. Results for a
// tier must be repeatable between calls.
type PatchSource interface {
	QueryTier(ctx context.Context, tier Tier) ([]NamePatch, error)
	Close(ctx context.Context) error
}

type Store interface {
	PatchSource

	EnsureSchema(ctx context.Context) error
	UpsertPatch(ctx context.Context, tier Tier, patch NamePatch) error
	DeletePatch(ctx context.Context, tier Tier, itemID int) (bool, error)
	ClearTier(ctx context.Context, tier Tier) (int64, error)
	CountTier(ctx context.Context, tier Tier) (int, error)
}

type SQLRunner interface {
	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
