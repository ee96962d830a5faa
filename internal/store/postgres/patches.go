package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"itempatch/internal/store"
)

func (c *Client) QueryTier(ctx context.Context, tier store.Tier) ([]store.NamePatch, error) {
	if err := tier.Validate(); err != nil {
		return nil, err
	}

	rows, err := c.pool.Query(ctx, fmt.Sprintf("SELECT item_id, patched_name FROM %s ORDER BY item_id", tier.TableName()))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tier, err)
	}
	patches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.NamePatch, error) {
		var p store.NamePatch
		var id int32
		if err := row.Scan(&id, &p.Name); err != nil {
			return p, err
		}
		p.ItemID = int(id)
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s rows: %w", tier, err)
	}
	return patches, nil
}

func (c *Client) UpsertPatch(ctx context.Context, tier store.Tier, patch store.NamePatch) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (item_id, patched_name) VALUES ($1, $2)
ON CONFLICT (item_id) DO UPDATE SET patched_name = EXCLUDED.patched_name`, tier.TableName())
	if _, err := c.pool.Exec(ctx, query, patch.ItemID, patch.Name); err != nil {
		return fmt.Errorf("upserting %s patch %d: %w", tier, patch.ItemID, err)
	}
	return nil
}

func (c *Client) DeletePatch(ctx context.Context, tier store.Tier, itemID int) (bool, error) {
	if err := tier.Validate(); err != nil {
		return false, err
	}
	tag, err := c.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE item_id = $1", tier.TableName()), itemID)
	if err != nil {
		return false, fmt.Errorf("deleting %s patch %d: %w", tier, itemID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (c *Client) ClearTier(ctx context.Context, tier store.Tier) (int64, error) {
	if err := tier.Validate(); err != nil {
		return 0, err
	}
	tag, err := c.pool.Exec(ctx, "DELETE FROM "+tier.TableName())
	if err != nil {
		return 0, fmt.Errorf("clearing %s: %w", tier, err)
	}
	return tag.RowsAffected(), nil
}

func (c *Client) CountTier(ctx context.Context, tier store.Tier) (int, error) {
	if err := tier.Validate(); err != nil {
		return 0, err
	}
	var n int64
	if err := c.pool.QueryRow(ctx, "SELECT count(*) FROM "+tier.TableName()).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", tier, err)
	}
	return int(n), nil
}
