package sqlite

import (
	"context"
	"fmt"

	"itempatch/internal/store"
)

func (c *Client) QueryTier(ctx context.Context, tier store.Tier) ([]store.NamePatch, error) {
	if err := tier.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT item_id, patched_name FROM %s ORDER BY item_id", tier.TableName())
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tier, err)
	}
	defer rows.Close()

	patches := make([]store.NamePatch, 0)
	for rows.Next() {
		var p store.NamePatch
		if err := rows.Scan(&p.ItemID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", tier, err)
		}
		patches = append(patches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", tier, err)
	}
	return patches, nil
}

func (c *Client) UpsertPatch(ctx context.Context, tier store.Tier, patch store.NamePatch) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (item_id, patched_name) VALUES (?, ?)
ON CONFLICT (item_id) DO UPDATE SET patched_name = excluded.patched_name`, tier.TableName())
	if _, err := c.db.ExecContext(ctx, query, patch.ItemID, patch.Name); err != nil {
		return fmt.Errorf("upserting %s patch %d: %w", tier, patch.ItemID, err)
	}
	return nil
}

func (c *Client) DeletePatch(ctx context.Context, tier store.Tier, itemID int) (bool, error) {
	if err := tier.Validate(); err != nil {
		return false, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE item_id = ?", tier.TableName())
	res, err := c.db.ExecContext(ctx, query, itemID)
	if err != nil {
		return false, fmt.Errorf("deleting %s patch %d: %w", tier, itemID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting %s patch %d: %w", tier, itemID, err)
	}
	return n > 0, nil
}

func (c *Client) ClearTier(ctx context.Context, tier store.Tier) (int64, error) {
	if err := tier.Validate(); err != nil {
		return 0, err
	}
	res, err := c.db.ExecContext(ctx, "DELETE FROM "+tier.TableName())
	if err != nil {
		return 0, fmt.Errorf("clearing %s: %w", tier, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing %s: %w", tier, err)
	}
	return n, nil
}

func (c *Client) CountTier(ctx context.Context, tier store.Tier) (int, error) {
	if err := tier.Validate(); err != nil {
		return 0, err
	}
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT count(*) FROM "+tier.TableName()).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", tier, err)
	}
	return n, nil
}
