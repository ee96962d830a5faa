package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS patched_names_type1 (
    item_id      INTEGER PRIMARY KEY,
    patched_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS patched_names_type2 (
    item_id      INTEGER PRIMARY KEY,
    patched_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS patched_names_type3 (
    item_id      INTEGER PRIMARY KEY,
    patched_name TEXT NOT NULL
);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
