package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"itempatch/internal/store"

	_ "modernc.org/sqlite"
)

var (
	_ store.Store     = (*Client)(nil)
	_ store.SQLRunner = (*Client)(nil)
)

type Client struct {
	db *sql.DB
}

func New(ctx context.Context, dsn string) (*Client, error) {
	driverDSN, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}
	// rollback journal, so the file stays readable through NewReadOnly
	return open(ctx, driverDSN, "PRAGMA busy_timeout = 30000;")
}

// NewReadOnly opens an existing database without creating it or changing its
// journal mode. A missing file is reported as an error.
func NewReadOnly(ctx context.Context, dsn string) (*Client, error) {
	driverDSN, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}
	if driverDSN == memoryDSN {
		return open(ctx, driverDSN)
	}

	path, query, _ := strings.Cut(driverDSN, "?")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	uri := "file:" + uriEscaper.Replace(path) + "?mode=ro"
	if query != "" {
		uri += "&" + query
	}
	return open(ctx, uri, "PRAGMA busy_timeout = 30000;")
}

var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

func open(ctx context.Context, driverDSN string, pragmas ...string) (*Client, error) {
	db, err := sql.Open("sqlite", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if driverDSN == memoryDSN {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close()
}
