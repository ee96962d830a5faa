package bolt

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	bbolt "go.etcd.io/bbolt"

	"itempatch/internal/store"
)

var _ store.Store = (*Client)(nil)

// Client keeps each tier in its own bucket, keyed by the 8-byte big-endian
// item id so cursor order matches id order.
type Client struct {
	db *bbolt.DB
}

// lockTimeout bounds the wait for another process holding the file lock.
const lockTimeout = 5 * time.Second

func New(ctx context.Context, dsn string) (*Client, error) {
	return openDB(dsn, &bbolt.Options{Timeout: lockTimeout})
}

// NewReadOnly opens an existing database under a shared lock. A missing file
// is an error rather than a new empty database.
func NewReadOnly(ctx context.Context, dsn string) (*Client, error) {
	return openDB(dsn, &bbolt.Options{ReadOnly: true, Timeout: lockTimeout})
}

func openDB(dsn string, opts *bbolt.Options) (*Client, error) {
	path, ok := strings.CutPrefix(dsn, "bolt://")
	if !ok || path == "" {
		return nil, fmt.Errorf("invalid bolt DSN %q, expected bolt://<path>", dsn)
	}
	db, err := bbolt.Open(path, 0o600, opts)
	if err != nil {
		return nil, fmt.Errorf("opening bolt database %s: %w", path, err)
	}
	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Client) EnsureSchema(ctx context.Context) error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		for _, tier := range store.Tiers {
			if _, err := tx.CreateBucketIfNotExists(bucketName(tier)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating tier buckets: %w", err)
	}
	return nil
}

func (c *Client) QueryTier(ctx context.Context, tier store.Tier) ([]store.NamePatch, error) {
	if err := tier.Validate(); err != nil {
		return nil, err
	}
	patches := make([]store.NamePatch, 0)
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName(tier))
		if b == nil {
			return fmt.Errorf("bucket %s missing", bucketName(tier))
		}
		return b.ForEach(func(k, v []byte) error {
			id, err := keyToID(k)
			if err != nil {
				return err
			}
			patches = append(patches, store.NamePatch{ItemID: id, Name: string(v)})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tier, err)
	}
	return patches, nil
}

func (c *Client) UpsertPatch(ctx context.Context, tier store.Tier, patch store.NamePatch) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	if patch.ItemID < 0 {
		return fmt.Errorf("upserting %s patch: negative item id %d", tier, patch.ItemID)
	}
	err := c.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName(tier))
		if err != nil {
			return err
		}
		return b.Put(idToKey(patch.ItemID), []byte(patch.Name))
	})
	if err != nil {
		return fmt.Errorf("upserting %s patch %d: %w", tier, patch.ItemID, err)
	}
	return nil
}

func (c *Client) DeletePatch(ctx context.Context, tier store.Tier, itemID int) (bool, error) {
	if err := tier.Validate(); err != nil {
		return false, err
	}
	if itemID < 0 {
		return false, nil
	}
	var found bool
	err := c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName(tier))
		if b == nil {
			return nil
		}
		key := idToKey(itemID)
		if b.Get(key) == nil {
			return nil
		}
		found = true
		return b.Delete(key)
	})
	if err != nil {
		return false, fmt.Errorf("deleting %s patch %d: %w", tier, itemID, err)
	}
	return found, nil
}

func (c *Client) ClearTier(ctx context.Context, tier store.Tier) (int64, error) {
	if err := tier.Validate(); err != nil {
		return 0, err
	}
	var n int64
	err := c.db.Update(func(tx *bbolt.Tx) error {
		name := bucketName(tier)
		if b := tx.Bucket(name); b != nil {
			n = int64(b.Stats().KeyN)
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(name)
		return err
	})
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
	err := c.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketName(tier)); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", tier, err)
	}
	return n, nil
}

func bucketName(tier store.Tier) []byte {
	return []byte(tier.TableName())
}

func idToKey(id int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

func keyToID(k []byte) (int, error) {
	if len(k) != 8 {
		return 0, fmt.Errorf("malformed item key of length %d", len(k))
	}
	return int(binary.BigEndian.Uint64(k)), nil
}
