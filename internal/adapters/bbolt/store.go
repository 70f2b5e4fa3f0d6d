// Package bbolt implements the ports.Storage interface using bbolt (embedded B+ tree).
// Each cached atlas gets its own sub-bucket under "atlases". Within it, "meta"
// holds JSON metadata and "labels" the binary-encoded index. Writes are
// transactional, so a crash mid-write leaves the previous entry intact.
package bbolt

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/corey/neuroatlas/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketAtlases = []byte("atlases")
	keyMeta       = []byte("meta")
	keyLabels     = []byte("labels")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAtlas persists a parsed index under meta.Name.
func (s *Store) SaveAtlas(meta ports.AtlasMeta, idx *atlas.Index) error {
	if idx == nil {
		return fmt.Errorf("nil atlas index")
	}
	if meta.Name == "" {
		return fmt.Errorf("atlas name required")
	}

	labels, err := encodeIndex(idx)
	if err != nil {
		return fmt.Errorf("encode atlas %s: %w", meta.Name, err)
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(bucketAtlases)
		if err != nil {
			return err
		}
		// Replace wholesale so a smaller atlas never inherits stale keys.
		if err := root.DeleteBucket([]byte(meta.Name)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		ab, err := root.CreateBucket([]byte(meta.Name))
		if err != nil {
			return err
		}
		if err := ab.Put(keyMeta, metaJSON); err != nil {
			return err
		}
		return ab.Put(keyLabels, labels)
	})
}

// LoadAtlas retrieves a cached index.
// Returns nil, nil, nil if no entry exists.
func (s *Store) LoadAtlas(name string) (*ports.AtlasMeta, *atlas.Index, error) {
	var metaJSON, labels []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketAtlases)
		if root == nil {
			return nil
		}
		ab := root.Bucket([]byte(name))
		if ab == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := ab.Get(keyMeta); v != nil {
			metaJSON = make([]byte, len(v))
			copy(metaJSON, v)
		}
		if v := ab.Get(keyLabels); v != nil {
			labels = make([]byte, len(v))
			copy(labels, v)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if metaJSON == nil || labels == nil {
		return nil, nil, nil
	}

	var meta ports.AtlasMeta
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return nil, nil, fmt.Errorf("unmarshal meta %s: %w", name, err)
	}
	idx, err := decodeIndex(labels)
	if err != nil {
		return nil, nil, fmt.Errorf("decode atlas %s: %w", name, err)
	}
	return &meta, idx, nil
}

// ListAtlases returns the metadata of every cached atlas, sorted by name.
func (s *Store) ListAtlases() ([]ports.AtlasMeta, error) {
	var out []ports.AtlasMeta

	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketAtlases)
		if root == nil {
			return nil
		}
		return root.ForEachBucket(func(k []byte) error {
			v := root.Bucket(k).Get(keyMeta)
			if v == nil {
				return nil
			}
			var meta ports.AtlasMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return fmt.Errorf("unmarshal meta %s: %w", k, err)
			}
			out = append(out, meta)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteAtlas removes a cached atlas.
// Idempotent: deleting a nonexistent entry is not an error.
func (s *Store) DeleteAtlas(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketAtlases)
		if root == nil {
			return nil
		}
		if err := root.DeleteBucket([]byte(name)); err == bolt.ErrBucketNotFound {
			return nil // idempotent
		} else {
			return err
		}
	})
}
