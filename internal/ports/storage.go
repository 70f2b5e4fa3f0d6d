// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "github.com/corey/neuroatlas/internal/domain/atlas"

// Storage caches parsed atlases so a restart does not reparse unchanged files.
// Entries are keyed by atlas name. Concurrent reads are safe; writes are
// serialized by the adapter.
//
// Crash safety: SaveAtlas must be transactional. A crash mid-write must not
// corrupt previously committed data.
type Storage interface {
	// SaveAtlas persists a parsed index and its metadata.
	// Overwrites any prior entry with the same meta.Name.
	SaveAtlas(meta AtlasMeta, idx *atlas.Index) error

	// LoadAtlas retrieves a cached index.
	// Returns nil, nil, nil if no entry exists.
	LoadAtlas(name string) (*AtlasMeta, *atlas.Index, error)

	// ListAtlases returns the metadata of every cached atlas, sorted by name.
	ListAtlases() ([]AtlasMeta, error)

	// DeleteAtlas removes a cached atlas.
	// Idempotent: deleting a nonexistent entry is not an error.
	DeleteAtlas(name string) error
}

// AtlasMeta describes where a cached index came from.
type AtlasMeta struct {
	Name     string `json:"name"`     // cache key (defaults to the file's base name)
	Source   string `json:"source"`   // absolute path of the atlas file
	Checksum string `json:"checksum"` // hex SHA-256 of the file content
	ParsedAt int64  `json:"parsedAt"` // unix seconds
	Vertices int    `json:"vertices"`
	Regions  int    `json:"regions"`
}
