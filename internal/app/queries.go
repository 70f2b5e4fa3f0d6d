package app

import (
	"github.com/corey/neuroatlas/internal/adapters/ahocorasick"
	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/corey/neuroatlas/internal/domain/catalog"
	"github.com/corey/neuroatlas/internal/ports"
)

// Query methods read the current atlas lock-free. They are safe to call
// from HTTP handlers while a reload is in progress.

func newMatcher() ports.PatternMatcher { return ahocorasick.New(nil) }

// Atlas returns the current index and its metadata, or ErrNoAtlas.
func (a *App) Atlas() (*atlas.Index, ports.AtlasMeta, error) {
	cur := a.current.Load()
	if cur == nil {
		return nil, ports.AtlasMeta{}, ErrNoAtlas
	}
	return cur.idx, cur.meta, nil
}

// Meta returns the current atlas metadata.
func (a *App) Meta() (ports.AtlasMeta, bool) {
	cur := a.current.Load()
	if cur == nil {
		return ports.AtlasMeta{}, false
	}
	return cur.meta, true
}

// Catalog returns the configured region catalog.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// ColorTable returns the region colors used for color buffers.
func (a *App) ColorTable() atlas.ColorTable { return a.table }

// Resolve maps a clicked face to a region.
func (a *App) Resolve(q atlas.FaceQuery) (atlas.VertexLabel, bool, error) {
	idx, _, err := a.Atlas()
	if err != nil {
		return atlas.VertexLabel{}, false, err
	}
	l, ok := atlas.ResolveFace(q, idx)
	return l, ok, nil
}

// Colors builds the per-vertex color buffer for the current atlas.
func (a *App) Colors(vertexCount int, selected, hovered string) ([]float32, error) {
	idx, _, err := a.Atlas()
	if err != nil {
		return nil, err
	}
	return atlas.BuildColorBuffer(vertexCount, idx, a.table, selected, hovered), nil
}

// SearchRegions runs a free-text query over the catalog.
func (a *App) SearchRegions(query string) []catalog.Hit {
	return a.searcher.Search(query)
}

// Structure returns the region -> part hierarchy.
func (a *App) Structure() *catalog.Structure { return a.structure }
