package web

import (
	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/corey/neuroatlas/internal/domain/catalog"
	"github.com/corey/neuroatlas/internal/ports"
)

// HealthResult is the body of GET /api/health.
type HealthResult struct {
	Status   string `json:"status"`
	Atlas    string `json:"atlas,omitempty"`
	Vertices int    `json:"vertices"`
	Regions  int    `json:"regions"`
	Uptime   string `json:"uptime"`
}

// AtlasResult is the body of GET /api/atlas.
type AtlasResult struct {
	Meta    ports.AtlasMeta     `json:"meta"`
	Regions []atlas.RegionStats `json:"regions"`
}

// RegionInfo joins catalog metadata with the loaded atlas' stats for the
// same region name. Stats is nil when the atlas has no vertices for it.
type RegionInfo struct {
	catalog.Region
	Stats *atlas.RegionStats `json:"stats,omitempty"`
	Terms []string           `json:"terms,omitempty"` // matched query terms
}

// RegionsResult is the body of GET /api/regions.
type RegionsResult struct {
	Catalog string       `json:"catalog"`
	Regions []RegionInfo `json:"regions"`
	Count   int          `json:"count"`
}

// CatalogResult is the body of GET /api/catalog: what the region filters and
// color schemes accept.
type CatalogResult struct {
	Catalog     string   `json:"catalog"`
	Count       int      `json:"count"`
	Lobes       []string `json:"lobes"`
	Hemispheres []string `json:"hemispheres"`
	Schemes     []string `json:"schemes"`
}

// StructureResult is the body of GET /api/structure: main regions with their
// parts. With ?q= the body is a catalog.StructureHits instead.
type StructureResult struct {
	Regions []catalog.Node `json:"regions"`
}

// ResolveRequest is the body of POST /api/resolve. Triangle must hold exactly
// three vertex indices.
type ResolveRequest struct {
	Face     int   `json:"face"`
	Triangle []int `json:"triangle"`
}

// ResolveResult is the response of POST /api/resolve. Found is false when no
// vertex of the triangle is labeled.
type ResolveResult struct {
	Found  bool               `json:"found"`
	Label  *atlas.VertexLabel `json:"label,omitempty"`
	Region *catalog.Region    `json:"region,omitempty"`
}

// ColorsRequest is the body of POST /api/colors.
type ColorsRequest struct {
	VertexCount int    `json:"vertexCount"`
	Selected    string `json:"selected"`
	Hovered     string `json:"hovered"`
}

// ColorsResult is the JSON form of a color buffer.
type ColorsResult struct {
	VertexCount int       `json:"vertexCount"`
	Colors      []float32 `json:"colors"`
}

type errorResult struct {
	Error string `json:"error"`
}
