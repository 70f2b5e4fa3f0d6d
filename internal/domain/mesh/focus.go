package mesh

import (
	"github.com/corey/neuroatlas/internal/domain/atlas"
	"gonum.org/v1/gonum/spatial/r3"
)

// Focus is where a camera should aim to frame a region.
type Focus struct {
	Region   string `json:"region"`
	Centroid r3.Vec `json:"centroid"`
	Bounds   r3.Box `json:"bounds"`
	Vertices int    `json:"vertices"` // labeled vertices present in the mesh
}

// FocusPoints computes a Focus for every region of idx that has at least one
// labeled vertex inside the mesh. Labels pointing past the mesh are ignored.
func FocusPoints(m *Mesh, idx *atlas.Index) map[string]Focus {
	out := make(map[string]Focus)
	sums := make(map[string]r3.Vec)

	for _, l := range idx.Labels() {
		if l.Vertex >= len(m.Positions) {
			continue
		}
		p := m.Positions[l.Vertex]

		f, ok := out[l.RegionName]
		if !ok {
			f = Focus{Region: l.RegionName, Bounds: r3.Box{Min: p, Max: p}}
		}
		f.Bounds = r3.Box{
			Min: r3.Vec{X: min(f.Bounds.Min.X, p.X), Y: min(f.Bounds.Min.Y, p.Y), Z: min(f.Bounds.Min.Z, p.Z)},
			Max: r3.Vec{X: max(f.Bounds.Max.X, p.X), Y: max(f.Bounds.Max.Y, p.Y), Z: max(f.Bounds.Max.Z, p.Z)},
		}
		f.Vertices++
		out[l.RegionName] = f
		sums[l.RegionName] = r3.Add(sums[l.RegionName], p)
	}

	for name, f := range out {
		f.Centroid = r3.Scale(1/float64(f.Vertices), sums[name])
		out[name] = f
	}
	return out
}
