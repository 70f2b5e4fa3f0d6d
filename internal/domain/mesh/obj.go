// Package mesh reads triangle meshes for atlas work: vertex positions plus a
// flat index buffer, the same shape a renderer uploads to the GPU.
package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Indices holds three entries per face.
type Mesh struct {
	Positions []r3.Vec
	Indices   []uint32
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int { return len(m.Indices) / 3 }

// Triangle returns the vertex indices of a face.
func (m *Mesh) Triangle(face int) ([3]int, bool) {
	return atlas.TriangleAt(m.Indices, face)
}

// ParseOBJ reads Wavefront OBJ geometry. Only "v" and "f" statements are used;
// normals, texture coordinates, groups and materials are ignored. Polygons are
// fan-triangulated. Face indices are 1-based; negative indices count back from
// the most recent vertex.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0

	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var c [3]float64
			for i := range c {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: vertex coordinate %q: %w", lineNo, fields[i+1], err)
				}
				if math.IsNaN(f) || math.IsInf(f, 0) {
					return nil, fmt.Errorf("line %d: vertex coordinate %q is not finite", lineNo, fields[i+1])
				}
				c[i] = f
			}
			m.Positions = append(m.Positions, r3.Vec{X: c[0], Y: c[1], Z: c[2]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			poly := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				v, err := faceVertex(ref, len(m.Positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				poly = append(poly, v)
			}
			for i := 1; i+1 < len(poly); i++ {
				m.Indices = append(m.Indices, poly[0], poly[i], poly[i+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	return m, nil
}

// faceVertex resolves one "v", "v/vt", "v/vt/vn" or "v//vn" reference to a
// 0-based position index.
func faceVertex(ref string, count int) (uint32, error) {
	head, _, _ := strings.Cut(ref, "/")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("face vertex %q: %w", ref, err)
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += count
	default:
		return 0, fmt.Errorf("face vertex %q: index 0 is invalid", ref)
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("face vertex %q: out of range (%d vertices)", ref, count)
	}
	return uint32(n), nil
}
