package atlas

// FaceQuery identifies a clicked or hovered triangle.
type FaceQuery struct {
	Face     int    `json:"face"`
	Triangle [3]int `json:"triangle"`
}

// ResolveFace resolves q.Triangle against idx. The face index is carried for
// callers that log or echo it; only the triangle's vertices are consulted.
func ResolveFace(q FaceQuery, idx *Index) (VertexLabel, bool) {
	return ResolveRegion(q.Triangle, idx)
}

// ResolveRegion picks the region under a triangle by majority vote over its
// labeled vertices. Ties go to the region seen first in v1, v2, v3 order, and
// the returned label is the first hit carrying that region name.
// Returns false when none of the three vertices is labeled.
func ResolveRegion(tri [3]int, idx *Index) (VertexLabel, bool) {
	var hits [3]VertexLabel
	n := 0
	for _, v := range tri {
		if l, ok := idx.Lookup(v); ok {
			hits[n] = l
			n++
		}
	}
	if n == 0 {
		return VertexLabel{}, false
	}

	best, bestCount := 0, 0
	for i := 0; i < n; i++ {
		if firstWithName(hits[:n], hits[i].RegionName) != i {
			continue // already counted
		}
		count := 0
		for j := i; j < n; j++ {
			if hits[j].RegionName == hits[i].RegionName {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return hits[best], true
}

func firstWithName(hits []VertexLabel, name string) int {
	for i, h := range hits {
		if h.RegionName == name {
			return i
		}
	}
	return -1
}

// TriangleAt reads the three vertex indices of a face from an index buffer.
// Returns false when the face lies outside the buffer.
func TriangleAt(indices []uint32, face int) ([3]int, bool) {
	if face < 0 || face >= len(indices)/3 {
		return [3]int{}, false
	}
	base := face * 3
	return [3]int{int(indices[base]), int(indices[base+1]), int(indices[base+2])}, true
}

// ResolveMeshFace resolves a face straight from a mesh index buffer.
func ResolveMeshFace(indices []uint32, face int, idx *Index) (VertexLabel, bool) {
	tri, ok := TriangleAt(indices, face)
	if !ok {
		return VertexLabel{}, false
	}
	return ResolveRegion(tri, idx)
}
