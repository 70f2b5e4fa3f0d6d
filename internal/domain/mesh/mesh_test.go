package mesh

import (
	"math"
	"strings"
	"testing"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const quadOBJ = `# unit quad split into two triangles
o quad
v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
vn 0 0 1
vt 0 0
f 1/1/1 2/1/1 3/1/1
f 1//1 3//1 4//1
`

func TestParseOBJ_Triangles(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.FaceCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)

	tri, ok := m.Triangle(1)
	require.True(t, ok)
	assert.Equal(t, [3]int{0, 2, 3}, tri)
	_, ok = m.Triangle(2)
	assert.False(t, ok)
	_, ok = m.Triangle(math.MaxInt)
	assert.False(t, ok)
}

func TestParseOBJ_FanTriangulatesPolygons(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv -1 0 0\nf 1 2 3 4 5\n"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4}, m.Indices)
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 1 1 0\nf -3 -2 -1\n"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		obj  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad coordinate", "v 1 x 3\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"index zero", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 0 1 2\n"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 4\n"},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf a 2 3\n"},
		{"nan coordinate", "v 0 nan 0\n"},
		{"inf coordinate", "v 0 0 0\nv +Inf 0 0\n"},
		{"negative inf coordinate", "v -infinity 0 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.obj))
			assert.Error(t, err)
		})
	}
}

func TestParseOBJ_NonFiniteErrorNamesLine(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 NaN 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "not finite")
}

func TestFocusPoints(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	idx := atlas.Parse("0 1 A\n1 1 A\n2 2 B\n3 2 B\n99 3 C\n")

	focus := FocusPoints(m, idx)

	require.Len(t, focus, 2, "C only labels a vertex outside the mesh")
	a := focus["A"]
	assert.Equal(t, 2, a.Vertices)
	assert.Equal(t, r3.Vec{X: 1, Y: 0, Z: 0}, a.Centroid)
	assert.Equal(t, r3.Box{Min: r3.Vec{}, Max: r3.Vec{X: 2}}, a.Bounds)

	b := focus["B"]
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 0}, b.Centroid)
}

func TestFocusPoints_EmptyAtlas(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	assert.Empty(t, FocusPoints(m, atlas.Parse("")))
}
