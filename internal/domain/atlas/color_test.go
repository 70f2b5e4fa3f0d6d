package atlas

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Color mapping: per-vertex RGB buffer with selection and hover highlight
// =============================================================================

func testTable() ColorTable {
	t := NewColorTable()
	t.ByName["A"] = RGB{R: 0.8, G: 0.4, B: 0.2}
	t.ByID[2] = RGB{R: 0.1, G: 0.2, B: 0.3}
	return t
}

func vertexColor(buf []float32, i int) [3]float32 {
	return [3]float32{buf[i*3], buf[i*3+1], buf[i*3+2]}
}

// scaled is c brightened by m, clamped and rounded once to float32.
func scaled(c RGB, m float64) [3]float32 {
	return [3]float32{
		float32(math.Min(c.R*m, 1)),
		float32(math.Min(c.G*m, 1)),
		float32(math.Min(c.B*m, 1)),
	}
}

func TestBuildColorBuffer_Length(t *testing.T) {
	buf := BuildColorBuffer(5, Parse(""), testTable(), "", "")
	assert.Len(t, buf, 15)

	assert.Empty(t, BuildColorBuffer(0, nil, ColorTable{}, "", ""))
	assert.Empty(t, BuildColorBuffer(-3, nil, ColorTable{}, "", ""))
}

func TestBuildColorBuffer_UnmappedVertexAlwaysGray(t *testing.T) {
	idx := Parse("0 1 A\n")
	for _, sel := range []string{"", "A", "Region_1"} {
		for _, hov := range []string{"", "A"} {
			buf := BuildColorBuffer(2, idx, testTable(), sel, hov)
			assert.Equal(t, scaled(DefaultGray, 1), vertexColor(buf, 1), "selected=%q hovered=%q", sel, hov)
		}
	}
}

func TestBuildColorBuffer_NameThenIDLookup(t *testing.T) {
	table := testTable()
	table.ByID[1] = RGB{R: 0, G: 1, B: 0} // loses to the name entry for A

	idx := Parse("0 1 A\n1 2 B\n2 3 C\n")
	buf := BuildColorBuffer(3, idx, table, "", "")

	assert.Equal(t, scaled(table.ByName["A"], 1), vertexColor(buf, 0), "name wins over id")
	assert.Equal(t, scaled(table.ByID[2], 1), vertexColor(buf, 1), "id fallback")
	assert.Equal(t, scaled(DefaultGray, 1), vertexColor(buf, 2), "no entry -> gray")
}

func TestBuildColorBuffer_Highlights(t *testing.T) {
	idx := Parse("0 1 A\n1 2 B\n")
	table := testTable()
	a, b := table.ByName["A"], table.ByID[2]

	buf := BuildColorBuffer(2, idx, table, "A", "B")
	assert.Equal(t, scaled(a, SelectedBoost), vertexColor(buf, 0))
	assert.Equal(t, scaled(b, HoveredBoost), vertexColor(buf, 1))

	// Selected beats hovered for the same region.
	buf = BuildColorBuffer(1, idx, table, "A", "A")
	assert.Equal(t, float32(a.G*1.5), buf[1])
}

func TestBuildColorBuffer_HighlightMatchesNameNotID(t *testing.T) {
	idx := Parse("0 2 B\n")
	table := testTable()

	buf := BuildColorBuffer(1, idx, table, "Region_2", "2")
	assert.Equal(t, scaled(table.ByID[2], 1), vertexColor(buf, 0))
}

func TestBuildColorBuffer_GrayRegionStillBrightens(t *testing.T) {
	idx := Parse("0 9 Unknown\n")
	buf := BuildColorBuffer(1, idx, ColorTable{}, "Unknown", "")
	assert.Equal(t, float32(min(DefaultGray.R*1.5, 1)), buf[0])
}

func TestBuildColorBuffer_ClampNeverExceedsOne(t *testing.T) {
	idx := Parse("0 1 A\n")
	for _, c := range []float64{0, 0.1, 0.5, 0.66, 0.67, 0.9, 1} {
		table := NewColorTable()
		table.ByName["A"] = RGB{R: c, G: c, B: c}
		buf := BuildColorBuffer(1, idx, table, "A", "")
		assert.Equal(t, float32(min(c*1.5, 1)), buf[0], "c=%v", c)
		assert.LessOrEqual(t, buf[0], float32(1))
	}
}

func TestBuildColorBuffer_RoundsOnceFromDouble(t *testing.T) {
	// Every 8-bit channel value under both boosts: the product is taken in
	// float64 and only the stored result is narrowed.
	idx := Parse("0 1 Sel\n1 2 Hov\n")
	for v := 0; v < 256; v++ {
		hex := fmt.Sprintf("#%02X%02X%02X", v, v, v)
		table := NewColorTable()
		table.ByName["Sel"] = HexToRGB(hex)
		table.ByName["Hov"] = HexToRGB(hex)

		buf := BuildColorBuffer(2, idx, table, "Sel", "Hov")
		c := float64(v) / 255
		require.Equal(t, float32(math.Min(c*1.5, 1)), buf[0], "selected v=%d", v)
		require.Equal(t, float32(math.Min(c*1.2, 1)), buf[3], "hovered v=%d", v)
		require.Equal(t, float32(c), BuildColorBuffer(1, idx, table, "", "")[0], "plain v=%d", v)
	}
}

func TestBuildColorBuffer_Deterministic(t *testing.T) {
	idx := Parse("0 1 A\n1 2 B\n3 1 A\n")
	first := EncodeColorBuffer(BuildColorBuffer(6, idx, testTable(), "A", "B"))
	second := EncodeColorBuffer(BuildColorBuffer(6, idx, testTable(), "A", "B"))
	assert.Equal(t, first, second)
}

func TestEncodeColorBuffer_RoundTrip(t *testing.T) {
	buf := []float32{0.7, 0.25, 1}
	data := EncodeColorBuffer(buf)
	require.Len(t, data, 12)
	assert.Equal(t, buf, DecodeColorBuffer(data))
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, data[8:], "1.0 little-endian")
}

func TestColorTable_Merge(t *testing.T) {
	a := NewColorTable()
	a.ByName["X"] = RGB{R: 1}
	b := NewColorTable()
	b.ByName["X"] = RGB{G: 1}
	b.ByID[4] = RGB{B: 1}

	a.Merge(b)
	assert.Equal(t, RGB{G: 1}, a.ByName["X"])
	assert.Equal(t, 2, a.Len())
}
