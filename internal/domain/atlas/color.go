package atlas

import (
	"encoding/binary"
	"math"
)

// RGB is a linear color with components in [0,1]. Components stay float64
// until they are written into a buffer, so each one is rounded exactly once.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// DefaultGray colors every vertex without a label or without a table entry.
var DefaultGray = RGB{R: 0.7, G: 0.7, B: 0.7}

// Highlight multipliers.
const (
	SelectedBoost = 1.5
	HoveredBoost  = 1.2
)

// ColorTable maps regions to colors. Name keys take priority over id keys.
type ColorTable struct {
	ByName map[string]RGB
	ByID   map[int]RGB
}

// NewColorTable returns an empty table ready for inserts.
func NewColorTable() ColorTable {
	return ColorTable{ByName: make(map[string]RGB), ByID: make(map[int]RGB)}
}

// Len returns the number of keys across both maps.
func (t ColorTable) Len() int {
	return len(t.ByName) + len(t.ByID)
}

// Color looks up a label's base color: region name first, then region id.
func (t ColorTable) Color(l VertexLabel) (RGB, bool) {
	if c, ok := t.ByName[l.RegionName]; ok {
		return c, true
	}
	if c, ok := t.ByID[l.RegionID]; ok {
		return c, true
	}
	return RGB{}, false
}

// Merge copies every entry of other into t, overwriting on conflict.
func (t ColorTable) Merge(other ColorTable) {
	for k, v := range other.ByName {
		t.ByName[k] = v
	}
	for k, v := range other.ByID {
		t.ByID[k] = v
	}
}

// BuildColorBuffer produces an interleaved RGB buffer of vertexCount*3 floats.
//
// Unlabeled vertices are DefaultGray whatever the highlight state. Labeled
// vertices take their table color (or DefaultGray) scaled by SelectedBoost when
// their region name equals selected, else HoveredBoost when it equals hovered.
// Components are clamped to 1.0. Highlight matching compares names only.
// An empty selected or hovered means nothing is highlighted.
func BuildColorBuffer(vertexCount int, idx *Index, table ColorTable, selected, hovered string) []float32 {
	if vertexCount < 0 {
		vertexCount = 0
	}
	buf := make([]float32, vertexCount*3)
	for i := 0; i < vertexCount; i++ {
		c := DefaultGray
		m := 1.0

		if l, ok := idx.Lookup(i); ok {
			if tc, ok := table.Color(l); ok {
				c = tc
			}
			switch {
			case selected != "" && l.RegionName == selected:
				m = SelectedBoost
			case hovered != "" && l.RegionName == hovered:
				m = HoveredBoost
			}
		}

		buf[i*3] = float32(min(c.R*m, 1.0))
		buf[i*3+1] = float32(min(c.G*m, 1.0))
		buf[i*3+2] = float32(min(c.B*m, 1.0))
	}
	return buf
}

// EncodeColorBuffer lays out buf as little-endian float32 bytes, the layout
// GPU vertex attribute uploads expect.
func EncodeColorBuffer(buf []float32) []byte {
	out := make([]byte, len(buf)*4)
	for i, f := range buf {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// DecodeColorBuffer is the inverse of EncodeColorBuffer. Trailing bytes that
// do not form a whole float are ignored.
func DecodeColorBuffer(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}
