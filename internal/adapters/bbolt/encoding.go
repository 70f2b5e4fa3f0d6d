// Binary encoding for cached atlas blobs.
//
// Region names repeat across thousands of vertices, so they are interned into
// a name table and each label stores a reference. Region stats ride along in
// the same blob so a restored index keeps its first-seen order and counts.
//
// Format v1 (little-endian):
//
//	nameCount:  uint32
//	names:      [nameCount]× (len:uint16 + bytes)
//	labelCount: uint32
//	labels:     [labelCount]× (vertex:uint32 + regionID:int32 + nameRef:uint32)
//	statCount:  uint32
//	stats:      [statCount]× (nameRef:uint32 + id:int32 + count:uint32 + min:uint32 + max:uint32)
package bbolt

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/corey/neuroatlas/internal/domain/atlas"
)

const (
	labelSize = 12 // vertex + regionID + nameRef
	statSize  = 20 // nameRef + id + count + min + max
)

// encodeIndex encodes labels (sorted by vertex) and region stats (first-seen
// order). A single buffer is pre-allocated to avoid repeated growth.
func encodeIndex(idx *atlas.Index) ([]byte, error) {
	labels := idx.Labels()
	stats := idx.Regions()

	// Intern names. Stats cover every label name, so seed from them first.
	refs := make(map[string]uint32, len(stats))
	var names []string
	intern := func(name string) (uint32, error) {
		if ref, ok := refs[name]; ok {
			return ref, nil
		}
		if len(name) > math.MaxUint16 {
			return 0, fmt.Errorf("region name too long: %d bytes", len(name))
		}
		ref := uint32(len(names))
		refs[name] = ref
		names = append(names, name)
		return ref, nil
	}
	for _, st := range stats {
		if _, err := intern(st.Name); err != nil {
			return nil, err
		}
	}
	for _, l := range labels {
		if _, err := intern(l.RegionName); err != nil {
			return nil, err
		}
	}

	totalSize := 4 + 4 + len(labels)*labelSize + 4 + len(stats)*statSize
	for _, n := range names {
		totalSize += 2 + len(n)
	}
	buf := make([]byte, totalSize)
	offset := 0

	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(names)))
	offset += 4
	for _, n := range names {
		binary.LittleEndian.PutUint16(buf[offset:], uint16(len(n)))
		offset += 2
		copy(buf[offset:], n)
		offset += len(n)
	}

	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(labels)))
	offset += 4
	for _, l := range labels {
		if uint64(l.Vertex) > math.MaxUint32 {
			return nil, fmt.Errorf("vertex %d exceeds uint32", l.Vertex)
		}
		if l.RegionID < math.MinInt32 || l.RegionID > math.MaxInt32 {
			return nil, fmt.Errorf("region id %d exceeds int32", l.RegionID)
		}
		binary.LittleEndian.PutUint32(buf[offset:], uint32(l.Vertex))
		binary.LittleEndian.PutUint32(buf[offset+4:], uint32(int32(l.RegionID)))
		binary.LittleEndian.PutUint32(buf[offset+8:], refs[l.RegionName])
		offset += labelSize
	}

	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(stats)))
	offset += 4
	for _, st := range stats {
		if st.ID < math.MinInt32 || st.ID > math.MaxInt32 {
			return nil, fmt.Errorf("region id %d exceeds int32", st.ID)
		}
		binary.LittleEndian.PutUint32(buf[offset:], refs[st.Name])
		binary.LittleEndian.PutUint32(buf[offset+4:], uint32(int32(st.ID)))
		binary.LittleEndian.PutUint32(buf[offset+8:], uint32(st.VertexCount))
		binary.LittleEndian.PutUint32(buf[offset+12:], uint32(st.MinVertex))
		binary.LittleEndian.PutUint32(buf[offset+16:], uint32(st.MaxVertex))
		offset += statSize
	}

	return buf, nil
}

// decodeIndex decodes a blob written by encodeIndex.
// Every read is bounds-checked to avoid panics on corrupt data.
func decodeIndex(data []byte) (*atlas.Index, error) {
	offset := 0
	readU32 := func(what string) (uint32, error) {
		if offset+4 > len(data) {
			return 0, fmt.Errorf("truncated at %s (offset %d)", what, offset)
		}
		v := binary.LittleEndian.Uint32(data[offset:])
		offset += 4
		return v, nil
	}

	nameCount, err := readU32("name count")
	if err != nil {
		return nil, err
	}
	if int(nameCount) > len(data)/2 {
		return nil, fmt.Errorf("name count %d exceeds blob size", nameCount)
	}
	names := make([]string, nameCount)
	for i := range names {
		if offset+2 > len(data) {
			return nil, fmt.Errorf("truncated at name %d length (offset %d)", i, offset)
		}
		n := int(binary.LittleEndian.Uint16(data[offset:]))
		offset += 2
		if offset+n > len(data) {
			return nil, fmt.Errorf("truncated at name %d (offset %d, need %d)", i, offset, n)
		}
		names[i] = string(data[offset : offset+n])
		offset += n
	}
	name := func(ref uint32) (string, error) {
		if int(ref) >= len(names) {
			return "", fmt.Errorf("name ref %d out of range (%d names)", ref, len(names))
		}
		return names[ref], nil
	}

	labelCount, err := readU32("label count")
	if err != nil {
		return nil, err
	}
	if need := int(labelCount) * labelSize; offset+need > len(data) {
		return nil, fmt.Errorf("truncated labels (offset %d, need %d)", offset, need)
	}
	labels := make([]atlas.VertexLabel, labelCount)
	for i := range labels {
		n, err := name(binary.LittleEndian.Uint32(data[offset+8:]))
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i, err)
		}
		labels[i] = atlas.VertexLabel{
			Vertex:     int(binary.LittleEndian.Uint32(data[offset:])),
			RegionID:   int(int32(binary.LittleEndian.Uint32(data[offset+4:]))),
			RegionName: n,
		}
		offset += labelSize
	}

	statCount, err := readU32("stat count")
	if err != nil {
		return nil, err
	}
	if need := int(statCount) * statSize; offset+need > len(data) {
		return nil, fmt.Errorf("truncated stats (offset %d, need %d)", offset, need)
	}
	stats := make([]atlas.RegionStats, statCount)
	for i := range stats {
		n, err := name(binary.LittleEndian.Uint32(data[offset:]))
		if err != nil {
			return nil, fmt.Errorf("stat %d: %w", i, err)
		}
		stats[i] = atlas.RegionStats{
			Name:        n,
			ID:          int(int32(binary.LittleEndian.Uint32(data[offset+4:]))),
			VertexCount: int(binary.LittleEndian.Uint32(data[offset+8:])),
			MinVertex:   int(binary.LittleEndian.Uint32(data[offset+12:])),
			MaxVertex:   int(binary.LittleEndian.Uint32(data[offset+16:])),
		}
		offset += statSize
	}

	if offset != len(data) {
		return nil, fmt.Errorf("%d trailing bytes", len(data)-offset)
	}
	return atlas.Restore(labels, stats), nil
}
