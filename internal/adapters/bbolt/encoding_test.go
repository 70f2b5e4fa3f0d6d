package bbolt

import (
	"testing"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIndex_RoundTrip(t *testing.T) {
	idx := atlas.Parse("4 2 Superior Frontal\n0 1 A\n1 1 A\n2 -3 Neg\n4 2 Superior Frontal\n")

	data, err := encodeIndex(idx)
	require.NoError(t, err)

	got, err := decodeIndex(data)
	require.NoError(t, err)
	assert.Equal(t, idx.Labels(), got.Labels())
	assert.Equal(t, idx.Regions(), got.Regions())

	st, ok := got.Stats("Superior Frontal")
	require.True(t, ok)
	assert.Equal(t, 2, st.VertexCount, "duplicate vertex lines are counted")
}

func TestEncodeIndex_Empty(t *testing.T) {
	data, err := encodeIndex(atlas.Parse(""))
	require.NoError(t, err)
	assert.Len(t, data, 12)

	got, err := decodeIndex(data)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, 0, got.RegionCount())
}

func TestEncodeIndex_InternsNames(t *testing.T) {
	idx := atlas.Parse("0 1 Hippocampus_L\n1 1 Hippocampus_L\n2 1 Hippocampus_L\n")
	data, err := encodeIndex(idx)
	require.NoError(t, err)

	// one name, three labels, one stat
	want := 4 + (2 + len("Hippocampus_L")) + 4 + 3*labelSize + 4 + statSize
	assert.Len(t, data, want)
}

func TestDecodeIndex_Corrupt(t *testing.T) {
	good, err := encodeIndex(atlas.Parse("0 1 A\n1 2 B\n"))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", []byte{1, 0}},
		{"huge name count", []byte{0xff, 0xff, 0xff, 0x7f}},
		{"truncated tail", good[:len(good)-1]},
		{"trailing bytes", append(append([]byte{}, good...), 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeIndex(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeIndex_BadNameRef(t *testing.T) {
	data, err := encodeIndex(atlas.Parse("0 1 A\n"))
	require.NoError(t, err)

	// names: count(4) + len(2) + "A"(1), then label count(4); nameRef sits 8 bytes into the label
	ref := 4 + 2 + 1 + 4 + 8
	data[ref] = 9

	_, err = decodeIndex(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name ref")
}
