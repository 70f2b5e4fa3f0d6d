package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/corey/neuroatlas/regions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Region -> part hierarchy
// =============================================================================

func loadStructure(t *testing.T) *Structure {
	t.Helper()
	s, err := LoadStructure(regions.FS, regions.StructureFile)
	require.NoError(t, err)
	return s
}

func nodeIDs(nodes []Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func TestLoadStructure_Embedded(t *testing.T) {
	s := loadStructure(t)

	main := s.MainRegions()
	assert.Equal(t,
		[]string{"cerebrum", "limbic_system", "basal_ganglia", "midbrain", "hindbrain", "brainstem"},
		nodeIDs(main))
	for _, r := range main {
		assert.Empty(t, r.Parent, r.ID)
		assert.NotEmpty(t, r.Parts, r.ID)
		for _, p := range r.Parts {
			assert.Equal(t, r.ID, p.Parent)
			assert.Equal(t, r.Name, p.ParentName)
			assert.Empty(t, p.Parts)
		}
	}
}

func TestStructure_Parts(t *testing.T) {
	s := loadStructure(t)

	assert.Equal(t, []string{"hippocampus", "amygdala", "thalamus", "hypothalamus"},
		nodeIDs(s.Parts("limbic_system")))
	assert.Nil(t, s.Parts("hippocampus"), "a part has no parts")
	assert.Nil(t, s.Parts("nope"))
}

func TestStructure_Node(t *testing.T) {
	s := loadStructure(t)

	part, ok := s.Node("hippocampus")
	require.True(t, ok)
	assert.Equal(t, "Hippocampus", part.Name)
	assert.Equal(t, "limbic_system", part.Parent)
	assert.Equal(t, "Limbic System", part.ParentName)
	assert.NotEmpty(t, part.Functions)

	region, ok := s.Node("hindbrain")
	require.True(t, ok)
	assert.Empty(t, region.Parent)
	assert.Len(t, region.Parts, 3)

	_, ok = s.Node("")
	assert.False(t, ok)
}

func TestStructure_Search(t *testing.T) {
	s := loadStructure(t)

	hits := s.Search("  HIPPOCAMPUS ")
	assert.Empty(t, hits.Regions)
	assert.Equal(t, []string{"hippocampus"}, nodeIDs(hits.Parts))

	// Function text only counts for parts.
	hits = s.Search("procedural memory")
	assert.Empty(t, hits.Regions)
	assert.Equal(t, []string{"cerebellum"}, nodeIDs(hits.Parts))

	hits = s.Search("limbic")
	assert.Contains(t, nodeIDs(hits.Regions), "limbic_system")

	// The whole query is one substring, not a set of terms.
	hits = s.Search("hippocampus pons")
	assert.Empty(t, hits.Regions)
	assert.Empty(t, hits.Parts)

	hits = s.Search("")
	assert.NotNil(t, hits.Regions)
	assert.Empty(t, hits.Parts)
}

func TestNewStructure_Errors(t *testing.T) {
	_, err := NewStructure([]Node{{Name: "No ID"}})
	assert.Error(t, err)

	_, err = NewStructure([]Node{
		{ID: "a", Parts: []Node{{ID: "x"}}},
		{ID: "b", Parts: []Node{{ID: "x"}}},
	})
	assert.ErrorContains(t, err, `duplicate id "x"`)

	_, err = NewStructure([]Node{{ID: "a", Parts: []Node{{ID: "a"}}}})
	assert.Error(t, err, "part id collides with its region")
}

func TestLoadStructure_Errors(t *testing.T) {
	fsys := fstest.MapFS{"bad.json": {Data: []byte("{")}}
	_, err := LoadStructure(fsys, "bad.json")
	assert.Error(t, err)

	_, err = LoadStructure(fsys, "missing.json")
	assert.Error(t, err)
}
