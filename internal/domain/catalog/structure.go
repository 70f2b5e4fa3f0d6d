package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

// Node is one entry of the brain structure hierarchy: a main region (Cerebrum,
// Limbic System, ...) or one of its parts. Parent is set on parts only.
// Position and Size place a placeholder box when no mesh is available.
type Node struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Position    [3]float64 `json:"position"`
	Size        [3]float64 `json:"size"`
	Functions   []string   `json:"functions,omitempty"`
	Parent      string     `json:"parent,omitempty"`
	ParentName  string     `json:"parentName,omitempty"`
	Parts       []Node     `json:"parts,omitempty"`
}

// StructureHits groups search results by level.
type StructureHits struct {
	Regions []Node `json:"regions"`
	Parts   []Node `json:"parts"`
}

// Structure is the two-level region -> part drill-down used when a client
// shows the main regions first and a clicked region's parts next.
type Structure struct {
	regions []Node
	byID    map[string]Node
}

type structureDef struct {
	Regions []Node `json:"regions"`
}

// LoadStructure reads a structure file from fsys.
func LoadStructure(fsys fs.FS, path string) (*Structure, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read structure: %w", err)
	}
	var def structureDef
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return NewStructure(def.Regions)
}

// NewStructure indexes regions and their parts. Ids must be non-empty and
// unique across both levels.
func NewStructure(regions []Node) (*Structure, error) {
	s := &Structure{byID: make(map[string]Node)}
	add := func(n Node) error {
		if n.ID == "" {
			return fmt.Errorf("structure: node %q has no id", n.Name)
		}
		if _, dup := s.byID[n.ID]; dup {
			return fmt.Errorf("structure: duplicate id %q", n.ID)
		}
		s.byID[n.ID] = n
		return nil
	}

	for _, r := range regions {
		r.Parent, r.ParentName = "", ""
		parts := make([]Node, len(r.Parts))
		for i, p := range r.Parts {
			p.Parts = nil
			p.Parent, p.ParentName = r.ID, r.Name
			parts[i] = p
		}
		r.Parts = parts
		if err := add(r); err != nil {
			return nil, err
		}
		for _, p := range parts {
			if err := add(p); err != nil {
				return nil, err
			}
		}
		s.regions = append(s.regions, r)
	}
	return s, nil
}

// MainRegions returns the top level with parts attached, in file order.
func (s *Structure) MainRegions() []Node {
	out := make([]Node, len(s.regions))
	copy(out, s.regions)
	return out
}

// Parts returns the parts of a main region; nil for unknown ids and parts.
func (s *Structure) Parts(regionID string) []Node {
	n, ok := s.byID[regionID]
	if !ok || n.Parent != "" {
		return nil
	}
	return n.Parts
}

// Node finds a main region or a part by id.
func (s *Structure) Node(id string) (Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// Search matches the whole query as one case-insensitive substring: main
// regions by name or description, parts also by function. An empty query
// matches nothing.
func (s *Structure) Search(query string) StructureHits {
	hits := StructureHits{Regions: []Node{}, Parts: []Node{}}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return hits
	}
	has := func(text string) bool { return strings.Contains(strings.ToLower(text), q) }

	for _, r := range s.regions {
		if has(r.Name) || has(r.Description) {
			hits.Regions = append(hits.Regions, r)
		}
		for _, p := range r.Parts {
			if has(p.Name) || has(p.Description) || anyHas(p.Functions, has) {
				hits.Parts = append(hits.Parts, p)
			}
		}
	}
	return hits
}

func anyHas(texts []string, has func(string) bool) bool {
	for _, t := range texts {
		if has(t) {
			return true
		}
	}
	return false
}
