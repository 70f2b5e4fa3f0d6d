// Package catalog holds the region metadata that sits beside an atlas: display
// names, lobes, hemispheres, colors and educational notes. Catalogs are loaded
// once from embedded JSON and are read-only afterwards. The atlas pipeline only
// consumes their colors; everything else is informational for clients.
package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/corey/neuroatlas/internal/domain/atlas"
)

// Region is one entry of a catalog file.
type Region struct {
	ID                   int      `json:"id"`
	Name                 string   `json:"name"`
	DisplayName          string   `json:"displayName"`
	ShortName            string   `json:"shortName,omitempty"`
	Lobe                 string   `json:"lobe"`
	Hemisphere           string   `json:"hemisphere"`
	Color                string   `json:"color"`
	Description          string   `json:"description,omitempty"`
	Functions            []string `json:"functions"`
	ClinicalSignificance []string `json:"clinicalSignificance"`
	Connections          []string `json:"connections"`
	BrodmannAreas        []int    `json:"brodmannAreas,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
}

// fileDef is the JSON schema of one catalog file.
type fileDef struct {
	Atlas   string   `json:"atlas"`
	Regions []Region `json:"regions"`
}

// Catalog is the region metadata for one atlas.
type Catalog struct {
	atlas   string
	regions []Region
	byName  map[string]int // name -> position in regions
	byID    map[int]int
}

// New builds a catalog from regions, rejecting empty or duplicate names.
func New(atlasName string, regions []Region) (*Catalog, error) {
	c := &Catalog{
		atlas:   atlasName,
		regions: make([]Region, 0, len(regions)),
		byName:  make(map[string]int, len(regions)),
		byID:    make(map[int]int, len(regions)),
	}
	for _, r := range regions {
		if r.Name == "" {
			return nil, fmt.Errorf("catalog %s: region with empty name (id %d)", atlasName, r.ID)
		}
		if _, dup := c.byName[r.Name]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate region %q", atlasName, r.Name)
		}
		c.byName[r.Name] = len(c.regions)
		if _, seen := c.byID[r.ID]; !seen {
			c.byID[r.ID] = len(c.regions)
		}
		c.regions = append(c.regions, r)
	}
	return c, nil
}

// LoadCatalogs reads every JSON file in dir and returns catalogs keyed by atlas
// name. Files are loaded in sorted order for deterministic results.
// Returns an error if any file fails to parse or if no catalog is found.
func LoadCatalogs(fsys fs.FS, dir string) (map[string]*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %q: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	out := make(map[string]*Catalog)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		var def fileDef
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		if def.Atlas == "" {
			return nil, fmt.Errorf("parse %s: missing atlas name", entry.Name())
		}
		if _, dup := out[def.Atlas]; dup {
			return nil, fmt.Errorf("parse %s: atlas %q defined twice", entry.Name(), def.Atlas)
		}

		c, err := New(def.Atlas, def.Regions)
		if err != nil {
			return nil, err
		}
		out[def.Atlas] = c
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no catalogs found in %q", dir)
	}
	return out, nil
}

// Atlas returns the atlas name this catalog describes.
func (c *Catalog) Atlas() string { return c.atlas }

// Len returns the number of regions.
func (c *Catalog) Len() int { return len(c.regions) }

// Regions returns all regions in file order.
func (c *Catalog) Regions() []Region {
	out := make([]Region, len(c.regions))
	copy(out, c.regions)
	return out
}

// Lookup finds a region by its atlas name (e.g. "Precentral_L").
func (c *Catalog) Lookup(name string) (Region, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Region{}, false
	}
	return c.regions[i], true
}

// ByID finds the first region with the given numeric id.
func (c *Catalog) ByID(id int) (Region, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Region{}, false
	}
	return c.regions[i], true
}

// Filter narrows regions by lobe and hemisphere. Empty fields match
// everything; comparisons are case-insensitive.
type Filter struct {
	Lobe       string
	Hemisphere string
}

// Keep reports whether r passes the filter.
func (f Filter) Keep(r Region) bool {
	return (f.Lobe == "" || strings.EqualFold(r.Lobe, f.Lobe)) &&
		(f.Hemisphere == "" || strings.EqualFold(r.Hemisphere, f.Hemisphere))
}

// Select returns the regions passing f, in file order.
func (c *Catalog) Select(f Filter) []Region {
	return c.filter(f.Keep)
}

// Lobes returns the distinct lobe names, sorted.
func (c *Catalog) Lobes() []string {
	return c.distinct(func(r Region) string { return r.Lobe })
}

// Hemispheres returns the distinct hemisphere names, sorted.
func (c *Catalog) Hemispheres() []string {
	return c.distinct(func(r Region) string { return r.Hemisphere })
}

// ColorTable keys every region color by name, and by id when the id is set.
func (c *Catalog) ColorTable() atlas.ColorTable {
	t := atlas.NewColorTable()
	for _, r := range c.regions {
		rgb := atlas.HexToRGB(r.Color)
		t.ByName[r.Name] = rgb
		if r.ID != 0 {
			t.ByID[r.ID] = rgb
		}
	}
	return t
}

// SchemeColorTable colors regions by group instead of by region: lobe for
// "anatomical", hemisphere for "hemisphere", and a motor/sensory/visual/
// auditory/limbic/association class for "functional". Unknown scheme names
// fall back to anatomical. A region whose group the scheme does not list keeps
// its own color.
func (c *Catalog) SchemeColorTable(scheme string) atlas.ColorTable {
	groups := make(map[string]atlas.RGB)
	for k, hex := range atlas.Scheme(scheme) {
		groups[strings.ToLower(k)] = atlas.HexToRGB(hex)
	}

	t := atlas.NewColorTable()
	for _, r := range c.regions {
		rgb, ok := groups[strings.ToLower(schemeGroup(scheme, r))]
		if !ok {
			rgb = atlas.HexToRGB(r.Color)
		}
		t.ByName[r.Name] = rgb
		if r.ID != 0 {
			t.ByID[r.ID] = rgb
		}
	}
	return t
}

// functionalGroups is checked in order against a region's name and functions.
var functionalGroups = []struct {
	group string
	terms []string
}{
	{"motor", []string{"motor", "precentral"}},
	{"sensory", []string{"sensory", "postcentral", "somatosensory"}},
	{"visual", []string{"visual", "occipital", "calcarine", "cuneus", "lingual"}},
	{"auditory", []string{"auditory", "temporal", "heschl", "transverse"}},
}

func schemeGroup(scheme string, r Region) string {
	switch scheme {
	case "hemisphere":
		return r.Hemisphere
	case "functional":
		text := strings.ToLower(r.Name + " " + r.DisplayName + " " + strings.Join(r.Functions, " "))
		for _, g := range functionalGroups {
			for _, term := range g.terms {
				if strings.Contains(text, term) {
					return g.group
				}
			}
		}
		if strings.EqualFold(r.Lobe, "limbic") {
			return "limbic"
		}
		return "association"
	default:
		return r.Lobe
	}
}

func (c *Catalog) filter(keep func(Region) bool) []Region {
	var out []Region
	for _, r := range c.regions {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (c *Catalog) distinct(field func(Region) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c.regions {
		v := field(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
