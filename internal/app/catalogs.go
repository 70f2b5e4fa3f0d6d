package app

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/corey/neuroatlas/internal/domain/catalog"
	"github.com/corey/neuroatlas/regions"
)

// LoadCatalogs loads the region catalogs embedded in the binary.
func LoadCatalogs() (map[string]*catalog.Catalog, error) {
	cats, err := catalog.LoadCatalogs(regions.FS, "v1")
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	return cats, nil
}

// LoadCatalog returns one embedded catalog by atlas name.
func LoadCatalog(name string) (*catalog.Catalog, error) {
	cats, err := LoadCatalogs()
	if err != nil {
		return nil, err
	}
	return pickCatalog(cats, name)
}

func pickCatalog(cats map[string]*catalog.Catalog, name string) (*catalog.Catalog, error) {
	if c, ok := cats[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown catalog %q (available: %s)", name, strings.Join(CatalogNames(cats), ", "))
}

// CatalogNames returns the atlas names of cats, sorted.
func CatalogNames(cats map[string]*catalog.Catalog) []string {
	names := make([]string, 0, len(cats))
	for name := range cats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadStructure loads the embedded region -> part hierarchy.
func LoadStructure() (*catalog.Structure, error) {
	s, err := catalog.LoadStructure(regions.FS, regions.StructureFile)
	if err != nil {
		return nil, fmt.Errorf("load structure: %w", err)
	}
	return s, nil
}

// ColorTableFor builds the colors for color buffers: the catalog's own region
// colors, or a group scheme when scheme is set, then any label file on top.
func ColorTableFor(cat *catalog.Catalog, scheme, labelPath string) (atlas.ColorTable, error) {
	var table atlas.ColorTable
	switch {
	case scheme == "":
		table = cat.ColorTable()
	case slices.Contains(atlas.SchemeNames(), scheme):
		table = cat.SchemeColorTable(scheme)
	default:
		return atlas.ColorTable{}, fmt.Errorf("unknown color scheme %q (available: %s)",
			scheme, strings.Join(atlas.SchemeNames(), ", "))
	}

	if labelPath != "" {
		data, err := os.ReadFile(labelPath)
		if err != nil {
			return atlas.ColorTable{}, fmt.Errorf("read label file: %w", err)
		}
		table.Merge(atlas.LabelColorTable(atlas.ParseLabelFile(string(data))))
	}
	return table, nil
}
