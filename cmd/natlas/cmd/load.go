package cmd

import (
	"fmt"
	"os"

	"github.com/corey/neuroatlas/internal/app"
	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/corey/neuroatlas/internal/domain/mesh"
)

// loadAtlasFile streams an atlas file through the parser.
func loadAtlasFile(path string) (*atlas.Index, atlas.ParseReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, atlas.ParseReport{}, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()
	return atlas.ParseReader(f)
}

// loadMesh reads an OBJ file.
func loadMesh(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()
	m, err := mesh.ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse mesh %s: %w", path, err)
	}
	return m, nil
}

// loadColorTable returns the catalog's colors (or a group scheme), overridden
// by a label file when given.
func loadColorTable(catalogName, scheme, labelPath string) (atlas.ColorTable, error) {
	cat, err := loadCatalog(catalogName)
	if err != nil {
		return atlas.ColorTable{}, err
	}
	return app.ColorTableFor(cat, scheme, labelPath)
}
