// Package regions embeds the region metadata catalogs for compile-time inclusion.
// Each v1/*.json file describes one atlas: its name plus display metadata for
// every region (lobe, hemisphere, color, functions, clinical notes, connections).
// structure/brain.json is the atlas-independent region -> part hierarchy.
//
// Usage:
//
//	catalog.LoadCatalogs(regions.FS, "v1")
//	catalog.LoadStructure(regions.FS, regions.StructureFile)
package regions

import "embed"

// StructureFile is the path of the region hierarchy inside FS.
const StructureFile = "structure/brain.json"

//go:embed v1/*.json structure/*.json
var FS embed.FS
