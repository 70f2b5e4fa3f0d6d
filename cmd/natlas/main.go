// natlas maps brain-surface mesh vertices to anatomical regions.
// It parses vertex atlases, resolves picked faces, and builds per-vertex
// color buffers, from the command line or as a local HTTP service.
package main

import (
	"os"

	"github.com/corey/neuroatlas/cmd/natlas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
