package cmd

import (
	"fmt"
	"os"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/spf13/cobra"
)

var (
	colorsVertices int
	colorsMesh     string
	colorsSelected string
	colorsHovered  string
	colorsCatalog  string
	colorsScheme   string
	colorsLabels   string
	colorsOut      string
	colorsJSON     bool
)

var colorsCmd = &cobra.Command{
	Use:   "colors <atlas-file> (--vertices N | --mesh file.obj)",
	Short: "Build a per-vertex RGB color buffer",
	Long: "Colors every vertex by its region (catalog colors, optionally overridden by a label file).\n" +
		"Unlabeled vertices are gray. The selected region is brightened x1.5, the hovered one x1.2.\n" +
		"Binary output is little-endian float32 RGB triples.",
	Args: cobra.ExactArgs(1),
	RunE: runColors,
}

func init() {
	colorsCmd.Flags().IntVar(&colorsVertices, "vertices", -1, "Number of mesh vertices")
	colorsCmd.Flags().StringVar(&colorsMesh, "mesh", "", "OBJ mesh to take the vertex count from")
	colorsCmd.Flags().StringVar(&colorsSelected, "selected", "", "Selected region name")
	colorsCmd.Flags().StringVar(&colorsHovered, "hovered", "", "Hovered region name")
	colorsCmd.Flags().StringVar(&colorsCatalog, "catalog", "", "Region catalog for colors (default from NATLAS_CATALOG)")
	colorsCmd.Flags().StringVar(&colorsScheme, "scheme", "", "Color regions by group: anatomical, functional, hemisphere (default from NATLAS_SCHEME)")
	colorsCmd.Flags().StringVar(&colorsLabels, "labels", "", "Label file (name id #hex) overriding catalog colors")
	colorsCmd.Flags().StringVarP(&colorsOut, "out", "o", "", "Write the binary buffer to this file")
	colorsCmd.Flags().BoolVar(&colorsJSON, "json", false, "Output as JSON")
}

func runColors(cmd *cobra.Command, args []string) error {
	vertexCount := colorsVertices
	if colorsMesh != "" {
		m, err := loadMesh(colorsMesh)
		if err != nil {
			return err
		}
		vertexCount = m.VertexCount()
	}
	if vertexCount < 0 {
		return fmt.Errorf("need --vertices or --mesh")
	}

	idx, _, err := loadAtlasFile(args[0])
	if err != nil {
		return err
	}
	table, err := loadColorTable(colorsCatalog, firstNonEmpty(colorsScheme, cfg.Scheme), colorsLabels)
	if err != nil {
		return err
	}
	buf := atlas.BuildColorBuffer(vertexCount, idx, table, colorsSelected, colorsHovered)

	if colorsJSON {
		return printJSON(struct {
			VertexCount int       `json:"vertexCount"`
			Colors      []float32 `json:"colors"`
		}{vertexCount, buf})
	}

	data := atlas.EncodeColorBuffer(buf)
	if colorsOut == "" {
		if isStdoutTTY() {
			return fmt.Errorf("refusing to write binary to a terminal; use --out or --json")
		}
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(colorsOut, data, 0644); err != nil {
		return fmt.Errorf("write colors: %w", err)
	}
	fmt.Printf("%s⚡ %d vertices%s → %s (%d bytes)\n", colorBold, vertexCount, colorReset, colorsOut, len(data))
	return nil
}
