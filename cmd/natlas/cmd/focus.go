package cmd

import (
	"fmt"

	"github.com/corey/neuroatlas/internal/domain/mesh"
	"github.com/spf13/cobra"
)

var (
	focusMesh   string
	focusRegion string
	focusJSON   bool
)

var focusCmd = &cobra.Command{
	Use:   "focus <atlas-file> --mesh file.obj",
	Short: "Compute camera focus points per region",
	Long:  "Prints the centroid and bounding box of each region's labeled vertices on the mesh.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFocus,
}

func init() {
	focusCmd.Flags().StringVar(&focusMesh, "mesh", "", "OBJ mesh (required)")
	focusCmd.Flags().StringVar(&focusRegion, "region", "", "Only this region")
	focusCmd.Flags().BoolVar(&focusJSON, "json", false, "Output as JSON")
	focusCmd.MarkFlagRequired("mesh")
}

func runFocus(cmd *cobra.Command, args []string) error {
	idx, _, err := loadAtlasFile(args[0])
	if err != nil {
		return err
	}
	m, err := loadMesh(focusMesh)
	if err != nil {
		return err
	}
	points := mesh.FocusPoints(m, idx)

	// Region order follows the atlas.
	var out []mesh.Focus
	for _, st := range idx.Regions() {
		if focusRegion != "" && st.Name != focusRegion {
			continue
		}
		if f, ok := points[st.Name]; ok {
			out = append(out, f)
		}
	}
	if focusRegion != "" && len(out) == 0 {
		return fmt.Errorf("region %q has no vertices on this mesh", focusRegion)
	}

	if focusJSON {
		if out == nil {
			out = []mesh.Focus{}
		}
		return printJSON(out)
	}
	fmt.Print(formatFocus(out))
	return nil
}
