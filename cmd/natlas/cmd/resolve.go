package cmd

import (
	"fmt"
	"strconv"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/spf13/cobra"
)

var (
	resolveMesh string
	resolveFace int
	resolveJSON bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <atlas-file> (<v1> <v2> <v3> | --mesh file.obj --face N)",
	Short: "Resolve a mesh face to its region",
	Long: "Looks up the three vertices of a face and returns the region most of them belong to.\n" +
		"Ties go to the first vertex's region. A face with no labeled vertex resolves to no region.",
	Args: cobra.RangeArgs(1, 4),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveMesh, "mesh", "", "OBJ mesh to take the face from")
	resolveCmd.Flags().IntVar(&resolveFace, "face", -1, "Face index into --mesh")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output as JSON")
}

// resolveOutput is the --json shape of resolve.
type resolveOutput struct {
	Face     int                `json:"face"`
	Triangle [3]int             `json:"triangle"`
	Found    bool               `json:"found"`
	Label    *atlas.VertexLabel `json:"label,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	q, err := faceQuery(args[1:])
	if err != nil {
		return err
	}

	idx, _, err := loadAtlasFile(args[0])
	if err != nil {
		return err
	}
	label, found := atlas.ResolveFace(q, idx)

	if resolveJSON {
		out := resolveOutput{Face: q.Face, Triangle: q.Triangle, Found: found}
		if found {
			out.Label = &label
		}
		return printJSON(out)
	}
	fmt.Print(formatResolve(q.Triangle, label, found))
	return nil
}

// faceQuery builds the query from three vertex args or from --mesh/--face.
func faceQuery(vertexArgs []string) (atlas.FaceQuery, error) {
	switch {
	case resolveMesh != "" && len(vertexArgs) > 0:
		return atlas.FaceQuery{}, fmt.Errorf("give either three vertices or --mesh, not both")
	case resolveMesh != "":
		if resolveFace < 0 {
			return atlas.FaceQuery{}, fmt.Errorf("--face is required with --mesh")
		}
		m, err := loadMesh(resolveMesh)
		if err != nil {
			return atlas.FaceQuery{}, err
		}
		tri, ok := m.Triangle(resolveFace)
		if !ok {
			return atlas.FaceQuery{}, fmt.Errorf("face %d out of range (%d faces)", resolveFace, m.FaceCount())
		}
		return atlas.FaceQuery{Face: resolveFace, Triangle: tri}, nil
	case len(vertexArgs) == 3:
		var q atlas.FaceQuery
		for i, s := range vertexArgs {
			v, err := strconv.Atoi(s)
			if err != nil {
				return atlas.FaceQuery{}, fmt.Errorf("vertex %q: %w", s, err)
			}
			q.Triangle[i] = v
		}
		q.Face = max(resolveFace, 0)
		return q, nil
	default:
		return atlas.FaceQuery{}, fmt.Errorf("need three vertex indices or --mesh and --face")
	}
}
