package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/spf13/cobra"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <atlas-file>",
	Short: "Parse an atlas and print per-region stats",
	Long:  "Reads \"vertex regionId [name]\" lines. Malformed lines are skipped and counted, never fatal.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output as JSON")
}

// parseOutput is the --json shape of parse.
type parseOutput struct {
	Vertices int                 `json:"vertices"`
	Regions  int                 `json:"regions"`
	Report   atlas.ParseReport   `json:"report"`
	Stats    []atlas.RegionStats `json:"stats"`
}

func runParse(cmd *cobra.Command, args []string) error {
	idx, report, err := loadAtlasFile(args[0])
	if err != nil {
		return err
	}

	if parseJSON {
		return printJSON(parseOutput{
			Vertices: idx.Len(),
			Regions:  idx.RegionCount(),
			Report:   report,
			Stats:    idx.Regions(),
		})
	}
	fmt.Print(formatParse(filepath.Base(args[0]), idx, report))
	return nil
}
