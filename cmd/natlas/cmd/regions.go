package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/neuroatlas/internal/adapters/ahocorasick"
	"github.com/corey/neuroatlas/internal/app"
	"github.com/corey/neuroatlas/internal/config"
	"github.com/corey/neuroatlas/internal/domain/catalog"
	"github.com/corey/neuroatlas/internal/ports"
	"github.com/spf13/cobra"
)

var (
	regionsCatalog     string
	regionsLobe        string
	regionsHemisphere  string
	regionsQuery       string
	regionsLobes       bool
	regionsHemispheres bool
	regionsTree        bool
	regionsNode        string
	regionsJSON        bool
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List or search catalog regions",
	Long: "Lists the regions of a built-in catalog, filtered by lobe and hemisphere or searched by free text.\n" +
		"--lobes and --hemispheres list the values the filters accept. --tree shows the main brain\n" +
		"structures with their parts (searched with -q), --node one structure by id.",
	Args: cobra.NoArgs,
	RunE: runRegions,
}

func init() {
	regionsCmd.Flags().StringVar(&regionsCatalog, "catalog", "", "Region catalog (aal, desikan-killiany)")
	regionsCmd.Flags().StringVar(&regionsLobe, "lobe", "", "Only regions in this lobe")
	regionsCmd.Flags().StringVar(&regionsHemisphere, "hemisphere", "", "Only regions in this hemisphere")
	regionsCmd.Flags().StringVarP(&regionsQuery, "query", "q", "", "Free-text search over names, functions and keywords")
	regionsCmd.Flags().BoolVar(&regionsLobes, "lobes", false, "List the catalog's lobes")
	regionsCmd.Flags().BoolVar(&regionsHemispheres, "hemispheres", false, "List the catalog's hemispheres")
	regionsCmd.Flags().BoolVar(&regionsTree, "tree", false, "Show the brain structure hierarchy")
	regionsCmd.Flags().StringVar(&regionsNode, "node", "", "Show one brain structure by id")
	regionsCmd.Flags().BoolVar(&regionsJSON, "json", false, "Output as JSON")
	regionsCmd.MarkFlagsMutuallyExclusive("lobes", "hemispheres", "tree", "node")
}

// loadCatalog resolves an embedded catalog, defaulting to the configured one.
func loadCatalog(name string) (*catalog.Catalog, error) {
	if name == "" {
		name = cfg.Catalog
	}
	if name == "" {
		name = config.DefaultCatalog
	}
	return app.LoadCatalog(name)
}

func runRegions(cmd *cobra.Command, args []string) error {
	if regionsTree || regionsNode != "" {
		return runStructure()
	}

	cat, err := loadCatalog(regionsCatalog)
	if err != nil {
		return err
	}

	switch {
	case regionsLobes:
		return printValues(cat.Atlas(), "lobes", cat.Lobes())
	case regionsHemispheres:
		return printValues(cat.Atlas(), "hemispheres", cat.Hemispheres())
	}

	filter := catalog.Filter{Lobe: regionsLobe, Hemisphere: regionsHemisphere}
	var regions []catalog.Region
	terms := make(map[string][]string)
	if strings.TrimSpace(regionsQuery) != "" {
		s := catalog.NewSearcher(cat, func() ports.PatternMatcher { return ahocorasick.New(nil) })
		for _, hit := range s.Search(regionsQuery) {
			if filter.Keep(hit.Region) {
				regions = append(regions, hit.Region)
				terms[hit.Region.Name] = hit.Terms
			}
		}
	} else {
		regions = cat.Select(filter)
	}

	if regionsJSON {
		if regions == nil {
			regions = []catalog.Region{}
		}
		return printJSON(regions)
	}
	fmt.Print(formatRegions(cat.Atlas(), regions, terms))
	return nil
}

func runStructure() error {
	st, err := app.LoadStructure()
	if err != nil {
		return err
	}

	if regionsNode != "" {
		n, ok := st.Node(regionsNode)
		if !ok {
			return fmt.Errorf("unknown structure node %q", regionsNode)
		}
		if regionsJSON {
			return printJSON(n)
		}
		fmt.Print(formatNode(n))
		return nil
	}

	if strings.TrimSpace(regionsQuery) != "" {
		hits := st.Search(regionsQuery)
		if regionsJSON {
			return printJSON(hits)
		}
		fmt.Print(formatStructureHits(regionsQuery, hits))
		return nil
	}

	if regionsJSON {
		return printJSON(st.MainRegions())
	}
	fmt.Print(formatTree(st.MainRegions()))
	return nil
}

func printValues(atlasName, kind string, values []string) error {
	if regionsJSON {
		if values == nil {
			values = []string{}
		}
		return printJSON(values)
	}
	fmt.Print(formatValues(atlasName, kind, values))
	return nil
}
