package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/corey/neuroatlas/internal/domain/catalog"
	"github.com/corey/neuroatlas/internal/domain/mesh"
	"github.com/corey/neuroatlas/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatParse formats parse totals and per-region stats.
//
//	⚡ lh.aal.txt │ 3 vertices │ 2 regions │ 1 skipped
//	  Precentral_L        id 5     2 vertices  [0-1]
func formatParse(name string, idx *atlas.Index, report atlas.ParseReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %s%s │ %d vertices │ %d regions",
		colorBold, name, colorReset, idx.Len(), idx.RegionCount()))
	if report.Skipped > 0 {
		sb.WriteString(fmt.Sprintf(" │ %s%d skipped%s", colorYellow, report.Skipped, colorReset))
	}
	sb.WriteString("\n")

	width := 0
	for _, st := range idx.Regions() {
		width = max(width, len(st.Name))
	}
	for _, st := range idx.Regions() {
		sb.WriteString(fmt.Sprintf("  %s%-*s%s  id %-5d %6d vertices  %s[%d-%d]%s\n",
			colorCyan, width, st.Name, colorReset,
			st.ID, st.VertexCount,
			colorGray, st.MinVertex, st.MaxVertex, colorReset))
	}
	return sb.String()
}

// formatResolve formats a face resolution.
func formatResolve(tri [3]int, label atlas.VertexLabel, found bool) string {
	if !found {
		return fmt.Sprintf("%s⚡ [%d %d %d] → no region%s\n", colorGray, tri[0], tri[1], tri[2], colorReset)
	}
	return fmt.Sprintf("%s⚡ [%d %d %d]%s → %s%s%s  id %d  %svertex %d%s\n",
		colorBold, tri[0], tri[1], tri[2], colorReset,
		colorGreen, label.RegionName, colorReset,
		label.RegionID,
		colorGray, label.Vertex, colorReset)
}

// formatRegions formats catalog regions, one per line.
func formatRegions(atlasName string, regions []catalog.Region, terms map[string][]string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %s │ %d regions%s\n", colorBold, atlasName, len(regions), colorReset))
	for _, r := range regions {
		sb.WriteString(fmt.Sprintf("  %s%-28s%s %-6s %-12s %s",
			colorCyan, r.Name, colorReset, r.Hemisphere, r.Lobe, r.DisplayName))
		if t := terms[r.Name]; len(t) > 0 {
			sb.WriteString(fmt.Sprintf("  %s%s%s", colorGray, strings.Join(t, " "), colorReset))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatValues lists the distinct values of one catalog field.
func formatValues(atlasName, kind string, values []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %s │ %d %s%s\n", colorBold, atlasName, len(values), kind, colorReset))
	for _, v := range values {
		sb.WriteString("  " + v + "\n")
	}
	return sb.String()
}

// formatTree formats the main brain structures with their parts.
func formatTree(regions []catalog.Node) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d structures%s\n", colorBold, len(regions), colorReset))
	for _, r := range regions {
		sb.WriteString(fmt.Sprintf("  %s%-16s%s %s\n", colorCyan, r.ID, colorReset, r.Name))
		for _, p := range r.Parts {
			sb.WriteString(fmt.Sprintf("    %-22s %s%s%s\n", p.ID, colorGray, p.Name, colorReset))
		}
	}
	return sb.String()
}

// formatNode formats one structure with its functions or parts.
func formatNode(n catalog.Node) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %s%s (%s)\n", colorBold, n.Name, colorReset, n.ID))
	if n.ParentName != "" {
		sb.WriteString(fmt.Sprintf("  part of:   %s\n", n.ParentName))
	}
	sb.WriteString(fmt.Sprintf("  %s\n", n.Description))
	for _, f := range n.Functions {
		sb.WriteString(fmt.Sprintf("  %s•%s %s\n", colorGray, colorReset, f))
	}
	for _, p := range n.Parts {
		sb.WriteString(fmt.Sprintf("  %s%-22s%s %s\n", colorCyan, p.ID, colorReset, p.Name))
	}
	return sb.String()
}

// formatStructureHits formats structure search results by level.
func formatStructureHits(query string, hits catalog.StructureHits) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %q │ %d structures, %d parts%s\n",
		colorBold, query, len(hits.Regions), len(hits.Parts), colorReset))
	for _, r := range hits.Regions {
		sb.WriteString(fmt.Sprintf("  %s%-22s%s %s\n", colorCyan, r.ID, colorReset, r.Name))
	}
	for _, p := range hits.Parts {
		sb.WriteString(fmt.Sprintf("  %s%-22s%s %s %s(%s)%s\n", colorCyan, p.ID, colorReset, p.Name, colorGray, p.ParentName, colorReset))
	}
	return sb.String()
}

// formatFocus formats camera focus points.
func formatFocus(focus []mesh.Focus) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d regions%s\n", colorBold, len(focus), colorReset))
	for _, f := range focus {
		c, b := f.Centroid, f.Bounds
		sb.WriteString(fmt.Sprintf("  %s%s%s  centroid (%.3f, %.3f, %.3f)  %sbounds (%.2f, %.2f, %.2f)-(%.2f, %.2f, %.2f)  %d vertices%s\n",
			colorCyan, f.Region, colorReset,
			c.X, c.Y, c.Z,
			colorGray, b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z, f.Vertices, colorReset))
	}
	return sb.String()
}

// formatCacheList formats cached atlas entries.
func formatCacheList(metas []ports.AtlasMeta) string {
	if len(metas) == 0 {
		return "⚡ cache is empty\n"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d cached atlases%s\n", colorBold, len(metas), colorReset))
	for _, m := range metas {
		checksum := m.Checksum
		if len(checksum) > 12 {
			checksum = checksum[:12]
		}
		sb.WriteString(fmt.Sprintf("  %s%s%s  %d vertices  %d regions  %s%s  %s%s\n",
			colorCyan, m.Name, colorReset, m.Vertices, m.Regions,
			colorGray, checksum, m.Source, colorReset))
	}
	return sb.String()
}
