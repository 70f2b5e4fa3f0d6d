// Package atlas resolves mesh vertices to anatomical regions.
// An atlas is a text file of "vertex regionId [regionName]" lines. Parsing
// produces an Index: an O(1) vertex -> label lookup plus per-region statistics.
// The Index is built once per atlas load and is read-only afterwards, so it can
// be shared freely between goroutines. Any change to the source is a full rebuild.
package atlas

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// VertexLabel is the region assigned to one mesh vertex.
type VertexLabel struct {
	Vertex     int    `json:"vertex"`
	RegionID   int    `json:"regionId"`
	RegionName string `json:"regionName"`
}

// RegionStats aggregates the vertices labeled with one region name.
// ID is the region id of the first line that introduced the name.
type RegionStats struct {
	Name        string `json:"name"`
	ID          int    `json:"id"`
	VertexCount int    `json:"vertexCount"`
	MinVertex   int    `json:"minVertex"`
	MaxVertex   int    `json:"maxVertex"`
}

// Index is the parsed atlas.
type Index struct {
	labels map[int]VertexLabel
	stats  map[string]*RegionStats
	order  []string // region names in first-seen order
}

// ParseReport carries diagnostic line counts from a parse.
// It is informational only; skipped lines are never an error.
type ParseReport struct {
	Lines   int // total lines read
	Parsed  int // lines that produced a label
	Skipped int // non-empty, non-comment lines that were dropped
}

// Parse builds an Index from atlas text. Malformed lines are skipped.
// Text with no valid lines yields an empty Index.
func Parse(text string) *Index {
	idx, _ := ParseWithReport(text)
	return idx
}

// ParseWithReport is Parse plus line counts for logging.
func ParseWithReport(text string) (*Index, ParseReport) {
	b := newBuilder()
	for _, line := range strings.Split(text, "\n") {
		b.line(line)
	}
	return b.index(), b.report
}

// ParseReader streams atlas text from r. The only errors are read errors;
// line length is unbounded, as with Parse.
func ParseReader(r io.Reader) (*Index, ParseReport, error) {
	b := newBuilder()
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, b.report, fmt.Errorf("read atlas: %w", err)
		}
		b.line(strings.TrimSuffix(line, "\n"))
		if err == io.EOF {
			break
		}
	}
	return b.index(), b.report, nil
}

// Restore reassembles an Index from a previous Labels and Regions snapshot
// without re-aggregating, so duplicate-line counts and first-seen ids survive.
func Restore(labels []VertexLabel, regions []RegionStats) *Index {
	idx := &Index{
		labels: make(map[int]VertexLabel, len(labels)),
		stats:  make(map[string]*RegionStats, len(regions)),
		order:  make([]string, 0, len(regions)),
	}
	for _, l := range labels {
		idx.labels[l.Vertex] = l
	}
	for _, r := range regions {
		if _, dup := idx.stats[r.Name]; dup {
			continue
		}
		st := r
		idx.stats[r.Name] = &st
		idx.order = append(idx.order, r.Name)
	}
	return idx
}

type builder struct {
	idx    *Index
	report ParseReport
}

func newBuilder() *builder {
	return &builder{idx: &Index{
		labels: make(map[int]VertexLabel),
		stats:  make(map[string]*RegionStats),
	}}
}

func (b *builder) line(raw string) {
	b.report.Lines++
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	l, ok := parseLine(line)
	if !ok {
		b.report.Skipped++
		return
	}
	b.report.Parsed++
	b.add(l)
}

// add records a label and updates the stats for its region in one step.
func (b *builder) add(l VertexLabel) {
	b.idx.labels[l.Vertex] = l

	st, ok := b.idx.stats[l.RegionName]
	if !ok {
		st = &RegionStats{
			Name:      l.RegionName,
			ID:        l.RegionID,
			MinVertex: l.Vertex,
			MaxVertex: l.Vertex,
		}
		b.idx.stats[l.RegionName] = st
		b.idx.order = append(b.idx.order, l.RegionName)
	}
	st.VertexCount++
	st.MinVertex = min(st.MinVertex, l.Vertex)
	st.MaxVertex = max(st.MaxVertex, l.Vertex)
}

func (b *builder) index() *Index {
	return b.idx
}

// parseLine splits a trimmed, non-comment line into a label.
func parseLine(line string) (VertexLabel, bool) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return VertexLabel{}, false
	}
	vertex, ok := leadingInt(parts[0])
	if !ok || vertex < 0 {
		return VertexLabel{}, false
	}
	regionID, ok := leadingInt(parts[1])
	if !ok {
		return VertexLabel{}, false
	}
	name := strings.Join(parts[2:], " ")
	if name == "" {
		name = "Region_" + strconv.Itoa(regionID)
	}
	return VertexLabel{Vertex: vertex, RegionID: regionID, RegionName: name}, true
}

// leadingInt parses an optional sign followed by decimal digits, ignoring any
// trailing characters ("12abc" -> 12, "1.5" -> 1). At least one digit is required.
func leadingInt(tok string) (int, bool) {
	end := 0
	if end < len(tok) && (tok[end] == '+' || tok[end] == '-') {
		end++
	}
	digits := end
	for end < len(tok) && tok[end] >= '0' && tok[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(tok[:end])
	if err != nil {
		return 0, false // overflow
	}
	return n, true
}

// Lookup returns the label for a vertex. O(1).
func (x *Index) Lookup(vertex int) (VertexLabel, bool) {
	if x == nil {
		return VertexLabel{}, false
	}
	l, ok := x.labels[vertex]
	return l, ok
}

// Len returns the number of distinct labeled vertices.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.labels)
}

// RegionCount returns the number of distinct region names.
func (x *Index) RegionCount() int {
	if x == nil {
		return 0
	}
	return len(x.stats)
}

// Stats returns the aggregate for one region name.
func (x *Index) Stats(name string) (RegionStats, bool) {
	if x == nil {
		return RegionStats{}, false
	}
	st, ok := x.stats[name]
	if !ok {
		return RegionStats{}, false
	}
	return *st, true
}

// Regions returns region stats in first-seen order.
func (x *Index) Regions() []RegionStats {
	if x == nil {
		return nil
	}
	out := make([]RegionStats, 0, len(x.order))
	for _, name := range x.order {
		out = append(out, *x.stats[name])
	}
	return out
}

// Labels returns every label sorted by vertex.
func (x *Index) Labels() []VertexLabel {
	if x == nil {
		return nil
	}
	out := make([]VertexLabel, 0, len(x.labels))
	for _, l := range x.labels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vertex < out[j].Vertex })
	return out
}
