package atlas

import (
	"strconv"
	"strings"
)

// DefaultLabelColor is used for label lines without a color column.
const DefaultLabelColor = "#808080"

// Label is one entry of a label file: a region name, id and display color.
type Label struct {
	Name  string `json:"name"`
	ID    int    `json:"id"`
	Color string `json:"color"`
}

// ParseLabelFile reads "name id [#RRGGBB]" lines into an id-keyed map.
// Comments, blank lines and lines with a non-integer id are skipped.
// A repeated id keeps the last line.
func ParseLabelFile(text string) map[int]Label {
	labels := make(map[int]Label)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		color := DefaultLabelColor
		if len(parts) > 2 {
			color = parts[2]
		}
		labels[id] = Label{Name: parts[0], ID: id, Color: color}
	}
	return labels
}

// LabelColorTable turns parsed labels into a ColorTable keyed by name and id.
func LabelColorTable(labels map[int]Label) ColorTable {
	t := NewColorTable()
	for id, l := range labels {
		c := HexToRGB(l.Color)
		t.ByName[l.Name] = c
		t.ByID[id] = c
	}
	return t
}
