package atlas

import "sort"

// DefaultScheme is used for unknown scheme names.
const DefaultScheme = "anatomical"

// schemes groups regions by lobe, by function or by hemisphere.
var schemes = map[string]map[string]string{
	"anatomical": {
		"Frontal":     "#FF6B6B",
		"Parietal":    "#4ECDC4",
		"Temporal":    "#95E1D3",
		"Occipital":   "#9B59B6",
		"Limbic":      "#F39C12",
		"Subcortical": "#D68910",
		"Cerebellum":  "#FCE38A",
	},
	"functional": {
		"motor":       "#E74C3C",
		"sensory":     "#3498DB",
		"visual":      "#9B59B6",
		"auditory":    "#F39C12",
		"association": "#95A5A6",
		"limbic":      "#E67E22",
	},
	"hemisphere": {
		"Left":  "#FF6B6B",
		"Right": "#4ECDC4",
	},
}

// Scheme returns a copy of the group -> hex table for name.
func Scheme(name string) map[string]string {
	s, ok := schemes[name]
	if !ok {
		s = schemes[DefaultScheme]
	}
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// SchemeNames lists the known schemes, sorted.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
