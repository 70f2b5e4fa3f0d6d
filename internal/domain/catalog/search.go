package catalog

import (
	"sort"
	"strings"

	"github.com/corey/neuroatlas/internal/ports"
)

// Hit is one search result: the region and the query terms it matched.
type Hit struct {
	Region Region   `json:"region"`
	Terms  []string `json:"terms"`
	// Phrase is set when one field holds the whole query as typed.
	Phrase bool `json:"phrase,omitempty"`
}

// Searcher runs free-text queries over a catalog.
// Region text is lowercased once at construction; each query compiles its
// terms into a fresh matcher from newMatcher.
type Searcher struct {
	catalog    *Catalog
	texts      []string
	newMatcher func() ports.PatternMatcher
}

// NewSearcher indexes c for search.
func NewSearcher(c *Catalog, newMatcher func() ports.PatternMatcher) *Searcher {
	texts := make([]string, len(c.regions))
	for i, r := range c.regions {
		texts[i] = searchText(r)
	}
	return &Searcher{catalog: c, texts: texts, newMatcher: newMatcher}
}

// Search returns regions containing any whitespace-separated query term
// (case-insensitive). Regions holding the whole query as one substring rank
// first, then regions matching more distinct terms; ties keep catalog order.
// An empty query returns nil.
func (s *Searcher) Search(query string) []Hit {
	terms := uniqueTerms(query)
	if len(terms) == 0 {
		return nil
	}
	phrase := strings.Join(strings.Fields(strings.ToLower(query)), " ")

	m := s.newMatcher()
	m.Build(terms)

	var hits []Hit
	for i, text := range s.texts {
		found := m.Match(text)
		if len(found) == 0 {
			continue
		}
		hits = append(hits, Hit{
			Region: s.catalog.regions[i],
			Terms:  found,
			Phrase: strings.Contains(text, phrase),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Phrase != hits[j].Phrase {
			return hits[i].Phrase
		}
		return len(hits[i].Terms) > len(hits[j].Terms)
	})
	return hits
}

func uniqueTerms(query string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	return terms
}

// searchText flattens the searchable fields of a region into lowercase text.
// Fields are newline-separated so a term cannot match across two fields.
func searchText(r Region) string {
	parts := []string{r.Name, r.DisplayName, r.ShortName, r.Lobe, r.Description}
	parts = append(parts, r.Functions...)
	parts = append(parts, r.Keywords...)
	return strings.ToLower(strings.Join(parts, "\n"))
}
