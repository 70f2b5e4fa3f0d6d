// Package ahocorasick provides multi-pattern string matching using an Aho-Corasick automaton.
// It wraps the petar-dambovaliev/aho-corasick library for O(n + m + z) matching
// and backs region search over catalog text.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Matcher implements ports.PatternMatcher.
// Build() compiles an automaton; Match() returns matching patterns.
type Matcher struct {
	automaton aho.AhoCorasick
	patterns  []string
	built     bool
}

// New returns a matcher compiled from patterns.
func New(patterns []string) *Matcher {
	m := &Matcher{}
	m.Build(patterns)
	return m
}

// Build compiles the Aho-Corasick automaton from the given patterns.
// Empty patterns are dropped; they would match everywhere.
func (m *Matcher) Build(patterns []string) {
	m.patterns = make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p != "" {
			m.patterns = append(m.patterns, p)
		}
	}
	m.built = len(m.patterns) > 0
	if !m.built {
		return
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	m.automaton = builder.Build(m.patterns)
}

// Match returns the distinct patterns found in content, in first-match order.
// Overlapping matches are reported, so "motor" and "motor control" both hit
// on "motor control".
func (m *Matcher) Match(content string) []string {
	if !m.built {
		return nil
	}
	iter := m.automaton.IterOverlappingByte([]byte(content))

	seen := make(map[int]bool, len(m.patterns))
	var result []string
	for next := iter.Next(); next != nil; next = iter.Next() {
		p := next.Pattern()
		if !seen[p] {
			seen[p] = true
			result = append(result, m.patterns[p])
		}
	}
	return result
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}
