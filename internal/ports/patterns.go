package ports

// PatternMatcher finds many terms in a piece of text in one pass (Aho-Corasick).
// Matching is O(n + m + z) for content length n, total pattern length m and
// z matches, regardless of how many patterns are loaded.
//
// Build replaces the whole pattern set. A matcher is not safe for concurrent
// Build and Match; callers build a fresh matcher per query.
type PatternMatcher interface {
	// Build compiles the automaton from patterns. Previous patterns are discarded.
	Build(patterns []string)

	// Match returns the distinct patterns found in content, in first-match
	// order. Returns nil when nothing matches or no patterns are loaded.
	// Content is matched as-is (caller normalizes case).
	Match(content string) []string
}
