package model

import (
	"regexp"
	"strings"
)

var parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)

// Term is a vocabulary word or phrase exactly as it appears in the source document
type Term string

// Clean returns the term with every parenthetical segment removed.
// Surrounding text, including whitespace, is preserved ("GDP (Gross Domestic Product)" -> "GDP ").
func (t Term) Clean() string {
	return parentheticalPattern.ReplaceAllString(string(t), "")
}

// String returns the original term text
func (t Term) String() string {
	return string(t)
}

// SearchResult is the single result returned by the search collaborator for one query
type SearchResult struct {
	URL          string // Result link
	FormattedURL string // Display form of the link as returned by the search service
	Snippet      string // Short, possibly truncated description
	Description  string // Page metadata description (empty when the page carries none)
}

// MatchesSource reports whether the result belongs to the given source.
// Matching is a substring test on the result URL.
func (r *SearchResult) MatchesSource(source string) bool {
	if r == nil || source == "" {
		return false
	}
	return strings.Contains(r.URL, source) || strings.Contains(r.FormattedURL, source)
}

// Definitions is an insertion-ordered mapping from Term to Definition
type Definitions struct {
	order  []Term
	values map[Term]string
}

// NewDefinitions creates an empty mapping
func NewDefinitions() *Definitions {
	return &Definitions{values: make(map[Term]string)}
}

// Set records a definition. Re-setting an existing term keeps its original position.
func (d *Definitions) Set(term Term, definition string) {
	if _, exists := d.values[term]; !exists {
		d.order = append(d.order, term)
	}
	d.values[term] = definition
}

// Get returns the definition for a term
func (d *Definitions) Get(term Term) (string, bool) {
	def, ok := d.values[term]
	return def, ok
}

// Has reports whether the term has a definition
func (d *Definitions) Has(term Term) bool {
	_, ok := d.values[term]
	return ok
}

// Len returns the number of resolved terms
func (d *Definitions) Len() int {
	return len(d.order)
}

// Terms returns the resolved terms in insertion order
func (d *Definitions) Terms() []Term {
	out := make([]Term, len(d.order))
	copy(out, d.order)
	return out
}

// Each calls fn for every entry in insertion order with a 0-based index
func (d *Definitions) Each(fn func(i int, term Term, definition string)) {
	for i, term := range d.order {
		fn(i, term, d.values[term])
	}
}

// Resolution is the outcome of resolving a list of terms
type Resolution struct {
	Definitions *Definitions
	NotFound    []Term
}

// NewResolution creates an empty resolution
func NewResolution() *Resolution {
	return &Resolution{Definitions: NewDefinitions()}
}

// CoversExactly reports whether every term is either defined or not found, never both,
// and nothing outside terms is present.
func (r *Resolution) CoversExactly(terms []Term) bool {
	if r.Definitions.Len()+len(r.NotFound) != len(terms) {
		return false
	}

	seen := make(map[Term]int, len(terms))
	for _, t := range r.Definitions.Terms() {
		seen[t]++
	}
	for _, t := range r.NotFound {
		seen[t]++
	}
	for _, t := range terms {
		if seen[t] != 1 {
			return false
		}
	}
	return true
}
