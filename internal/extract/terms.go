package extract

import (
	"strings"

	"github.com/ppiankov/vocabgen/internal/model"
)

// DefaultStopWords are the header words that never appear in a vocabulary term
var DefaultStopWords = []string{"Vocab", "Chapter"}

// TermExtractor pulls vocabulary terms out of plain document text
type TermExtractor struct {
	stopWords []string
}

// NewTermExtractor creates a term extractor. A nil stopWords slice uses DefaultStopWords.
func NewTermExtractor(stopWords []string) *TermExtractor {
	if stopWords == nil {
		stopWords = DefaultStopWords
	}
	return &TermExtractor{stopWords: stopWords}
}

// Extract returns the accepted lines of text in document order.
// A line is accepted when every character is a letter, digit, hyphen, parenthesis or space
// and it contains none of the stop words. Repeated lines are kept once.
func (e *TermExtractor) Extract(text string) []model.Term {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var terms []model.Term
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !e.Accepts(line) {
			continue
		}
		if !seen[line] {
			seen[line] = true
			terms = append(terms, model.Term(line))
		}
	}

	return terms
}

// Accepts reports whether a single line qualifies as a term
func (e *TermExtractor) Accepts(line string) bool {
	for _, r := range line {
		if !isTermRune(r) {
			return false
		}
	}
	for _, word := range e.stopWords {
		if word != "" && strings.Contains(line, word) {
			return false
		}
	}
	return true
}

func isTermRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '(', r == ')', r == ' ':
		return true
	}
	return false
}
