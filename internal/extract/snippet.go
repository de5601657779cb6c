package extract

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// ErrSnippetNotFound is returned when no body paragraph contains the snippet
var ErrSnippetNotFound = errors.New("snippet not found in page")

var ellipsisReplacer = strings.NewReplacer("...", "\x00", "…", "\x00")

// NormalizeSnippet removes truncation markers from a search snippet and collapses
// its whitespace. When an ellipsis splits the snippet, the longest fragment is kept
// since only contiguous text can be found in a paragraph.
func NormalizeSnippet(snippet string) string {
	var best string
	for _, fragment := range strings.Split(ellipsisReplacer.Replace(snippet), "\x00") {
		fragment = collapseSpace(fragment)
		if len(fragment) > len(best) {
			best = fragment
		}
	}
	return best
}

// ParagraphExpander finds the full paragraph a search snippet was cut from
type ParagraphExpander struct{}

// NewParagraphExpander creates a paragraph expander
func NewParagraphExpander() *ParagraphExpander {
	return &ParagraphExpander{}
}

// Expand parses htmlContent and returns the text of the first body paragraph containing snippet
func (e *ParagraphExpander) Expand(htmlContent string, snippet string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	needle := NormalizeSnippet(snippet)
	if needle == "" {
		return "", ErrSnippetNotFound
	}

	// html.Parse always synthesizes <body>
	body := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "body"
	})

	for _, p := range Paragraphs(body) {
		if strings.Contains(collapseSpace(p), needle) {
			return strings.TrimSpace(p), nil
		}
	}

	return "", ErrSnippetNotFound
}

// collapseSpace trims s and replaces every whitespace run with one space
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Paragraphs returns the raw text of every <p> under n in document order
func Paragraphs(n *html.Node) []string {
	var out []string

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "p" {
			out = append(out, nodeText(node))
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return out
}

// nodeText concatenates all text below n without adding separators
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "script" || c.Data == "style") {
			continue
		}
		buf.WriteString(nodeText(c))
	}
	return buf.String()
}

// findFirst finds the first node matching a predicate
func findFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}
