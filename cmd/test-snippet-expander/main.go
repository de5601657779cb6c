// Test program to check snippet expansion against a live page.
// It fetches the page the way vocabgen does and prints the paragraph the snippet expands to.
//
//	go run ./cmd/test-snippet-expander https://en.wikipedia.org/wiki/Inflation "general increase in the prices"
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ppiankov/vocabgen/internal/extract"
	"github.com/ppiankov/vocabgen/internal/model"
	"github.com/ppiankov/vocabgen/internal/pipeline"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: test-snippet-expander <url> <snippet>")
		os.Exit(2)
	}
	url, snippet := os.Args[1], os.Args[2]

	fmt.Println("=== Snippet Expansion Test ===")
	fmt.Println()
	fmt.Printf("Page:    %s\n", url)
	fmt.Printf("Snippet: %s\n", snippet)
	fmt.Printf("Needle:  %s\n", extract.NormalizeSnippet(snippet))
	fmt.Println(strings.Repeat("-", 60))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher := pipeline.NewFetcher(model.DefaultConfig().HTTP)
	page, err := fetcher.Fetch(ctx, url)
	if err != nil {
		fmt.Printf("  ✗ Fetch failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Fetched %d bytes (%s)\n", len(page.HTML), page.ContentType)

	doc, err := html.Parse(strings.NewReader(page.HTML))
	if err != nil {
		fmt.Printf("  ✗ Parse failed: %v\n", err)
		os.Exit(1)
	}
	paragraphs := extract.Paragraphs(doc)
	fmt.Printf("  ✓ Found %d body paragraphs\n", len(paragraphs))

	paragraph, err := extract.NewParagraphExpander().Expand(page.HTML, snippet)
	if err != nil {
		fmt.Printf("  ✗ %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(paragraph)
	fmt.Println()
	fmt.Println("=== Test Complete ===")
}
