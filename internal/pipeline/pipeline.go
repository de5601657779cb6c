package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ppiankov/vocabgen/internal/docx"
	"github.com/ppiankov/vocabgen/internal/extract"
	"github.com/ppiankov/vocabgen/internal/logging"
	"github.com/ppiankov/vocabgen/internal/model"
	"github.com/ppiankov/vocabgen/internal/search"
)

// Pipeline runs extract -> resolve -> write for one input document
type Pipeline struct {
	extractor *extract.TermExtractor
	resolver  *Resolver
	writer    *docx.Writer
	config    *model.Config
	logger    *slog.Logger
}

// NewPipeline creates a pipeline that resolves terms with searcher and reports progress on progress
func NewPipeline(cfg *model.Config, searcher search.Searcher, progress io.Writer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Discard()
	}
	if progress == nil {
		progress = io.Discard
	}

	expander := NewPageExpander(NewFetcher(cfg.HTTP))

	return &Pipeline{
		extractor: extract.NewTermExtractor(cfg.Extract.StopWords),
		resolver:  NewResolver(searcher, expander, cfg.Sources).WithProgress(progress).WithLogger(logger),
		writer: docx.NewWriter(docx.Style{
			FontFamily: cfg.Document.FontFamily,
			FontSize:   cfg.Document.FontSize,
		}),
		config: cfg,
		logger: logger,
	}
}

// RunResult describes a completed run
type RunResult struct {
	InputPath  string
	OutputPath string
	Terms      []model.Term
	Resolution *model.Resolution
	Elapsed    time.Duration
}

// DefaultOutputPath places outputName next to the input document
func DefaultOutputPath(inputPath, outputName string) string {
	if outputName == "" {
		outputName = model.DefaultConfig().Document.OutputName
	}
	return filepath.Join(filepath.Dir(inputPath), outputName)
}

// ExtractTerms reads inputPath and returns its vocabulary terms
func (p *Pipeline) ExtractTerms(inputPath string) ([]model.Term, error) {
	text, err := docx.ReadText(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return p.extractor.Extract(text), nil
}

// Run reads terms from inputPath, resolves them and writes the list to outputPath
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string) (*RunResult, error) {
	start := time.Now()

	// 1. Extract terms
	terms, err := p.ExtractTerms(inputPath)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("terms extracted", "input", inputPath, "count", len(terms))

	// 2. Resolve definitions
	resolution, err := p.resolver.Resolve(ctx, terms)
	if err != nil {
		return nil, err
	}
	if !resolution.CoversExactly(terms) {
		return nil, fmt.Errorf("internal error: resolution does not cover the extracted terms")
	}

	// 3. Write the document
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath, p.config.Document.OutputName)
	}
	if err := p.writer.Write(outputPath, p.config.Document.Header, resolution); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	return &RunResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Terms:      terms,
		Resolution: resolution,
		Elapsed:    time.Since(start),
	}, nil
}
