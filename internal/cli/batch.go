package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/vocabgen/internal/model"
	"github.com/ppiankov/vocabgen/internal/pipeline"
	"github.com/ppiankov/vocabgen/internal/search"
)

var outputDir string

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <input>...",
	Short: "Generate vocabulary lists for several documents",
	Long: `Batch runs generate over each input document in turn and writes
"<name> Vocabulary.docx" for each one.

A document that cannot be read or written is reported and the next one is
processed. Rejected search credentials stop the whole batch.

Example:
  vocabgen batch "Chapter 5.docx" "Chapter 6.docx"
  vocabgen batch terms/*.docx --output-dir ./lists`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory (default: next to each input)")
	registerRunFlags(batchCmd)
}

// batchOutputPath names the list for input: "<input name> Vocabulary.docx"
func batchOutputPath(input, dir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+" Vocabulary.docx")
}

// batchOutcome is the result of one document in a batch
type batchOutcome struct {
	Input  string
	Result *pipeline.RunResult
	Err    error
}

// runDocuments runs p over inputs sequentially. It stops early only on
// configuration errors or cancellation; other failures are recorded per input.
func runDocuments(ctx context.Context, p *pipeline.Pipeline, inputs []string, dir string, w io.Writer) ([]batchOutcome, error) {
	outcomes := make([]batchOutcome, 0, len(inputs))

	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		fmt.Fprintf(w, "⚙️  [%d/%d] %s\n", i+1, len(inputs), input)
		result, err := p.Run(ctx, input, batchOutputPath(input, dir))
		if err != nil {
			if errors.Is(err, model.ErrConfig) || ctx.Err() != nil {
				return outcomes, err
			}
			fmt.Fprintf(w, "✗ %s: %v\n\n", input, err)
			outcomes = append(outcomes, batchOutcome{Input: input, Err: err})
			continue
		}

		fmt.Fprintf(w, "✓ %s (%d defined, %d not found)\n\n", result.OutputPath,
			result.Resolution.Definitions.Len(), len(result.Resolution.NotFound))
		outcomes = append(outcomes, batchOutcome{Input: input, Result: result})
	}

	return outcomes, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := prepareRun(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(os.Stderr, cfg.Output)

	output := outputDir
	if output == "" {
		output = "(next to each input)"
	} else if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	searcher, err := search.NewGoogleSearcher(ctx, cfg.Search, cfg.Sources.MetadataKey)
	if err != nil {
		return err
	}

	printBanner(os.Stderr, "vocabgen Batch Processing", cfg,
		"Inputs", fmt.Sprintf("%d documents", len(args)),
		"Output", output,
	)

	start := time.Now()
	p := pipeline.NewPipeline(cfg, searcher, os.Stderr, logger)
	outcomes, err := runDocuments(ctx, p, args, outputDir, os.Stderr)
	if err != nil {
		return fmt.Errorf("batch aborted: %w", err)
	}

	// Summary
	successCount, failureCount, termCount := 0, 0, 0
	for _, o := range outcomes {
		if o.Err != nil {
			failureCount++
			continue
		}
		successCount++
		termCount += len(o.Result.Terms)
	}

	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Done! Searched %d terms in %s\n", termCount, time.Since(start).Round(10*time.Millisecond))

	if failureCount > 0 {
		return fmt.Errorf("%d of %d documents failed", failureCount, len(outcomes))
	}
	return nil
}
