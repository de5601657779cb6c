package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/vocabgen/internal/model"
	"github.com/ppiankov/vocabgen/internal/picker"
	"github.com/ppiankov/vocabgen/internal/pipeline"
	"github.com/ppiankov/vocabgen/internal/search"
	"github.com/ppiankov/vocabgen/internal/util"
)

var (
	outputPath    string
	headerLines   []string
	noOpen        bool
	timeout       time.Duration
	userAgent     string
	maxBytes      int64
	domain        string
	preferred     string
	fallback      string
	stopWords     []string
	fontFamily    string
	fontSize      float64
	respectRobots bool
	httpProxy     string
	httpsProxy    string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [input]",
	Short: "Generate a vocabulary list from a document of terms",
	Long: `Generate reads one term per line from a .docx (or .txt) document,
looks up a definition for each term and writes the vocabulary list.

Lines are kept only when they consist of letters, digits, spaces, hyphens
and parentheses, and contain no stop word ("Vocab", "Chapter" by default).
Parenthesised parts are left out of the search query but kept in the output.

Without an input argument a file picker is shown.

Search credentials come from GOOGLE_API_KEY and GOOGLE_CSE_ID (or
VOCABGEN_SEARCH_API_KEY / VOCABGEN_SEARCH_ENGINE_ID, or the config file).

Example:
  vocabgen generate "Chapter 5.docx"
  vocabgen generate terms.docx -o ch5.docx --header "Jane Student" --header "Period 3"
  vocabgen generate terms.txt --domain biology --preferred britannica --no-open`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Output flags
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output .docx path (default: Vocabulary.docx next to the input)")
	generateCmd.Flags().BoolVar(&noOpen, "no-open", false, "do not open the document after writing it")

	registerRunFlags(generateCmd)
}

// registerRunFlags adds the lookup and formatting flags shared by generate and batch
func registerRunFlags(cmd *cobra.Command) {
	defaults := model.DefaultConfig()

	// Document flags
	cmd.Flags().StringArrayVar(&headerLines, "header", nil, "header line at the top of the document (repeatable)")
	cmd.Flags().StringVar(&fontFamily, "font", defaults.Document.FontFamily, "document font family")
	cmd.Flags().Float64Var(&fontSize, "font-size", defaults.Document.FontSize, "document font size in points")
	cmd.Flags().StringArrayVar(&stopWords, "stop-word", nil, "skip lines containing this word (repeatable, replaces the defaults)")

	// Source flags
	cmd.Flags().StringVar(&domain, "domain", defaults.Sources.Domain, "subject added to every search query")
	cmd.Flags().StringVar(&preferred, "preferred", defaults.Sources.Preferred, "preferred source, definition taken from its page description")
	cmd.Flags().StringVar(&fallback, "fallback", defaults.Sources.Fallback, "fallback source, definition expanded from its page")

	// HTTP flags
	cmd.Flags().DurationVar(&timeout, "timeout", defaults.HTTP.Timeout, "timeout for each page fetch")
	cmd.Flags().StringVar(&userAgent, "ua", defaults.HTTP.UserAgent, "HTTP User-Agent for page fetches")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", defaults.HTTP.MaxBodyBytes, "max response bytes to read")
	cmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "skip pages disallowed by robots.txt")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// applyRunFlags copies explicitly set flags over the loaded configuration
func applyRunFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()

	if flags.Changed("header") {
		cfg.Document.Header = headerLines
	}
	if flags.Changed("font") {
		cfg.Document.FontFamily = fontFamily
	}
	if flags.Changed("font-size") {
		cfg.Document.FontSize = fontSize
	}
	if flags.Changed("stop-word") {
		cfg.Extract.StopWords = stopWords
	}
	if flags.Changed("domain") {
		cfg.Sources.Domain = domain
	}
	if flags.Changed("preferred") {
		cfg.Sources.Preferred = preferred
	}
	if flags.Changed("fallback") {
		cfg.Sources.Fallback = fallback
	}
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if flags.Changed("respect-robots") {
		cfg.HTTP.RespectRobots = respectRobots
	}
	if flags.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if flags.Changed("no-open") {
		cfg.Document.Open = !noOpen
	}
}

// prepareRun loads configuration, applies flags and checks the credentials
func prepareRun(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	applyRunFlags(cmd, cfg)

	if err := cfg.Search.Validate(); err != nil {
		return nil, fmt.Errorf("%w\nSet GOOGLE_API_KEY and GOOGLE_CSE_ID, or run 'vocabgen config init' and edit the file", err)
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := prepareRun(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(os.Stderr, cfg.Output)

	// Acquire the input document
	var source picker.Source = picker.NewInteractive("")
	if len(args) == 1 {
		source = picker.Static(args[0])
	}
	input, err := source.InputPath(ctx)
	if err != nil {
		return err
	}

	searcher, err := search.NewGoogleSearcher(ctx, cfg.Search, cfg.Sources.MetadataKey)
	if err != nil {
		return err
	}

	printBanner(os.Stderr, "vocabgen", cfg,
		"Input", input,
		"Output", displayOutput(input, outputPath, cfg),
	)

	p := pipeline.NewPipeline(cfg, searcher, os.Stderr, logger)
	result, err := p.Run(ctx, input, outputPath)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	printSummary(os.Stderr, result)

	if cfg.Document.Open {
		if err := util.OpenFile(result.OutputPath); err != nil {
			logger.Warn("could not open document", "path", result.OutputPath, "error", err)
		}
	}

	return nil
}

func displayOutput(input, output string, cfg *model.Config) string {
	if output != "" {
		return output
	}
	return pipeline.DefaultOutputPath(input, cfg.Document.OutputName)
}

// printBanner writes the run header. fields are label/value pairs.
func printBanner(w io.Writer, title string, cfg *model.Config, fields ...string) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(w, "  %-10s %s\n", fields[i]+":", fields[i+1])
	}
	fmt.Fprintf(w, "  %-10s %s → %s (%s)\n", "Sources:", cfg.Sources.Preferred, cfg.Sources.Fallback, cfg.Sources.Domain)
	fmt.Fprintf(w, "\n")
}

// printSummary writes the per-document result lines
func printSummary(w io.Writer, result *pipeline.RunResult) {
	res := result.Resolution
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "✓ Defined %d terms\n", res.Definitions.Len())
	if len(res.NotFound) > 0 {
		fmt.Fprintf(w, "✗ Not found: %d terms\n", len(res.NotFound))
	}
	fmt.Fprintf(w, "✓ Saved %s\n", result.OutputPath)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Done! Searched %d terms in %s\n", len(result.Terms), result.Elapsed.Round(10*time.Millisecond))
}
