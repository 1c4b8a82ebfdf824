package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/credlens/credlens/internal/engine"
	"github.com/credlens/credlens/internal/logging"
	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/pdftext"
	"github.com/credlens/credlens/internal/store"
)

var (
	contentTypeFlag string
	sourceHint      string
	priorFile       string
	receivedAt      string
	concreteHarm    bool
	denialLetters   int
	actualDollars   float64
	saveResult      bool
	clientID        string
	roundNumber     int
	prettyOutput    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <report-file>",
	Short: "Analyze one credit report document",
	Long: `Analyze runs the full pipeline over a single report file and prints the
AnalysisResult as JSON. HTML and PDF inputs are detected from the file
extension unless --content-type says otherwise; PDFs are converted to text
before the engine runs.

Examples:
  credlens analyze report.html
  credlens analyze report.pdf --concrete-harm --denial-letters 2 --actual-dollars 4200
  credlens analyze report.html --prior round1.json --save --client c-1001 --round 2`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&contentTypeFlag, "content-type", "auto", "document type: auto|html|pdf|pdf-text")
	analyzeCmd.Flags().StringVar(&sourceHint, "source-hint", "", "vendor hint (identityiq|creditkarma|experian|generic)")
	analyzeCmd.Flags().StringVar(&priorFile, "prior", "", "JSON file with prior-round dispute context")
	analyzeCmd.Flags().StringVar(&receivedAt, "received-at", "", "document date (YYYY-MM-DD) for reporting-window checks; defaults to today")
	analyzeCmd.Flags().BoolVar(&concreteHarm, "concrete-harm", false, "consumer suffered identifiable harm")
	analyzeCmd.Flags().IntVar(&denialLetters, "denial-letters", 0, "adverse-action/denial letters on file")
	analyzeCmd.Flags().Float64Var(&actualDollars, "actual-dollars", 0, "documented actual-harm amount in dollars")
	analyzeCmd.Flags().BoolVar(&saveResult, "save", false, "persist the result to the analysis store")
	analyzeCmd.Flags().StringVar(&clientID, "client", "", "client id (required with --save)")
	analyzeCmd.Flags().IntVar(&roundNumber, "round", 1, "dispute round number")
	analyzeCmd.Flags().BoolVar(&prettyOutput, "pretty", true, "indent JSON output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	logger := logging.Logger(logging.NopLogger{})
	if verbose {
		logger = logging.NewStdoutLogger("analyze")
	}

	contentType, body, err := resolveContent(path, body, logger)
	if err != nil {
		return err
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if receivedAt != "" {
		asOf, err = time.Parse("2006-01-02", receivedAt)
		if err != nil {
			return fmt.Errorf("parsing --received-at: %w", err)
		}
	}

	var prior *model.PriorRoundContext
	if priorFile != "" {
		data, err := os.ReadFile(priorFile)
		if err != nil {
			return fmt.Errorf("reading prior context: %w", err)
		}
		prior = &model.PriorRoundContext{}
		if err := json.Unmarshal(data, prior); err != nil {
			return fmt.Errorf("parsing prior context: %w", err)
		}
	}

	cfg := engine.DefaultConfig()
	if rate := viper.GetFloat64("hourly_rate"); rate > 0 {
		cfg.Scoring.HourlyRate = rate
	}

	eng := engine.New(cfg)
	result, err := eng.Analyze(engine.Input{
		Document: model.RawDocument{
			Body:        body,
			ContentType: contentType,
			SourceHint:  sourceHint,
			ReceivedAt:  asOf,
		},
		Standing: engine.StandingEvidence{
			ConcreteHarm:            concreteHarm,
			DenialLetterCount:       denialLetters,
			DocumentedActualDollars: actualDollars,
		},
		Prior: prior,
	})
	if err != nil {
		return err
	}

	if saveResult {
		if clientID == "" {
			return fmt.Errorf("--save requires --client")
		}
		st, err := store.Open(&store.Config{Path: viper.GetString("db")}, logger)
		if err != nil {
			return err
		}
		defer st.Close()
		id, err := st.SaveResult(context.Background(), clientID, roundNumber, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved analysis %s\n", id)
	}

	enc := json.NewEncoder(os.Stdout)
	if prettyOutput {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

// resolveContent maps the --content-type flag (or the file extension) to an
// engine content type, converting raw PDFs to text on the way.
func resolveContent(path string, body []byte, logger logging.Logger) (model.ContentType, []byte, error) {
	ct := contentTypeFlag
	if ct == "auto" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			ct = "pdf"
		case ".txt", ".text":
			ct = "pdf-text"
		default:
			ct = "html"
		}
	}

	switch ct {
	case "html":
		return model.ContentTypeHTML, body, nil
	case "pdf-text":
		return model.ContentTypePDFText, body, nil
	case "pdf":
		text, pages, err := pdftext.ExtractText(body)
		if err != nil {
			return "", nil, err
		}
		logger.Info("pdf converted", logging.Field{Key: "pages", Value: pages})
		return model.ContentTypePDFText, []byte(text), nil
	default:
		return "", nil, fmt.Errorf("unsupported --content-type %q", ct)
	}
}
