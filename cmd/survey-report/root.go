package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"surveypulse/internal/config"
	"surveypulse/internal/exporter"
	"surveypulse/internal/infrastructure"
	"surveypulse/internal/services"
	"surveypulse/internal/textanalysis"
	"surveypulse/pkg/contracts/domain"
)

// options are the flags shared by every subcommand
type options struct {
	dataDir  string
	outDir   string
	logLevel string
	from     string
	to       string
}

// session is the service graph a subcommand runs against
type session struct {
	cfg       *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	analytics *services.AnalyticsService
	export    *services.ExportService
	csv       *exporter.CSVWriter
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "survey-report",
		Short: "Offline survey analytics and exports",
		Long: `survey-report runs the analytics and export engine against the
questionnaire and response documents under the data directory, without
starting the HTTP server.

Examples:
  # Analytics bundle as JSON
  survey-report analyze customer-feedback

  # March responses only, with insights and a summary CSV
  survey-report analyze customer-feedback --from 2024-03-01 --to 2024-03-31 --insights --summary-csv summary.csv

  # Write an Excel workbook into the export directory
  survey-report export customer-feedback --format excel

  # Sentiment of a single text
  survey-report text "Great support, slow checkout"
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding questionnaires/ and responses/ (overrides SURVEY_SOURCE_DATA_DIR)")
	cmd.PersistentFlags().StringVar(&opts.outDir, "out", "", "export directory (overrides SURVEY_EXPORT_OUTPUT_DIR)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	cmd.AddCommand(newAnalyzeCmd(opts), newExportCmd(opts), newTextCmd(opts))
	return cmd
}

// setup loads configuration, applies flag overrides and builds the services
func (o *options) setup(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.dataDir != "" {
		cfg.Source.DataDir = o.dataDir
	}
	if o.outDir != "" {
		cfg.Export.OutputDir = o.outDir
	}

	logger := infrastructure.NewLoggerWithWriter(cmd.ErrOrStderr(), o.logLevel)

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	engine := textanalysis.NewEngine(cfg.Analysis, logger)
	analyzer := textanalysis.NewAnalyzer(engine, cfg.Analysis.MaxKeywords)
	source := services.NewFileSource(paths, logger)
	exp := exporter.New(exporter.Options{
		CSVBOM:         cfg.Export.CSVBOM,
		MaxColumnWidth: cfg.Export.MaxColumnWidth,
	}, logger)

	return &session{
		cfg:       cfg,
		paths:     paths,
		logger:    logger,
		analytics: services.NewAnalyticsService(source, analyzer, services.NewLogPublisher(logger), cfg.Analysis.Workers, logger),
		export:    services.NewExportService(source, exp, paths, logger),
		csv:       exporter.NewCSVWriter(paths, logger),
	}, nil
}

func (o *options) addDateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.from, "from", "", "only responses submitted at or after this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.to, "to", "", "only responses submitted at or before this time (a bare date covers the whole day)")
}

func (o *options) dateRange() (domain.DateRange, error) {
	var dr domain.DateRange

	if o.from != "" {
		t, _, err := parseTime(o.from)
		if err != nil {
			return dr, fmt.Errorf("invalid --from %q: %w", o.from, err)
		}
		dr.From = &t
	}
	if o.to != "" {
		t, dateOnly, err := parseTime(o.to)
		if err != nil {
			return dr, fmt.Errorf("invalid --to %q: %w", o.to, err)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		dr.To = &t
	}

	if dr.From != nil && dr.To != nil && dr.From.After(*dr.To) {
		return domain.DateRange{}, fmt.Errorf("--from must not be after --to")
	}
	return dr, nil
}

func parseTime(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
