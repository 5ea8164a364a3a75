package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"surveypulse/internal/exporter"
	"surveypulse/pkg/contracts/domain"
)

type analyzeResult struct {
	Analytics *domain.AnalyticsBundle `json:"analytics"`
	Insights  *domain.InsightsBundle  `json:"insights,omitempty"`
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		withInsights bool
		summaryCSV   string
	)

	cmd := &cobra.Command{
		Use:   "analyze <questionnaire-id>",
		Short: "Compute the analytics bundle of a questionnaire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dr, err := opts.dateRange()
			if err != nil {
				return err
			}
			rt, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			bundle, err := rt.analytics.AnalyzeQuestionnaire(ctx, args[0], dr)
			if err != nil {
				return err
			}

			out := analyzeResult{Analytics: bundle}
			if withInsights {
				insights := rt.analytics.GenerateInsights(ctx, bundle)
				out.Insights = &insights
				rt.analytics.Wait()
			}

			if summaryCSV != "" {
				if err := rt.csv.WriteTableFile(summaryCSV, exporter.BuildSummaryTable(bundle.Stats), rt.cfg.Export.CSVBOM); err != nil {
					return err
				}
			}

			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	opts.addDateFlags(cmd)
	cmd.Flags().BoolVar(&withInsights, "insights", false, "include generated insights")
	cmd.Flags().StringVar(&summaryCSV, "summary-csv", "", "also write the response summary table to this CSV (relative paths land in the export directory)")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <questionnaire-id>",
		Short: "Render responses to excel, csv or json and save the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dr, err := opts.dateRange()
			if err != nil {
				return err
			}
			rt, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			result, err := rt.export.ExportQuestionnaire(cmd.Context(), args[0], format, dr)
			if err != nil {
				return err
			}
			path, err := rt.export.Save(cmd.Context(), result)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d records\t%s\n", path, result.RecordCount, result.Digest)
			return err
		},
	}

	opts.addDateFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(domain.ExportFormatExcel), "export format: excel, csv or json")
	return cmd
}

func newTextCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "text <text>...",
		Short: "Analyze the sentiment and keywords of a single text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rt.analytics.AnalyzeText(cmd.Context(), strings.Join(args, " ")))
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
