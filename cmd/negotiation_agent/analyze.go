package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/negotiation-harness/internal/analysis"
	"github.com/jonathan/negotiation-harness/internal/observability"
	"github.com/jonathan/negotiation-harness/internal/results"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a results CSV produced by run",
	Long: `Computes descriptive statistics over an experiment results CSV.

Without flags the command prints an overall summary plus grouped statistics
for every varied parameter and for the prompt variant. Use --stats-by to
group by one specific column, --show-columns to list the available columns,
or --show-values to inspect a column's distinct values.`,
	RunE: analyzeResultsCmd,
}

var (
	analyzeCSVPath     string
	analyzeShowColumns bool
	analyzeShowValues  string
	analyzeStatsBy     string
	analyzeMetrics     []string
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeCSVPath, "csv", "", "Path to the results CSV file (required)")
	analyzeCommand.Flags().BoolVar(&analyzeShowColumns, "show-columns", false, "List the table's columns and exit")
	analyzeCommand.Flags().StringVar(&analyzeShowValues, "show-values", "", "List the distinct values of a column and exit")
	analyzeCommand.Flags().StringVar(&analyzeStatsBy, "stats-by", "", "Group statistics by this column (bare or config_-prefixed)")
	analyzeCommand.Flags().StringSliceVar(&analyzeMetrics, "metrics", nil, "Metric columns to summarize (default willingness_to_pay,offer)")

	if err := analyzeCommand.MarkFlagRequired("csv"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(analyzeCommand)
}

func analyzeResultsCmd(_ *cobra.Command, _ []string) error {
	table, err := results.ReadCSVFile(analyzeCSVPath)
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}
	if len(table.Rows) == 0 {
		return fmt.Errorf("results file %s has no rows", analyzeCSVPath)
	}

	printer := observability.NewPrinter(os.Stdout)

	if analyzeShowColumns {
		printer.PrintColumns(table)
		return nil
	}

	if analyzeShowValues != "" {
		values, err := analysis.ColumnValues(table, analyzeShowValues)
		if err != nil {
			return err
		}
		printer.PrintColumnValues(analyzeShowValues, values)
		return nil
	}

	metrics := analyzeMetrics
	if len(metrics) == 0 {
		metrics = analysis.Metrics
	}
	for _, metric := range metrics {
		if _, ok := table.ResolveColumn(metric); !ok {
			return fmt.Errorf("metric column %q not found", metric)
		}
	}

	if analyzeStatsBy != "" {
		for _, metric := range metrics {
			stats, err := analysis.GroupBy(table, analyzeStatsBy, metric)
			if err != nil {
				return err
			}
			printer.PrintGroupStats(analyzeStatsBy, metric, stats)
		}
		return nil
	}

	// Full report: overall summary, then per-varied-parameter and per-variant
	// grouped statistics.
	printer.PrintRunSummary(table)

	groupColumns := analysis.VariedParameters(table)
	groupColumns = append(groupColumns, results.ColVariant)

	for _, column := range groupColumns {
		for _, metric := range metrics {
			stats, err := analysis.GroupBy(table, column, metric)
			if err != nil {
				return err
			}
			printer.PrintGroupStats(column, metric, stats)
		}
	}

	return nil
}
