// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/negotiation-harness/internal/analysis"
	"github.com/jonathan/negotiation-harness/internal/catalog"
	"github.com/jonathan/negotiation-harness/internal/results"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCatalog outputs the registered parameters and prompt variants.
func (p *Printer) PrintCatalog() {
	var sb strings.Builder

	sb.WriteString("Parameters:\n")
	for _, param := range catalog.Parameters() {
		sb.WriteString(fmt.Sprintf("  • %s (%d values, default %s)\n",
			param.Name, len(param.Values), catalog.FormatValue(param.Default)))
	}

	sb.WriteString("\nVariants:\n")
	for _, variant := range catalog.Variants() {
		sb.WriteString(fmt.Sprintf("  • %s\n", variant.Name))
	}

	p.printBox("EXPERIMENT CATALOG", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs success/failure counts and per-metric statistics
// for a completed (or interrupted) run.
func (p *Printer) PrintRunSummary(table *results.Table) {
	succeeded, failed := analysis.SuccessCounts(table)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total trials: %d\n", len(table.Rows)))
	sb.WriteString(fmt.Sprintf("Successful:   %d\n", succeeded))
	sb.WriteString(fmt.Sprintf("Failed:       %d\n", failed))

	for _, metric := range analysis.Metrics {
		values, err := analysis.MetricValues(table, metric)
		if err != nil {
			continue
		}
		d := analysis.Describe(values)
		sb.WriteString(fmt.Sprintf("\n%s:\n", metricLabel(metric)))
		if d.Count == 0 {
			sb.WriteString("  no extracted values\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("  count %d  mean %.2f  median %.2f  std %.2f\n",
			d.Count, d.Mean, d.Median, d.Std))
		sb.WriteString(fmt.Sprintf("  min %.2f  q1 %.2f  q3 %.2f  max %.2f\n",
			d.Min, d.Q1, d.Q3, d.Max))
	}

	p.printBox("RUN SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGroupStats outputs grouped statistics for one metric, including each
// group's deviation from the overall mean.
func (p *Printer) PrintGroupStats(column, metric string, stats []analysis.GroupStat) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Metric: %s\n\n", metricLabel(metric)))

	for i, stat := range stats {
		sb.WriteString(fmt.Sprintf("%s\n", stat.Group))
		sb.WriteString(fmt.Sprintf("  n=%d  mean %.2f  median %.2f  std %.2f\n",
			stat.Count, stat.Mean, stat.Median, stat.Std))
		if stat.HasPct {
			symbol := "="
			if stat.PctFromMean > 0 {
				symbol = "↑"
			} else if stat.PctFromMean < 0 {
				symbol = "↓"
			}
			sb.WriteString(fmt.Sprintf("  %+.2f%% vs overall mean %s\n", stat.PctFromMean, symbol))
		}
		if i < len(stats)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("STATISTICS BY %s", strings.ToUpper(column)), sb.String())
}

// PrintColumns outputs the table's column inventory, splitting configuration
// columns from the rest.
func (p *Printer) PrintColumns(table *results.Table) {
	var sb strings.Builder

	sb.WriteString("Configuration columns (usable without the config_ prefix):\n")
	for _, col := range table.Columns {
		if strings.HasPrefix(col, results.ConfigPrefix) {
			sb.WriteString(fmt.Sprintf("  • %s\n", strings.TrimPrefix(col, results.ConfigPrefix)))
		}
	}

	sb.WriteString("\nOther columns:\n")
	for _, col := range table.Columns {
		if !strings.HasPrefix(col, results.ConfigPrefix) {
			sb.WriteString(fmt.Sprintf("  • %s\n", col))
		}
	}

	p.printBox("AVAILABLE COLUMNS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintColumnValues outputs the distinct values of one column with counts.
func (p *Printer) PrintColumnValues(column string, values []analysis.ValueCount) {
	var sb strings.Builder
	for i, vc := range values {
		sb.WriteString(fmt.Sprintf("%2d. %s (n=%d)\n", i+1, vc.Value, vc.Count))
	}
	sb.WriteString(fmt.Sprintf("\nTotal distinct values: %d", len(values)))

	p.printBox(fmt.Sprintf("VALUES IN %s", strings.ToUpper(column)), sb.String())
}

func metricLabel(metric string) string {
	words := strings.Split(metric, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
