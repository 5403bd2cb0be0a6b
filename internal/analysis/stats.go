// Package analysis computes grouped descriptive statistics over a finalized
// result table: the counterpart of the run loop for downstream summarization.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/negotiation-harness/internal/results"
)

// Metrics lists the two extracted metric columns in canonical order.
var Metrics = []string{results.ColWillingnessToPay, results.ColOffer}

// Descriptive holds summary statistics for one set of metric values. Count is
// the number of non-null values; all other fields are zero when Count is.
type Descriptive struct {
	Count  int
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Q1     float64
	Q3     float64
	Max    float64
}

// GroupStat is the statistics for one group of rows plus its deviation from
// the overall mean, in percent. PctFromMean is meaningless when the overall
// mean is zero; HasPct marks that case.
type GroupStat struct {
	Group string
	Descriptive
	PctFromMean float64
	HasPct      bool
}

// Describe computes descriptive statistics over the values. A nil or empty
// input yields a zero Descriptive with Count 0.
func Describe(values []float64) Descriptive {
	n := len(values)
	if n == 0 {
		return Descriptive{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	variance := 0.0
	if n > 1 {
		for _, v := range sorted {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(n - 1)
	}

	return Descriptive{
		Count:  n,
		Mean:   mean,
		Median: quantile(sorted, 0.5),
		Std:    math.Sqrt(variance),
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// quantile computes the q-th quantile of sorted values with linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// MetricValues returns the non-null values of a metric column in row order.
func MetricValues(table *results.Table, metric string) ([]float64, error) {
	col, ok := table.ResolveColumn(metric)
	if !ok {
		return nil, fmt.Errorf("column %q not found", metric)
	}

	values := make([]float64, 0, len(table.Rows))
	for _, row := range table.Rows {
		cell := row[col]
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q holds non-numeric value %q", col, cell)
		}
		values = append(values, v)
	}
	return values, nil
}

// GroupBy computes per-group statistics of a metric, grouped by any metadata
// column. The grouping column may be given bare or with the config_ prefix.
// Groups come back sorted by group value; null metric cells are excluded from
// every group's statistics.
func GroupBy(table *results.Table, column, metric string) ([]GroupStat, error) {
	groupCol, ok := table.ResolveColumn(column)
	if !ok {
		return nil, fmt.Errorf("column %q not found", column)
	}
	metricCol, ok := table.ResolveColumn(metric)
	if !ok {
		return nil, fmt.Errorf("column %q not found", metric)
	}

	groups := make(map[string][]float64)
	var overall []float64
	for _, row := range table.Rows {
		cell := row[metricCol]
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q holds non-numeric value %q", metricCol, cell)
		}
		groups[row[groupCol]] = append(groups[row[groupCol]], v)
		overall = append(overall, v)
	}

	overallMean := Describe(overall).Mean

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	stats := make([]GroupStat, 0, len(keys))
	for _, key := range keys {
		stat := GroupStat{Group: key, Descriptive: Describe(groups[key])}
		if overallMean != 0 {
			stat.PctFromMean = (stat.Mean - overallMean) / overallMean * 100
			stat.HasPct = true
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

// ValueCount pairs one distinct column value with its row count.
type ValueCount struct {
	Value string
	Count int
}

// ColumnValues returns the distinct values of a column with their row counts,
// sorted by value.
func ColumnValues(table *results.Table, column string) ([]ValueCount, error) {
	col, ok := table.ResolveColumn(column)
	if !ok {
		return nil, fmt.Errorf("column %q not found", column)
	}

	counts := make(map[string]int)
	for _, row := range table.Rows {
		counts[row[col]]++
	}

	values := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		values = append(values, ValueCount{Value: value, Count: count})
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Value < values[j].Value })
	return values, nil
}

// VariedParameters returns the bare names of configuration columns that take
// more than one distinct value in the table, in column order.
func VariedParameters(table *results.Table) []string {
	var varied []string
	for _, col := range table.Columns {
		if !strings.HasPrefix(col, results.ConfigPrefix) {
			continue
		}
		distinct := make(map[string]bool)
		for _, row := range table.Rows {
			distinct[row[col]] = true
		}
		if len(distinct) > 1 {
			varied = append(varied, strings.TrimPrefix(col, results.ConfigPrefix))
		}
	}
	return varied
}

// SuccessCounts returns the number of successful and failed rows.
func SuccessCounts(table *results.Table) (succeeded, failed int) {
	for _, row := range table.Rows {
		if row[results.ColSuccess] == "true" {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
