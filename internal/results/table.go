package results

import (
	"sort"
	"strconv"

	"github.com/jonathan/negotiation-harness/internal/catalog"
)

// Fixed column names. Metadata columns come first, then status, error,
// response, then the two metrics; configuration columns carry the config_
// prefix to keep them distinct from status and metric columns.
const (
	ColTrialID          = "trial_id"
	ColVariant          = "variant"
	ColRepetition       = "repetition"
	ColSuccess          = "success"
	ColError            = "error"
	ColResponse         = "response"
	ColWillingnessToPay = "willingness_to_pay"
	ColOffer            = "offer"

	// ConfigPrefix marks parameter metadata columns, e.g. config_client_name.
	ConfigPrefix = "config_"
)

// Builder accumulates normalized records as a run progresses. It tolerates
// being finalized after only a subset of trials has been processed, so a
// partially completed run can still be flushed.
type Builder struct {
	records []Record
}

// NewBuilder returns an empty result-table builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Append adds a record. Rows keep insertion order.
func (b *Builder) Append(record Record) {
	b.records = append(b.records, record)
}

// Len returns the number of accumulated records.
func (b *Builder) Len() int {
	return len(b.records)
}

// Finalize produces the column-normalized table. The configuration column set
// is the union across all records, not just the first one, so a parameter
// appearing only in late rows still aligns every row.
func (b *Builder) Finalize() *Table {
	columns := b.columns()

	rows := make([]map[string]string, 0, len(b.records))
	for _, record := range b.records {
		rows = append(rows, rowFor(record, columns))
	}

	return &Table{Columns: columns, Rows: rows}
}

// columns computes the stable column order: trial metadata, config union in
// catalog order (off-catalog keys sorted at the end), status, response, and
// the two metrics.
func (b *Builder) columns() []string {
	present := make(map[string]bool)
	for _, record := range b.records {
		for name := range record.Config {
			present[name] = true
		}
	}

	columns := []string{ColTrialID, ColVariant, ColRepetition}
	for _, p := range catalog.Parameters() {
		if present[p.Name] {
			columns = append(columns, ConfigPrefix+p.Name)
			delete(present, p.Name)
		}
	}

	extra := make([]string, 0, len(present))
	for name := range present {
		extra = append(extra, ConfigPrefix+name)
	}
	sort.Strings(extra)
	columns = append(columns, extra...)

	return append(columns, ColSuccess, ColError, ColResponse, ColWillingnessToPay, ColOffer)
}

// rowFor flattens one record into cell values. Absent configuration entries
// and null metrics serialize as empty cells.
func rowFor(record Record, columns []string) map[string]string {
	row := make(map[string]string, len(columns))
	row[ColTrialID] = record.TrialID
	row[ColVariant] = record.Variant
	row[ColRepetition] = strconv.Itoa(record.Repetition)
	row[ColSuccess] = strconv.FormatBool(record.Success)
	row[ColError] = record.Error
	row[ColResponse] = record.Response
	row[ColWillingnessToPay] = formatMetric(record.WillingnessToPay)
	row[ColOffer] = formatMetric(record.Offer)

	for name, value := range record.Config {
		row[ConfigPrefix+name] = catalog.FormatValue(value)
	}

	for _, col := range columns {
		if _, exists := row[col]; !exists {
			row[col] = ""
		}
	}
	return row
}

func formatMetric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Table is the finalized, column-normalized result of a run. One row per
// trial, insertion order preserved.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the table defines the named column.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// ResolveColumn maps a bare parameter name or an exact column name to the
// table's column, tolerating both the prefixed and unprefixed forms.
func (t *Table) ResolveColumn(name string) (string, bool) {
	if t.HasColumn(name) {
		return name, true
	}
	if prefixed := ConfigPrefix + name; t.HasColumn(prefixed) {
		return prefixed, true
	}
	return "", false
}
