package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/negotiation-harness/internal/results"
)

func floatPtr(v float64) *float64 { return &v }

func statsTable(t *testing.T) *results.Table {
	t.Helper()
	builder := results.NewBuilder()
	add := func(id, client string, wtp, offer *float64, success bool) {
		rec := results.Record{
			TrialID: id, Variant: "on_behalf_human", Repetition: 1, Success: success,
			Config:           map[string]any{"client_name": client},
			WillingnessToPay: wtp, Offer: offer,
		}
		if !success {
			rec.Error = "rate limit exceeded"
		}
		builder.Append(rec)
	}

	add("a|rep=1", "Jane Doe", floatPtr(100), floatPtr(80), true)
	add("b|rep=1", "Jane Doe", floatPtr(200), floatPtr(160), true)
	add("c|rep=1", "John Smith", floatPtr(300), floatPtr(240), true)
	add("d|rep=1", "John Smith", floatPtr(400), nil, true)
	add("e|rep=1", "John Smith", nil, nil, false)
	return builder.Finalize()
}

func TestDescribe(t *testing.T) {
	d := Describe([]float64{100, 200, 300, 400})

	assert.Equal(t, 4, d.Count)
	assert.InDelta(t, 250, d.Mean, 1e-9)
	assert.InDelta(t, 250, d.Median, 1e-9)
	assert.InDelta(t, 129.0994, d.Std, 1e-3) // sample std
	assert.InDelta(t, 100, d.Min, 1e-9)
	assert.InDelta(t, 175, d.Q1, 1e-9)
	assert.InDelta(t, 325, d.Q3, 1e-9)
	assert.InDelta(t, 400, d.Max, 1e-9)
}

func TestDescribe_Empty(t *testing.T) {
	d := Describe(nil)
	assert.Equal(t, 0, d.Count)
	assert.Zero(t, d.Mean)
}

func TestDescribe_SingleValue(t *testing.T) {
	d := Describe([]float64{42})
	assert.Equal(t, 1, d.Count)
	assert.Equal(t, 42.0, d.Mean)
	assert.Equal(t, 42.0, d.Median)
	assert.Zero(t, d.Std)
}

func TestMetricValues_SkipsNulls(t *testing.T) {
	table := statsTable(t)

	wtp, err := MetricValues(table, "willingness_to_pay")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300, 400}, wtp)

	offers, err := MetricValues(table, "offer")
	require.NoError(t, err)
	assert.Equal(t, []float64{80, 160, 240}, offers)
}

func TestGroupBy(t *testing.T) {
	table := statsTable(t)

	stats, err := GroupBy(table, "client_name", "willingness_to_pay")
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "Jane Doe", stats[0].Group)
	assert.Equal(t, 2, stats[0].Count)
	assert.InDelta(t, 150, stats[0].Mean, 1e-9)
	require.True(t, stats[0].HasPct)
	assert.InDelta(t, -40, stats[0].PctFromMean, 1e-9) // overall mean 250

	assert.Equal(t, "John Smith", stats[1].Group)
	assert.Equal(t, 2, stats[1].Count)
	assert.InDelta(t, 350, stats[1].Mean, 1e-9)
	assert.InDelta(t, 40, stats[1].PctFromMean, 1e-9)
}

func TestGroupBy_PrefixedColumnName(t *testing.T) {
	table := statsTable(t)

	bare, err := GroupBy(table, "client_name", "willingness_to_pay")
	require.NoError(t, err)
	prefixed, err := GroupBy(table, "config_client_name", "willingness_to_pay")
	require.NoError(t, err)
	assert.Equal(t, bare, prefixed)
}

func TestGroupBy_UnknownColumn(t *testing.T) {
	table := statsTable(t)
	_, err := GroupBy(table, "nonexistent", "offer")
	assert.Error(t, err)
}

func TestColumnValues(t *testing.T) {
	table := statsTable(t)

	values, err := ColumnValues(table, "client_name")
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, ValueCount{Value: "Jane Doe", Count: 2}, values[0])
	assert.Equal(t, ValueCount{Value: "John Smith", Count: 3}, values[1])
}

func TestVariedParameters(t *testing.T) {
	table := statsTable(t)
	assert.Equal(t, []string{"client_name"}, VariedParameters(table))
}

func TestSuccessCounts(t *testing.T) {
	table := statsTable(t)
	succeeded, failed := SuccessCounts(table)
	assert.Equal(t, 4, succeeded)
	assert.Equal(t, 1, failed)
}
