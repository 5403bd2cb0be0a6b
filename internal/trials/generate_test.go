package trials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/negotiation-harness/internal/catalog"
)

func TestGenerate_TrialCount(t *testing.T) {
	tests := []struct {
		name        string
		params      []string
		variants    []string
		repetitions int
		want        int
	}{
		{
			name:        "single param single variant",
			params:      []string{"client_name"},
			variants:    []string{"on_behalf_human"},
			repetitions: 1,
			want:        7, // 7 client names
		},
		{
			name:        "two params one variant",
			params:      []string{"clients_per_month", "average_contract_value"},
			variants:    []string{"self_no_law"},
			repetitions: 1,
			want:        20, // 4 x 5
		},
		{
			name:        "repetitions multiply",
			params:      []string{"clients_per_month"},
			variants:    []string{"self_no_law"},
			repetitions: 3,
			want:        12, // 4 x 1 x 3
		},
		{
			name:        "empty variants selects all",
			params:      []string{"clients_per_month"},
			variants:    nil,
			repetitions: 1,
			want:        24, // 4 x 6
		},
		{
			name:        "empty params yields one trial per variant",
			params:      nil,
			variants:    []string{"self_no_law", "on_behalf_human"},
			repetitions: 1,
			want:        2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trials, err := Generate(tt.params, tt.variants, tt.repetitions)
			require.NoError(t, err)
			assert.Len(t, trials, tt.want)
		})
	}
}

func TestGenerate_IDsPairwiseDistinct(t *testing.T) {
	trials, err := Generate([]string{"client_name", "agent_name"}, nil, 2)
	require.NoError(t, err)

	seen := make(map[string]bool, len(trials))
	for _, trial := range trials {
		assert.False(t, seen[trial.ID], "duplicate trial ID %s", trial.ID)
		seen[trial.ID] = true
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate([]string{"client_name", "vendor_name"}, []string{"self_no_law"}, 2)
	require.NoError(t, err)
	second, err := Generate([]string{"client_name", "vendor_name"}, []string{"self_no_law"}, 2)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Config, second[i].Config)
	}
}

func TestGenerate_IDSetIndependentOfArgumentOrder(t *testing.T) {
	forward, err := Generate([]string{"client_name", "vendor_name"}, []string{"self_no_law"}, 1)
	require.NoError(t, err)
	reversed, err := Generate([]string{"vendor_name", "client_name"}, []string{"self_no_law"}, 1)
	require.NoError(t, err)

	ids := func(ts []Trial) map[string]bool {
		m := make(map[string]bool, len(ts))
		for _, trial := range ts {
			m[trial.ID] = true
		}
		return m
	}
	assert.Equal(t, ids(forward), ids(reversed))
}

func TestGenerate_ClientNameExample(t *testing.T) {
	// Constrain to two candidates by checking the subset generated for the
	// full candidate list: 7 names x 1 variant x 2 repetitions.
	trials, err := Generate([]string{"client_name"}, []string{"on_behalf_human"}, 2)
	require.NoError(t, err)
	assert.Len(t, trials, 14)

	names := make(map[string]int)
	for _, trial := range trials {
		names[trial.Config["client_name"].(string)]++
		assert.Equal(t, "on_behalf_human", trial.Variant)
		// Non-varied parameters stay at their defaults.
		assert.Equal(t, 20, trial.Config["clients_per_month"])
		assert.Equal(t, "NegotiationAgentZero", trial.Config["agent_name"])
	}
	assert.Equal(t, 2, names["Jane Doe"])
	assert.Equal(t, 2, names["John Smith"])
}

func TestGenerate_RepetitionIndexOneBased(t *testing.T) {
	trials, err := Generate(nil, []string{"self_no_law"}, 2)
	require.NoError(t, err)
	require.Len(t, trials, 2)
	assert.Equal(t, 1, trials[0].Repetition)
	assert.Equal(t, 2, trials[1].Repetition)
}

func TestGenerate_IDContainsOnlyVariedParams(t *testing.T) {
	trials, err := Generate([]string{"client_name"}, []string{"on_behalf_human"}, 1)
	require.NoError(t, err)
	require.NotEmpty(t, trials)

	assert.Equal(t, "on_behalf_human|client_name=Jane Doe|rep=1", trials[0].ID)
	assert.NotContains(t, trials[0].ID, "vendor_name")
}

func TestGenerate_DuplicateInputNamesCollapse(t *testing.T) {
	trials, err := Generate([]string{"client_name", "client_name"}, []string{"self_no_law"}, 1)
	require.NoError(t, err)
	assert.Len(t, trials, 7)
}

func TestGenerate_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name        string
		params      []string
		variants    []string
		repetitions int
	}{
		{"unknown parameter", []string{"nonexistent"}, nil, 1},
		{"unknown variant", nil, []string{"nonexistent"}, 1},
		{"zero repetitions", []string{"client_name"}, nil, 0},
		{"negative repetitions", []string{"client_name"}, nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.params, tt.variants, tt.repetitions)
			require.Error(t, err)
			var confErr *InvalidConfigurationError
			assert.ErrorAs(t, err, &confErr)
		})
	}
}

func TestGenerate_FactorialCount(t *testing.T) {
	params := []string{"clients_per_month", "average_contract_value", "software_type"}
	trials, err := Generate(params, catalog.VariantNames(), 1)
	require.NoError(t, err)

	combinations := 1
	for _, name := range params {
		p, ok := catalog.LookupParameter(name)
		require.True(t, ok)
		combinations *= len(p.Values)
	}
	assert.Len(t, trials, combinations*len(catalog.Variants()))
}
