package results

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/negotiation-harness/internal/trials"
)

func sampleTrial(t *testing.T) trials.Trial {
	t.Helper()
	generated, err := trials.Generate([]string{"client_name"}, []string{"on_behalf_human"}, 1)
	require.NoError(t, err)
	require.NotEmpty(t, generated)
	return generated[0]
}

func TestNormalize_TwoNumbers(t *testing.T) {
	trial := sampleTrial(t)
	record := Normalize(trial, Success("Willingness to pay: $150.00. Final offer: 120"))

	assert.True(t, record.Success)
	assert.Empty(t, record.Error)
	assert.Equal(t, trial.ID, record.TrialID)
	require.NotNil(t, record.WillingnessToPay)
	require.NotNil(t, record.Offer)
	assert.Equal(t, 150.0, *record.WillingnessToPay)
	assert.Equal(t, 120.0, *record.Offer)
}

func TestNormalize_SingleNumberIsNotReused(t *testing.T) {
	record := Normalize(sampleTrial(t), Success("I would pay around 200"))

	assert.True(t, record.Success)
	require.NotNil(t, record.WillingnessToPay)
	assert.Equal(t, 200.0, *record.WillingnessToPay)
	assert.Nil(t, record.Offer)
}

func TestNormalize_NoNumbersIsStillSuccess(t *testing.T) {
	record := Normalize(sampleTrial(t), Success("I cannot give a figure."))

	assert.True(t, record.Success)
	assert.Nil(t, record.WillingnessToPay)
	assert.Nil(t, record.Offer)
	assert.Equal(t, "I cannot give a figure.", record.Response)
}

func TestNormalize_ZeroDistinctFromNull(t *testing.T) {
	record := Normalize(sampleTrial(t), Success("0 and 0"))

	require.NotNil(t, record.WillingnessToPay)
	require.NotNil(t, record.Offer)
	assert.Equal(t, 0.0, *record.WillingnessToPay)
	assert.Equal(t, 0.0, *record.Offer)
}

func TestNormalize_Failure(t *testing.T) {
	record := Normalize(sampleTrial(t), Failure(errors.New("rate limit exceeded")))

	assert.False(t, record.Success)
	assert.Equal(t, "rate limit exceeded", record.Error)
	assert.Empty(t, record.Response)
	assert.Nil(t, record.WillingnessToPay)
	assert.Nil(t, record.Offer)
}
