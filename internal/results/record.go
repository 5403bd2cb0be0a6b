package results

import (
	"github.com/jonathan/negotiation-harness/internal/trials"
)

// Outcome is the result of one external model call, either a raw response
// text or an error description. The invocation collaborator produces it; this
// package only consumes it.
type Outcome struct {
	Text string
	Err  error
}

// Success wraps a raw response text in an Outcome.
func Success(text string) Outcome {
	return Outcome{Text: text}
}

// Failure wraps a call error in an Outcome.
func Failure(err error) Outcome {
	return Outcome{Err: err}
}

// Record is the normalized result of one trial. The two metrics are nullable:
// nil means "not extracted", which must stay distinguishable from an
// extracted zero and from a failed call.
type Record struct {
	TrialID    string
	Variant    string
	Repetition int
	Config     map[string]any

	Success  bool
	Error    string
	Response string

	WillingnessToPay *float64
	Offer            *float64
}

// Normalize merges a trial specification with its call outcome into a
// Record. On success the first numeric token in the reply becomes
// willingness-to-pay and the second becomes offer; fewer than two numbers is
// an extraction shortfall, not a call failure. A single number is never
// reused for both fields.
func Normalize(trial trials.Trial, outcome Outcome) Record {
	record := Record{
		TrialID:    trial.ID,
		Variant:    trial.Variant,
		Repetition: trial.Repetition,
		Config:     trial.Config,
	}

	if outcome.Err != nil {
		record.Error = outcome.Err.Error()
		return record
	}

	record.Success = true
	record.Response = outcome.Text

	numbers := ExtractNumbers(outcome.Text)
	if len(numbers) > 0 {
		record.WillingnessToPay = &numbers[0]
	}
	if len(numbers) > 1 {
		record.Offer = &numbers[1]
	}
	return record
}
