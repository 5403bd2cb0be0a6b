// Package pipeline provides the high-level orchestration for an experiment
// run: enumerate trials, render prompts, invoke the model once per trial, and
// accumulate normalized records into the result table.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/negotiation-harness/internal/db"
	"github.com/jonathan/negotiation-harness/internal/prompts"
	"github.com/jonathan/negotiation-harness/internal/results"
	"github.com/jonathan/negotiation-harness/internal/trials"
)

// Invoker is the model-invocation collaborator: an opaque function from
// prompt and model identifier to response text. Retry policy lives behind it.
type Invoker interface {
	Invoke(ctx context.Context, prompt, model string) (string, error)
}

// RunOptions holds configuration for one experiment run.
type RunOptions struct {
	Params      []string
	Variants    []string
	Repetitions int
	Model       string
	// Delay is the pause between successive calls in serial mode.
	Delay time.Duration
	// Concurrency bounds in-flight calls; 1 (or 0) means strictly serial.
	Concurrency int
	Verbose     bool
	DatabaseURL string
}

// renderedTrial pairs a trial with its pre-rendered prompt text.
type renderedTrial struct {
	trial  trials.Trial
	prompt string
}

// store bundles the optional persistence handle with its run ID.
type store struct {
	db    *db.DB
	runID uuid.UUID
}

// Run executes the full experiment loop. Configuration and template errors
// abort before any external call is made; per-trial call failures become
// table rows and never abort the run. On context cancellation the partially
// accumulated table is returned together with the context's error, so the
// rows processed so far can still be flushed.
func Run(ctx context.Context, invoker Invoker, opts RunOptions) (*results.Table, error) {
	generated, err := trials.Generate(opts.Params, opts.Variants, opts.Repetitions)
	if err != nil {
		return nil, err
	}

	// Render every prompt up front. A missing placeholder is an authoring
	// bug; surfacing it before the first call keeps broken configurations
	// from burning API credit on a doomed run.
	rendered := make([]renderedTrial, len(generated))
	for i, trial := range generated {
		prompt, err := prompts.Render(trial)
		if err != nil {
			return nil, err
		}
		rendered[i] = renderedTrial{trial: trial, prompt: prompt}
	}

	fmt.Printf("Running %d trials with model %s...\n", len(rendered), opts.Model)

	st := openStore(ctx, opts, len(rendered))
	if st != nil {
		defer st.db.Close()
	}

	var builder *results.Builder
	var runErr error
	if opts.Concurrency > 1 {
		builder, runErr = runConcurrent(ctx, invoker, opts, rendered, st)
	} else {
		builder, runErr = runSerial(ctx, invoker, opts, rendered, st)
	}

	st.complete(runErr)
	return builder.Finalize(), runErr
}

// runSerial processes trials one at a time with a fixed delay between calls.
func runSerial(ctx context.Context, invoker Invoker, opts RunOptions, rendered []renderedTrial, st *store) (*results.Builder, error) {
	builder := results.NewBuilder()

	for i, rt := range rendered {
		if ctx.Err() != nil {
			return builder, ctx.Err()
		}

		record := callOne(ctx, invoker, opts, rt)
		builder.Append(record)
		reportProgress(i+1, len(rendered), record)
		st.save(record)

		if i < len(rendered)-1 && opts.Delay > 0 {
			timer := time.NewTimer(opts.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return builder, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return builder, nil
}

// runConcurrent dispatches trials with a bounded worker count. Each result
// lands in its trial's pre-assigned slot, so attribution never depends on
// completion order; rows are appended in trial order afterwards.
func runConcurrent(ctx context.Context, invoker Invoker, opts RunOptions, rendered []renderedTrial, st *store) (*results.Builder, error) {
	slots := make([]results.Record, len(rendered))
	done := make([]bool, len(rendered))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, rt := range rendered {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			slots[i] = callOne(gctx, invoker, opts, rt)
			done[i] = true
			return nil
		})
	}
	waitErr := g.Wait()

	builder := results.NewBuilder()
	for i := range slots {
		if done[i] {
			builder.Append(slots[i])
			reportProgress(builder.Len(), len(rendered), slots[i])
			st.save(slots[i])
		}
	}

	return builder, waitErr
}

// callOne invokes the model for a single trial and normalizes the outcome.
// Call errors become failure records, never run-level errors.
func callOne(ctx context.Context, invoker Invoker, opts RunOptions, rt renderedTrial) results.Record {
	if opts.Verbose {
		fmt.Printf("[VERBOSE] %s\n", rt.trial.ID)
	}

	text, err := invoker.Invoke(ctx, rt.prompt, opts.Model)
	if err != nil {
		return results.Normalize(rt.trial, results.Failure(err))
	}
	return results.Normalize(rt.trial, results.Success(text))
}

// reportProgress prints a one-line status for a completed trial.
func reportProgress(done, total int, record results.Record) {
	status := "ok"
	if !record.Success {
		status = "failed"
	}
	fmt.Printf("Trial %d/%d [%s]: %s\n", done, total, status, record.TrialID)
}

// openStore connects the optional persistence layer. Connection failures
// warn and the run continues without persistence; a partial CSV is still
// more valuable than an aborted batch.
func openStore(ctx context.Context, opts RunOptions, totalTrials int) *store {
	if opts.DatabaseURL == "" {
		return nil
	}

	database, err := db.Connect(ctx, opts.DatabaseURL)
	if err != nil {
		fmt.Printf("Warning: failed to connect to database: %v\n", err)
		fmt.Printf("Continuing without database persistence...\n")
		return nil
	}

	runID, err := database.CreateRun(ctx, opts.Model, runMode(opts), totalTrials)
	if err != nil {
		fmt.Printf("Warning: failed to create database run: %v\n", err)
		database.Close()
		return nil
	}
	return &store{db: database, runID: runID}
}

// save persists one record, warning on failure. Uses a background context so
// rows can still be flushed after the run context is cancelled.
func (st *store) save(record results.Record) {
	if st == nil {
		return
	}
	if err := st.db.SaveTrialResult(context.Background(), st.runID, record); err != nil {
		fmt.Printf("Warning: failed to persist trial result: %v\n", err)
	}
}

// complete marks the run's final status.
func (st *store) complete(runErr error) {
	if st == nil {
		return
	}
	status := "completed"
	if runErr != nil {
		status = "interrupted"
	}
	if err := st.db.CompleteRun(context.Background(), st.runID, status); err != nil {
		fmt.Printf("Warning: failed to update run status: %v\n", err)
	}
}

func runMode(opts RunOptions) string {
	switch {
	case len(opts.Params) == 0:
		return "variants-only"
	case len(opts.Params) == 1:
		return "quick"
	default:
		return "custom"
	}
}
