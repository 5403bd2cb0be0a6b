// Package trials turns a declarative run request into the full, deterministic
// list of trial specifications: one per parameter-value combination, prompt
// variant, and repetition index.
package trials

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/negotiation-harness/internal/catalog"
)

// Trial is one fully-specified unit of work. Trials are created once by
// Generate and read-only thereafter.
type Trial struct {
	// ID is unique across a run and stable across runs: it is derived from
	// the varied-parameter assignment, the variant name, and the repetition
	// index, never from insertion order.
	ID         string
	Variant    string
	Repetition int // 1-based
	// Config maps every catalog parameter to its resolved value for this
	// trial: varied parameters take the enumerated value, the rest their
	// defaults.
	Config map[string]any
	// Varied lists the varied parameter names in the order they were
	// supplied to Generate.
	Varied []string
}

// Generate enumerates all trials for the requested parameters, variants, and
// repetition count. An empty variant list selects every registered variant;
// an empty parameter list yields one trial per variant at the default
// configuration. The sequence is fully materialized before any external call
// happens, and identical inputs produce an identical sequence of IDs.
func Generate(paramNames, variantNames []string, repetitions int) ([]Trial, error) {
	if repetitions < 1 {
		return nil, &InvalidConfigurationError{
			Field:   "repetitions",
			Message: fmt.Sprintf("must be a positive integer, got %d", repetitions),
		}
	}

	params, err := resolveParameters(paramNames)
	if err != nil {
		return nil, err
	}

	variants, err := resolveVariants(variantNames)
	if err != nil {
		return nil, err
	}

	assignments := enumerateAssignments(params)

	trialCount := len(assignments) * len(variants) * repetitions
	out := make([]Trial, 0, trialCount)

	varied := make([]string, len(params))
	for i, p := range params {
		varied[i] = p.Name
	}

	for _, assignment := range assignments {
		for _, variant := range variants {
			for rep := 1; rep <= repetitions; rep++ {
				config := catalog.DefaultConfig()
				for name, value := range assignment {
					config[name] = value
				}
				out = append(out, Trial{
					ID:         trialID(variant.Name, assignment, rep),
					Variant:    variant.Name,
					Repetition: rep,
					Config:     config,
					Varied:     varied,
				})
			}
		}
	}

	return out, nil
}

// resolveParameters validates and deduplicates the requested parameter names,
// preserving the order they were supplied in.
func resolveParameters(names []string) ([]catalog.Parameter, error) {
	seen := make(map[string]bool, len(names))
	params := make([]catalog.Parameter, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		p, ok := catalog.LookupParameter(name)
		if !ok {
			return nil, &InvalidConfigurationError{
				Field:   "params",
				Message: fmt.Sprintf("unknown parameter %q", name),
			}
		}
		params = append(params, p)
	}
	return params, nil
}

// resolveVariants validates and deduplicates the requested variant names. An
// empty request selects every registered variant in catalog order.
func resolveVariants(names []string) ([]catalog.Variant, error) {
	if len(names) == 0 {
		return catalog.Variants(), nil
	}
	seen := make(map[string]bool, len(names))
	variants := make([]catalog.Variant, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		v, ok := catalog.LookupVariant(name)
		if !ok {
			return nil, &InvalidConfigurationError{
				Field:   "variants",
				Message: fmt.Sprintf("unknown variant %q", name),
			}
		}
		variants = append(variants, v)
	}
	return variants, nil
}

// enumerateAssignments computes the Cartesian product of the candidate-value
// lists. Candidate order follows the catalog; nesting order follows the order
// the parameters were supplied, leftmost varying slowest. An empty parameter
// list yields the single empty assignment.
func enumerateAssignments(params []catalog.Parameter) []map[string]any {
	assignments := []map[string]any{{}}
	for _, p := range params {
		next := make([]map[string]any, 0, len(assignments)*len(p.Values))
		for _, partial := range assignments {
			for _, value := range p.Values {
				assignment := make(map[string]any, len(partial)+1)
				for k, v := range partial {
					assignment[k] = v
				}
				assignment[p.Name] = value
				next = append(next, assignment)
			}
		}
		assignments = next
	}
	return assignments
}

// trialID builds the stable trial identifier from the variant name, the
// varied-parameter assignment, and the repetition index. Pairs are sorted by
// parameter name so the identifier does not depend on argument order.
func trialID(variant string, assignment map[string]any, repetition int) string {
	pairs := make([]string, 0, len(assignment))
	for name, value := range assignment {
		pairs = append(pairs, name+"="+catalog.FormatValue(value))
	}
	sort.Strings(pairs)
	return fmt.Sprintf("%s|%s|rep=%d", variant, strings.Join(pairs, ","), repetition)
}
