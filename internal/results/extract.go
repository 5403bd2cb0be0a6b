// Package results normalizes model replies into uniform records and
// accumulates them into the run's result table.
package results

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches one maximal numeric token: an optional sign, an
// optional currency symbol, digits with optional comma thousands separators,
// and an optional decimal part. This grammar is normative; anything the
// pattern does not match is not a number.
var numberPattern = regexp.MustCompile(`[-+]?[$€£]?\d[\d,]*(?:\.\d+)?`)

// ExtractNumbers scans text left-to-right and returns every numeric token in
// order of first appearance. Currency symbols and thousands separators are
// stripped before conversion; a token that still fails to parse is skipped
// rather than aborting the scan.
func ExtractNumbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	numbers := make([]float64, 0, len(matches))
	for _, token := range matches {
		cleaned := strings.Map(func(r rune) rune {
			switch r {
			case '$', '€', '£', ',':
				return -1
			}
			return r
		}, token)

		value, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, value)
	}
	return numbers
}
