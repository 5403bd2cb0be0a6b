package prompts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/negotiation-harness/internal/catalog"
	"github.com/jonathan/negotiation-harness/internal/trials"
)

// placeholderPattern matches {{.Key}} placeholders in a template.
var placeholderPattern = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9_]*)\}\}`)

// Render fills the trial's variant template with the trial's resolved
// configuration and returns the literal prompt text. Integers render without
// decimal points, strings verbatim. Every placeholder must be satisfied; a
// missing one is an authoring bug, not a default.
func Render(trial trials.Trial) (string, error) {
	variant, ok := catalog.LookupVariant(trial.Variant)
	if !ok {
		return "", &UnknownVariantError{Variant: trial.Variant}
	}

	tmpl, err := Template(variant.TemplateKey)
	if err != nil {
		return "", &UnknownVariantError{Variant: trial.Variant}
	}

	data := placeholderData(trial.Config)

	rendered := tmpl
	for _, match := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
		placeholder := match[1]
		value, exists := data[placeholder]
		if !exists {
			return "", &MissingPlaceholderError{Variant: trial.Variant, Placeholder: placeholder}
		}
		rendered = strings.ReplaceAll(rendered, fmt.Sprintf("{{.%s}}", placeholder), value)
	}

	return rendered, nil
}

// placeholderData maps the configuration onto template placeholder keys,
// formatting each value as its natural textual representation.
func placeholderData(config map[string]any) map[string]string {
	data := make(map[string]string, len(config))
	for _, p := range catalog.Parameters() {
		if value, exists := config[p.Name]; exists {
			data[p.Placeholder] = catalog.FormatValue(value)
		}
	}
	return data
}
