// Package prompts provides the fee-proposal prompt templates and the renderer
// that fills them from a trial's resolved configuration. Templates are stored
// as JSON and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

//go:embed fee_proposal.json
var templateFiles embed.FS

var (
	templatesOnce sync.Once
	templates     map[string]string
	templatesErr  error
)

// loadTemplates parses the embedded template file once per process.
func loadTemplates() (map[string]string, error) {
	templatesOnce.Do(func() {
		data, err := templateFiles.ReadFile("fee_proposal.json")
		if err != nil {
			templatesErr = fmt.Errorf("failed to read template file: %w", err)
			return
		}
		if err := json.Unmarshal(data, &templates); err != nil {
			templatesErr = fmt.Errorf("failed to parse template file: %w", err)
		}
	})
	return templates, templatesErr
}

// Template returns the raw template text for a template key.
func Template(key string) (string, error) {
	all, err := loadTemplates()
	if err != nil {
		return "", err
	}
	tmpl, exists := all[key]
	if !exists {
		return "", fmt.Errorf("template key %q not found", key)
	}
	return tmpl, nil
}

// TemplateKeys returns every available template key, sorted.
func TemplateKeys() ([]string, error) {
	all, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
