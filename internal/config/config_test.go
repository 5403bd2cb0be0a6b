package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"mode": "custom",
		"params": ["client_name"],
		"repetitions": 5,
		"model": "gemini-2.5-pro"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Mode)
	assert.Equal(t, []string{"client_name"}, cfg.Params)
	assert.Equal(t, 5, cfg.Repetitions)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
}

func TestLoadConfig_SchemaRejectsUnknownField(t *testing.T) {
	path := writeConfigFile(t, `{"auto_discover_csv": true}`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config is valid", Config{}, false},
		{"valid mode", Config{Mode: "quick"}, false},
		{"invalid mode", Config{Mode: "exhaustive"}, true},
		{"negative delay", Config{DelayMs: -1}, true},
		{"valid repetitions", Config{Repetitions: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Mode: "custom", Params: []string{"client_name"}}
	defaults := Config{
		Mode:        "quick",
		Repetitions: 1,
		Model:       "gemini-2.5-flash",
		DelayMs:     500,
		Concurrency: 1,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "custom", merged.Mode, "explicit values win")
	assert.Equal(t, []string{"client_name"}, merged.Params)
	assert.Equal(t, 1, merged.Repetitions)
	assert.Equal(t, "gemini-2.5-flash", merged.Model)
	assert.Equal(t, 500, merged.DelayMs)
	assert.Equal(t, 1, merged.Concurrency)
}
