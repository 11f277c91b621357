// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compliance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRulesPartialOverride(t *testing.T) {
	// Overriding one threshold keeps every other default.
	path := writeRules(t, "noise:\n  background_limit: 40\n  peak_limit: 85\n  tolerance: 5\n  peak_tolerance: 1\n")

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, 85.0, rules.Noise.PeakLimit)
	assert.Equal(t, 40.0, rules.Noise.BackgroundLimit)
	assert.Equal(t, DefaultRules().CO2, rules.CO2)
	assert.Equal(t, DefaultRules().Light, rules.Light)
}

func TestLoadRulesRejectsBadTable(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"tolerance above 100", "voc:\n  limit: 400\n  tolerance: 150\n"},
		{"inverted humidity band", "humidity:\n  min: 80\n  max: 20\n  tolerance: 5\n"},
		{"background above peak", "noise:\n  background_limit: 90\n  peak_limit: 55\n  tolerance: 5\n  peak_tolerance: 1\n"},
		{"not yaml", "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRules(writeRules(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultRulesValid(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())
}
