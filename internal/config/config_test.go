// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "text", cfg.Defaults.Format)
	assert.Equal(t, "all", cfg.Defaults.Categories)
	assert.Equal(t, 512, cfg.Classifier.MaxChars)
	assert.Equal(t, 50, cfg.Classifier.Overlap)
	assert.Equal(t, 10, cfg.Classifier.TimeoutSeconds)
}

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Defaults.Format)
}

func TestLoadConfig_LayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
defaults:
  format: json
  mask: true
floors:
  person: 0.75
classifier:
  max_chars: 256
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Defaults.Format)
	assert.True(t, cfg.Defaults.Mask)
	assert.Equal(t, 0.75, cfg.Floors["person"])
	assert.Equal(t, 256, cfg.Classifier.MaxChars)
	// Untouched settings keep their defaults.
	assert.Equal(t, 50, cfg.Classifier.Overlap)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "defaults: [not a map")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"overlap not below max_chars", "classifier:\n  max_chars: 10\n  overlap: 10\n"},
		{"floor above one", "floors:\n  person: 1.5\n"},
		{"negative floor", "floors:\n  person: -0.1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestGetProfile(t *testing.T) {
	path := writeConfig(t, `
profiles:
  strict:
    description: strict scanning
    categories: email,phone
    mask: true
    floors:
      city: 0.9
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	profile, err := cfg.GetProfile("strict")
	require.NoError(t, err)
	assert.Equal(t, "email,phone", profile.Categories)
	assert.True(t, profile.Mask)
	assert.Equal(t, 0.9, profile.Floors["city"])

	_, err = cfg.GetProfile("missing")
	assert.Error(t, err)
}
