// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/lunar/pkg/errutil"
)

func TestGenerateSchema(t *testing.T) {
	raw, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, SchemaID, doc["$id"])
	assert.Equal(t, false, doc["additionalProperties"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"enabled", "script-path", "script-glob", "multistate", "tick-interval", "database-url"} {
		assert.Contains(t, props, key)
	}
	tick := props["tick-interval"].(map[string]any)
	assert.Equal(t, "string", tick["type"])
	assert.NotContains(t, doc, "required")
}

func TestValidateYAML(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty", "", ""},
		{"full", "enabled: true\nscript-path: scripts\ntick-interval: 1m30s\nlog-level: debug\n", ""},
		{"number for string", "script-path: 12\n", "SCHEMA_VALIDATION_FAILED"},
		{"duration as integer", "tick-interval: 100\n", "SCHEMA_VALIDATION_FAILED"},
		{"not a mapping", "- a\n- b\n", "SCHEMA_VALIDATION_FAILED"},
		{"invalid yaml", "a: [\n", "INVALID_YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYAML([]byte(tt.body))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, tt.wantErr)
		})
	}
}
