package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponents_JSONUsesCamelCase(t *testing.T) {
	var c Components
	require.NoError(t, json.Unmarshal([]byte(`{"task":"draft","outputFormat":"BRIEF"}`), &c))
	assert.Equal(t, "BRIEF", c.OutputFormat)
	assert.Equal(t, "BRIEF", c.Get("output_format"))

	raw, err := json.Marshal(Components{OutputFormat: "PLEADING"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"outputFormat":"PLEADING"}`, string(raw))
}
