package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	// WHEN
	result, err := RenderTable([]string{"Device", "State"}, [][]string{
		{"power", "on"},
		{"light", "off"},
	}, false)

	// THEN
	require.NoError(t, err)
	assert.Contains(t, result, "Device")
	assert.Contains(t, result, "power")
	assert.Contains(t, result, "off")
}
