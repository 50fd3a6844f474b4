package dera

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummaryTotals(t *testing.T) {
	counts := map[string]int{"health": 5, "energy": 0, "security": 12}

	s := BuildSummary("IDEAndalucía DERA WFS", "EPSG:25830", "run-1", counts)

	assert.Equal(t, 17, s.TotalFeatures)
	assert.Len(t, s.Layers, 3)
	assert.Equal(t, 5, s.Layers["health"])
	assert.Equal(t, 12, s.Layers["security"])

	// Zero-count categories stay present.
	n, ok := s.Layers["energy"]
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	assert.Equal(t, "IDEAndalucía DERA WFS", s.Source)
	assert.Equal(t, "EPSG:25830", s.CRS)
	assert.Equal(t, "run-1", s.RunID)
	assert.False(t, s.LastUpdate.IsZero())
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary("src", "EPSG:25830", "run-2", nil)
	assert.Equal(t, 0, s.TotalFeatures)
	assert.Empty(t, s.Layers)
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "metadata.json")
	s := BuildSummary("src", "EPSG:25830", "run-3", map[string]int{"health": 2})

	require.NoError(t, WriteSummary(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, s.TotalFeatures, got.TotalFeatures)
	assert.Equal(t, s.Layers, got.Layers)
	assert.Equal(t, "run-3", got.RunID)
}

func TestWriteSummaryOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")

	require.NoError(t, WriteSummary(path, BuildSummary("src", "crs", "a", map[string]int{"x": 1})))
	require.NoError(t, WriteSummary(path, BuildSummary("src", "crs", "b", map[string]int{"x": 9})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 9, got.TotalFeatures)
	assert.Equal(t, "b", got.RunID)
}
