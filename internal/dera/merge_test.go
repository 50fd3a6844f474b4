package dera

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptel-andalucia/dera-cli/internal/catalog"
	"github.com/ptel-andalucia/dera-cli/internal/feature"
)

// fakeFetcher returns canned features per layer type name.
type fakeFetcher struct {
	layers map[string][]feature.Feature
	calls  []string
}

func (f *fakeFetcher) FetchLayer(_ context.Context, desc catalog.Descriptor) []feature.Feature {
	f.calls = append(f.calls, desc.TypeName)
	return f.layers[desc.TypeName]
}

func TestMergeLayersTagsProvenance(t *testing.T) {
	ff := &fakeFetcher{layers: map[string][]feature.Feature{
		"ns:a": {
			{Type: "Feature", Properties: map[string]any{"nombre": "uno"}},
			{Type: "Feature"}, // no properties at all
		},
		"ns:b": {
			{Type: "Feature", Properties: map[string]any{"nombre": "dos"}},
		},
	}}

	cat := catalog.Category{
		Key: "health",
		Layers: []catalog.Descriptor{
			{TypeName: "ns:a", Label: "CAP"},
			{TypeName: "ns:b", Label: "Hospitales"},
		},
	}

	coll := MergeLayers(context.Background(), ff, cat, "EPSG:25830")

	require.Len(t, coll.Features, 3)
	assert.Equal(t, "CAP", coll.Features[0].Properties[feature.SourceProperty])
	assert.Equal(t, "uno", coll.Features[0].Properties["nombre"])
	assert.Equal(t, "CAP", coll.Features[1].Properties[feature.SourceProperty])
	assert.Equal(t, "Hospitales", coll.Features[2].Properties[feature.SourceProperty])

	require.NotNil(t, coll.CRS)
	assert.Equal(t, "EPSG:25830", coll.CRS.Properties["name"])
}

func TestMergeLayersOrder(t *testing.T) {
	ff := &fakeFetcher{layers: map[string][]feature.Feature{
		"ns:a": {{Properties: map[string]any{"n": 1}}},
		"ns:b": {{Properties: map[string]any{"n": 2}}},
	}}

	cat := catalog.Category{
		Key: "c",
		Layers: []catalog.Descriptor{
			{TypeName: "ns:b", Label: "B"},
			{TypeName: "ns:a", Label: "A"},
		},
	}

	coll := MergeLayers(context.Background(), ff, cat, "")

	assert.Equal(t, []string{"ns:b", "ns:a"}, ff.calls)
	require.Len(t, coll.Features, 2)
	assert.Equal(t, "B", coll.Features[0].Properties[feature.SourceProperty])
	assert.Equal(t, "A", coll.Features[1].Properties[feature.SourceProperty])
}

func TestMergeLayersPartialFailureIsolation(t *testing.T) {
	// First layer "fails" (abandoned fetch yields nothing), second has 3.
	ff := &fakeFetcher{layers: map[string][]feature.Feature{
		"ns:down": nil,
		"ns:up": {
			{Properties: map[string]any{"n": 1}},
			{Properties: map[string]any{"n": 2}},
			{Properties: map[string]any{"n": 3}},
		},
	}}

	cat := catalog.Category{
		Key: "security",
		Layers: []catalog.Descriptor{
			{TypeName: "ns:down", Label: "Down"},
			{TypeName: "ns:up", Label: "Up"},
		},
	}

	coll := MergeLayers(context.Background(), ff, cat, "EPSG:25830")

	require.Len(t, coll.Features, 3)
	for _, f := range coll.Features {
		assert.Equal(t, "Up", f.Properties[feature.SourceProperty])
	}
}

func TestMergeLayersAllEmpty(t *testing.T) {
	ff := &fakeFetcher{layers: map[string][]feature.Feature{}}
	cat := catalog.Category{
		Key:    "energy",
		Layers: []catalog.Descriptor{{TypeName: "ns:x", Label: "X"}},
	}

	coll := MergeLayers(context.Background(), ff, cat, "EPSG:25830")

	assert.Equal(t, "FeatureCollection", coll.Type)
	assert.Empty(t, coll.Features)
	assert.NotNil(t, coll.Features, "features must serialize as [], not null")
}
