package feature

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotatePreservesExistingProperties(t *testing.T) {
	f := Feature{
		Type:       "Feature",
		Properties: map[string]any{"nombre": "Hospital Reina Sofía", "municipio": "Córdoba"},
	}

	tagged := Annotate(f, "Hospitales")

	assert.Equal(t, "Hospitales", tagged.Properties[SourceProperty])
	assert.Equal(t, "Hospital Reina Sofía", tagged.Properties["nombre"])
	assert.Equal(t, "Córdoba", tagged.Properties["municipio"])
}

func TestAnnotateNilProperties(t *testing.T) {
	f := Feature{Type: "Feature"}

	tagged := Annotate(f, "CAP")

	require.NotNil(t, tagged.Properties)
	assert.Equal(t, "CAP", tagged.Properties[SourceProperty])
}

func TestAnnotateDoesNotMutateInput(t *testing.T) {
	f := Feature{
		Type:       "Feature",
		Properties: map[string]any{"nombre": "Comisaría Centro"},
	}

	_ = Annotate(f, "Policía")

	_, tagged := f.Properties[SourceProperty]
	assert.False(t, tagged, "input feature must stay untouched")
	assert.Len(t, f.Properties, 1)
}

func TestAnnotateOverwritesPreviousTag(t *testing.T) {
	f := Feature{Properties: map[string]any{SourceProperty: "old"}}
	tagged := Annotate(f, "new")
	assert.Equal(t, "new", tagged.Properties[SourceProperty])
}

func TestNamedCRS(t *testing.T) {
	crs := NamedCRS("EPSG:25830")
	assert.Equal(t, "name", crs.Type)
	assert.Equal(t, "EPSG:25830", crs.Properties["name"])
}

func TestNewCollection(t *testing.T) {
	c := NewCollection("EPSG:25830")
	assert.Equal(t, "FeatureCollection", c.Type)
	assert.NotNil(t, c.Features)
	require.NotNil(t, c.CRS)
	assert.Equal(t, "EPSG:25830", c.CRS.Properties["name"])

	bare := NewCollection("")
	assert.Nil(t, bare.CRS)
}

func TestFeatureRoundTripKeepsGeometryRaw(t *testing.T) {
	raw := []byte(`{"type":"Feature","id":"g12_01.42","geometry":{"type":"Point","coordinates":[342100.5,4135200.25]},"geometry_name":"geom","properties":{"nombre":"Centro de Salud"}}`)

	var f Feature
	require.NoError(t, json.Unmarshal(raw, &f))
	assert.Equal(t, "g12_01.42", f.ID)
	assert.JSONEq(t, `{"type":"Point","coordinates":[342100.5,4135200.25]}`, string(f.Geometry))

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}

func TestBBox(t *testing.T) {
	features := []Feature{
		{Geometry: json.RawMessage(`{"type":"Point","coordinates":[100,200]}`)},
		{Geometry: json.RawMessage(`{"type":"Point","coordinates":[300,50]}`)},
		{Geometry: json.RawMessage(`not json`)}, // skipped
		{},                                      // no geometry, skipped
	}

	bbox := BBox(features)
	assert.Equal(t, []float64{100, 50, 300, 200}, bbox)
}

func TestBBoxEmpty(t *testing.T) {
	assert.Nil(t, BBox(nil))
	assert.Nil(t, BBox([]Feature{{Geometry: json.RawMessage(`broken`)}}))
}
