// Package feature holds the GeoJSON data model for the offline dataset.
// Features are passed through from the WFS services opaquely: geometry stays
// raw JSON and no coordinate transformation happens anywhere in this package.
package feature

import (
	"encoding/json"
	"time"
)

// SourceProperty is the provenance attribute key stamped onto every feature,
// recording which source layer it came from.
const SourceProperty = "_source"

// Feature is one geometry + attributes record as returned by a WFS service.
type Feature struct {
	Type         string          `json:"type"`
	ID           any             `json:"id,omitempty"`
	Geometry     json.RawMessage `json:"geometry,omitempty"`
	GeometryName string          `json:"geometry_name,omitempty"`
	Properties   map[string]any  `json:"properties"`
	BBox         []float64       `json:"bbox,omitempty"`
}

// Annotate returns a copy of f whose properties carry the provenance label.
// The input feature is never mutated: the properties map is copied (or
// created, for features that arrive without one) before the tag is set.
func Annotate(f Feature, label string) Feature {
	props := make(map[string]any, len(f.Properties)+1)
	for k, v := range f.Properties {
		props[k] = v
	}
	props[SourceProperty] = label
	f.Properties = props
	return f
}

// CRS is the named coordinate reference system member. GeoJSON 2008 style,
// kept because the upstream WFS responses and the downstream offline app
// both use it.
type CRS struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
}

// NamedCRS returns the crs member for a spatial reference code such as
// "EPSG:25830".
func NamedCRS(code string) *CRS {
	return &CRS{
		Type:       "name",
		Properties: map[string]string{"name": code},
	}
}

// Metadata describes one written category file.
type Metadata struct {
	Layer         string    `json:"layer"`
	Name          string    `json:"name"`
	FeaturesCount int       `json:"featuresCount"`
	DownloadedAt  time.Time `json:"downloadedAt"`
	Sources       []string  `json:"sources"`
}

// Collection is an ordered sequence of features plus the optional crs,
// bbox, and metadata members of the serialized category document.
type Collection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	CRS      *CRS      `json:"crs,omitempty"`
	BBox     []float64 `json:"bbox,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// NewCollection returns an empty FeatureCollection annotated with the given
// spatial reference code (empty code leaves the crs member out).
func NewCollection(crsCode string) Collection {
	c := Collection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}
	if crsCode != "" {
		c.CRS = NamedCRS(crsCode)
	}
	return c
}
