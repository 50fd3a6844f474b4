package feature

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// BBox computes the [minX, minY, maxX, maxY] bounds across all decodable
// geometries. Features with missing or undecodable geometry are skipped;
// coordinates are read as-is, in whatever reference system they arrived in.
// Returns nil when no geometry contributed.
func BBox(features []Feature) []float64 {
	bounds := geom.NewBounds(geom.XY)
	for _, f := range features {
		if len(f.Geometry) == 0 {
			continue
		}
		var g geom.T
		if err := geojson.Unmarshal(f.Geometry, &g); err != nil {
			continue
		}
		if g == nil {
			continue
		}
		bounds.Extend(g)
	}
	if bounds.IsEmpty() {
		return nil
	}
	return []float64{bounds.Min(0), bounds.Min(1), bounds.Max(0), bounds.Max(1)}
}
