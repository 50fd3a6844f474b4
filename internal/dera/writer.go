package dera

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ptel-andalucia/dera-cli/internal/catalog"
	"github.com/ptel-andalucia/dera-cli/internal/feature"
)

// WriteCategory persists a category's merged collection as
// <dir>/<key>.geojson, replacing any file from a previous run. Returns the
// feature count and the size of the written document in bytes.
func WriteCategory(dir string, cat catalog.Category, coll feature.Collection) (int, int64, error) {
	coll.BBox = feature.BBox(coll.Features)

	sources := make([]string, len(cat.Layers))
	for i, d := range cat.Layers {
		sources[i] = d.TypeName
	}
	coll.Metadata = &feature.Metadata{
		Layer:         cat.Key,
		Name:          cat.Name,
		FeaturesCount: len(coll.Features),
		DownloadedAt:  time.Now().UTC().Truncate(time.Second),
		Sources:       sources,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, 0, eris.Wrapf(err, "dera: create output dir %s", dir)
	}

	data, err := json.Marshal(coll)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "dera: marshal category %s", cat.Key)
	}

	path := filepath.Join(dir, cat.Key+".geojson")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, 0, eris.Wrapf(err, "dera: write %s", path)
	}

	zap.L().Info("category written",
		zap.String("category", cat.Key),
		zap.String("path", path),
		zap.Int("features", len(coll.Features)),
		zap.Int64("bytes", int64(len(data))),
	)
	return len(coll.Features), int64(len(data)), nil
}
