// Package dera orchestrates the offline dataset build: merge the WFS source
// layers of each category, write the category GeoJSON files, and record the
// run summary.
package dera

import (
	"context"

	"go.uber.org/zap"

	"github.com/ptel-andalucia/dera-cli/internal/catalog"
	"github.com/ptel-andalucia/dera-cli/internal/feature"
)

// LayerFetcher pulls all features of one source layer. Satisfied by
// wfs.Client; tests inject fakes.
type LayerFetcher interface {
	FetchLayer(ctx context.Context, desc catalog.Descriptor) []feature.Feature
}

// MergeLayers fetches every source layer of a category in order and
// concatenates the results into one collection, stamping each feature with
// its layer's provenance label. A layer that yields nothing (including one
// abandoned after retries) is skipped, not fatal.
func MergeLayers(ctx context.Context, f LayerFetcher, cat catalog.Category, srs string) feature.Collection {
	log := zap.L().With(zap.String("category", cat.Key))

	coll := feature.NewCollection(srs)
	for _, desc := range cat.Layers {
		features := f.FetchLayer(ctx, desc)
		if len(features) == 0 {
			log.Warn("layer yielded no features", zap.String("layer", desc.TypeName))
			continue
		}
		for _, ft := range features {
			coll.Features = append(coll.Features, feature.Annotate(ft, desc.Label))
		}
	}

	log.Info("category merged",
		zap.Int("layers", len(cat.Layers)),
		zap.Int("features", len(coll.Features)),
	)
	return coll
}
