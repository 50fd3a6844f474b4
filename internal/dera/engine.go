package dera

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ptel-andalucia/dera-cli/internal/catalog"
)

// Options configures an engine run.
type Options struct {
	// OutputDir receives the per-category GeoJSON files.
	OutputDir string
	// SummaryPath is where the run summary document goes.
	SummaryPath string
	// Source is the summary's source system identifier.
	Source string
	// SRS is the spatial reference code recorded in every output document.
	SRS string
}

// CategoryResult records the outcome of one category.
type CategoryResult struct {
	Key      string
	Features int
	Bytes    int64
	Err      error
}

// Engine drives the download pipeline. Categories are processed strictly in
// sequence: one fetch stream, no shared state between categories.
type Engine struct {
	fetcher LayerFetcher
	catalog *catalog.Catalog
	opts    Options
}

// NewEngine creates an engine over the given fetcher and catalog.
func NewEngine(f LayerFetcher, c *catalog.Catalog, opts Options) *Engine {
	return &Engine{fetcher: f, catalog: c, opts: opts}
}

// Run processes the selected categories in catalog order and then writes the
// run summary. An empty key list selects every category. An unknown key
// fails immediately, before any fetching. A category whose write fails is
// reported in its result and counted as zero; the run continues.
func (e *Engine) Run(ctx context.Context, keys []string) ([]CategoryResult, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))

	categories, err := e.selectCategories(keys)
	if err != nil {
		return nil, err
	}

	log.Info("starting run",
		zap.Int("categories", len(categories)),
		zap.String("output_dir", e.opts.OutputDir),
	)

	results := make([]CategoryResult, 0, len(categories))
	counts := make(map[string]int, len(categories))

	for _, cat := range categories {
		log.Info("processing category", zap.String("category", cat.Key))

		coll := MergeLayers(ctx, e.fetcher, cat, e.opts.SRS)
		count, bytes, err := WriteCategory(e.opts.OutputDir, cat, coll)
		if err != nil {
			log.Error("category write failed", zap.String("category", cat.Key), zap.Error(err))
			count = 0
		}

		results = append(results, CategoryResult{Key: cat.Key, Features: count, Bytes: bytes, Err: err})
		counts[cat.Key] = count
	}

	summary := BuildSummary(e.opts.Source, e.opts.SRS, runID, counts)
	if err := WriteSummary(e.opts.SummaryPath, summary); err != nil {
		return results, err
	}

	log.Info("run complete", zap.Int("total_features", summary.TotalFeatures))
	return results, nil
}

// selectCategories resolves the requested keys against the catalog, keeping
// catalog order for full runs.
func (e *Engine) selectCategories(keys []string) ([]catalog.Category, error) {
	if len(keys) == 0 {
		return e.catalog.All(), nil
	}
	out := make([]catalog.Category, 0, len(keys))
	for _, key := range keys {
		cat, err := e.catalog.Get(key)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}
