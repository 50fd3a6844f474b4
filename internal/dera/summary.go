package dera

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Summary is the run-level metadata document consumed by the offline app to
// display dataset freshness. The total is derived from the per-category
// counts, never tracked separately, so the two cannot drift.
type Summary struct {
	LastUpdate    time.Time      `json:"lastUpdate"`
	Source        string         `json:"source"`
	CRS           string         `json:"crs"`
	RunID         string         `json:"runId"`
	Layers        map[string]int `json:"layers"`
	TotalFeatures int            `json:"totalFeatures"`
}

// BuildSummary aggregates the per-category written counts into a summary.
// Every processed category appears in the mapping, zeros included.
func BuildSummary(source, crs, runID string, counts map[string]int) Summary {
	layers := make(map[string]int, len(counts))
	total := 0
	for key, n := range counts {
		layers[key] = n
		total += n
	}
	return Summary{
		LastUpdate:    time.Now().UTC().Truncate(time.Second),
		Source:        source,
		CRS:           crs,
		RunID:         runID,
		Layers:        layers,
		TotalFeatures: total,
	}
}

// WriteSummary persists the summary document, creating parent directories as
// needed and replacing any previous summary in full.
func WriteSummary(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "dera: create summary dir for %s", path)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return eris.Wrap(err, "dera: marshal summary")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "dera: write summary %s", path)
	}

	zap.L().Info("summary written",
		zap.String("path", path),
		zap.Int("total_features", s.TotalFeatures),
	)
	return nil
}
