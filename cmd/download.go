package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ptel-andalucia/dera-cli/internal/catalog"
	"github.com/ptel-andalucia/dera-cli/internal/dera"
	"github.com/ptel-andalucia/dera-cli/internal/fetcher"
	"github.com/ptel-andalucia/dera-cli/internal/resilience"
	"github.com/ptel-andalucia/dera-cli/internal/wfs"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download DERA layers into the offline dataset",
	Long: `Download one category or all categories from the DERA WFS services.

Each category becomes one GeoJSON file in the output directory, and the run
summary is written to the configured summary path. Exits non-zero when any
selected category ends up with zero features.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		categoryFlag, _ := cmd.Flags().GetString("category")
		outputFlag, _ := cmd.Flags().GetString("output")

		outDir := cfg.Output.Dir
		if outputFlag != "" {
			outDir = outputFlag
		}

		cat := catalog.Default()
		keys, err := selectKeys(cat, categoryFlag)
		if err != nil {
			return err
		}

		log := zap.L().With(zap.String("command", "download"))
		log.Info("starting download",
			zap.Strings("categories", orAll(keys, cat)),
			zap.String("output_dir", outDir),
		)

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent: cfg.WFS.UserAgent,
			Timeout:   cfg.WFS.Timeout(),
			RateLimit: rate.Limit(cfg.WFS.RatePerSec),
		})
		client := wfs.NewClient(f, wfs.Options{
			SRS:      cfg.WFS.SRS,
			PageSize: cfg.WFS.PageSize,
			MaxPages: cfg.WFS.MaxPages,
			Retry: resilience.Policy{
				MaxAttempts: cfg.WFS.MaxAttempts,
				Delay:       cfg.WFS.RetryDelay(),
			},
			Limiter: rate.NewLimiter(rate.Limit(cfg.WFS.RatePerSec), 1),
		})
		engine := dera.NewEngine(client, cat, dera.Options{
			OutputDir:   outDir,
			SummaryPath: cfg.Output.SummaryPath,
			Source:      cfg.WFS.Source,
			SRS:         cfg.WFS.SRS,
		})

		started := time.Now()
		results, err := engine.Run(ctx, keys)
		if err != nil {
			return eris.Wrap(err, "download")
		}

		log.Info("download finished", zap.Duration("elapsed", time.Since(started).Round(time.Second)))

		if failed := failedCategories(results); len(failed) > 0 {
			return eris.Errorf("download: categories with no features: %v", failed)
		}
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringP("category", "c", "all", "category to download, or 'all'")
	downloadCmd.Flags().StringP("output", "o", "", "override the output directory")
	rootCmd.AddCommand(downloadCmd)
}

// selectKeys turns the --category flag into engine keys: nil selects every
// category; an unknown key errors before any network traffic.
func selectKeys(c *catalog.Catalog, flag string) ([]string, error) {
	if flag == "" || flag == "all" {
		return nil, nil
	}
	if _, err := c.Get(flag); err != nil {
		return nil, err
	}
	return []string{flag}, nil
}

func orAll(keys []string, c *catalog.Catalog) []string {
	if len(keys) == 0 {
		return c.Keys()
	}
	return keys
}

// failedCategories returns the keys of categories that produced no features
// or failed to write — both make the run exit non-zero.
func failedCategories(results []dera.CategoryResult) []string {
	var failed []string
	for _, r := range results {
		if r.Err != nil || r.Features == 0 {
			failed = append(failed, r.Key)
		}
	}
	return failed
}
