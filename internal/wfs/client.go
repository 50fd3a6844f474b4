package wfs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ptel-andalucia/dera-cli/internal/catalog"
	"github.com/ptel-andalucia/dera-cli/internal/feature"
	"github.com/ptel-andalucia/dera-cli/internal/resilience"
)

// Transport fetches a single URL. Satisfied by fetcher.HTTPFetcher; tests
// inject fakes.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Options configures the paginated client.
type Options struct {
	// SRS is the spatial reference code requested from the service and
	// carried through unchanged. Default "EPSG:25830".
	SRS string

	// PageSize is the COUNT requested per page. Default 1000.
	PageSize int

	// MaxPages bounds pagination against a service that keeps returning
	// full pages. Default 500.
	MaxPages int

	// Retry is the per-page retry policy.
	Retry resilience.Policy

	// Limiter paces consecutive page requests. Defaults to 2 req/s.
	Limiter *rate.Limiter
}

func (o Options) withDefaults() Options {
	if o.SRS == "" {
		o.SRS = "EPSG:25830"
	}
	if o.PageSize <= 0 {
		o.PageSize = 1000
	}
	if o.MaxPages <= 0 {
		o.MaxPages = 500
	}
	if o.Retry.MaxAttempts <= 0 {
		o.Retry = resilience.DefaultPolicy()
	}
	if o.Limiter == nil {
		o.Limiter = rate.NewLimiter(2, 1)
	}
	return o
}

// Client pages WFS layers into memory.
type Client struct {
	transport Transport
	opts      Options
}

// NewClient creates a paginated WFS client over the given transport.
func NewClient(t Transport, opts Options) *Client {
	return &Client{transport: t, opts: opts.withDefaults()}
}

// SRS returns the spatial reference code the client requests.
func (c *Client) SRS() string { return c.opts.SRS }

// page mirrors the WFS GetFeature JSON response envelope. numberMatched may
// be a number or the string "unknown" depending on the server, so both count
// hints stay untyped; they feed progress logging only.
type page struct {
	Type          string            `json:"type"`
	Features      []feature.Feature `json:"features"`
	NumberMatched any               `json:"numberMatched"`
	TotalFeatures any               `json:"totalFeatures"`
}

// FetchLayer downloads every feature of one source layer using cursor
// pagination. It never fails: when a page exhausts its retry budget the
// layer is abandoned and whatever accumulated so far is returned, with the
// loss reported through the log.
func (c *Client) FetchLayer(ctx context.Context, desc catalog.Descriptor) []feature.Feature {
	log := zap.L().With(
		zap.String("layer", desc.TypeName),
		zap.String("label", desc.Label),
	)
	log.Info("fetching layer")

	var all []feature.Feature
	startIndex := 0

	for pageNum := 0; ; pageNum++ {
		if pageNum >= c.opts.MaxPages {
			log.Warn("page cap reached, stopping pagination",
				zap.Int("max_pages", c.opts.MaxPages),
				zap.Int("features", len(all)),
			)
			break
		}

		if pageNum > 0 {
			if err := c.opts.Limiter.Wait(ctx); err != nil {
				log.Warn("pagination interrupted", zap.Error(err))
				break
			}
		}

		reqURL, err := GetFeatureURL(desc.Endpoint, desc.TypeName, c.opts.SRS, desc.CQLFilter, startIndex, c.opts.PageSize)
		if err != nil {
			log.Error("bad layer descriptor", zap.Error(err))
			break
		}

		pg, err := c.fetchPage(ctx, reqURL)
		if err != nil {
			log.Warn("abandoning layer after exhausted retries",
				zap.Int("start_index", startIndex),
				zap.Int("features_kept", len(all)),
				zap.Error(err),
			)
			break
		}

		if pageNum == 0 {
			log.Info("layer total reported by service", zap.String("number_matched", matchedHint(pg)))
		}

		if len(pg.Features) == 0 {
			break
		}
		all = append(all, pg.Features...)
		log.Info("fetched page",
			zap.Int("page_features", len(pg.Features)),
			zap.Int("total_features", len(all)),
		)

		// A short page means the cursor ran off the end of the layer.
		if len(pg.Features) < c.opts.PageSize {
			break
		}
		startIndex += c.opts.PageSize
	}

	log.Info("layer complete", zap.Int("features", len(all)))
	return all
}

// fetchPage requests a single page, retrying per the client policy. A body
// that fails to decode counts as transient just like an HTTP failure.
func (c *Client) fetchPage(ctx context.Context, reqURL string) (*page, error) {
	pol := c.opts.Retry
	if pol.OnRetry == nil {
		pol.OnRetry = resilience.RetryLogger("wfs", "get_feature")
	}

	return resilience.DoVal(ctx, pol, func(ctx context.Context) (*page, error) {
		body, err := c.transport.Get(ctx, reqURL)
		if err != nil {
			return nil, err
		}
		var pg page
		if err := json.Unmarshal(body, &pg); err != nil {
			return nil, resilience.NewTransientError(eris.Wrap(err, "wfs: decode response"), 0)
		}
		return &pg, nil
	})
}

// matchedHint renders the first-page total count hint, whichever field and
// type the server used.
func matchedHint(pg *page) string {
	if pg.NumberMatched != nil {
		return fmt.Sprint(pg.NumberMatched)
	}
	if pg.TotalFeatures != nil {
		return fmt.Sprint(pg.TotalFeatures)
	}
	return "?"
}
