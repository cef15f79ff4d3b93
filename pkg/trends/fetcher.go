// Package trends fetches aggregated search-query volume timelines from a
// remote statistical API and reshapes them into dense date-by-term tables.
package trends

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"trends-go/pkg/dateparse"
	"trends-go/pkg/logger"
)

// MaxTermsPerRequest is the remote API's per-request term limit.
const MaxTermsPerRequest = 30

// Config holds the fetcher's remote endpoint settings.
type Config struct {
	Endpoint string
	APIKey   string
	// QPS paces requests to the remote service, which rate limits
	// aggressively. Defaults to 1 request per second.
	QPS     float64
	Timeout time.Duration
	// BatchSize caps terms per request. Defaults to MaxTermsPerRequest
	// and is clamped to it.
	BatchSize int
}

// FetchRequest describes one volumes fetch.
type FetchRequest struct {
	// Terms keep their order in the output columns; duplicates are
	// preserved positionally.
	Terms     []string
	StartDate string
	EndDate   string
	Geo       string
	GeoLevel  GeoLevel
	Frequency Frequency
}

// Fetcher produces dense term-by-date volume tables. It holds no state
// across fetches.
type Fetcher struct {
	cfg    Config
	client APIClient
	pace   *rate.Limiter
	log    *logger.Logger
}

// Option overrides fetcher internals.
type Option func(*Fetcher)

// WithClient substitutes the API client. Used by the server wiring and
// by tests.
func WithClient(c APIClient) Option {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher creates a fetcher for the configured endpoint.
func NewFetcher(cfg Config, opts ...Option) *Fetcher {
	if cfg.BatchSize <= 0 || cfg.BatchSize > MaxTermsPerRequest {
		cfg.BatchSize = MaxTermsPerRequest
	}
	if cfg.QPS <= 0 {
		cfg.QPS = 1
	}

	f := &Fetcher{
		cfg: cfg,
		// Burst 1 admits the first request immediately and paces the
		// rest, so no delay trails the final batch.
		pace: rate.NewLimiter(rate.Limit(cfg.QPS), 1),
		log:  logger.GetLogger().WithField("component", "volume_fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = NewHTTPClient(cfg.Endpoint, cfg.APIKey, cfg.Timeout)
	}
	return f
}

// FetchVolumes retrieves query volumes for req.Terms over the requested
// window and returns them as a dense table: header ["date"]+terms, one
// row per distinct date sorted ascending, zero for (term, date) pairs the
// remote service did not report. Terms are requested in batches of at
// most BatchSize; any failure aborts the whole fetch with no partial
// result.
func (f *Fetcher) FetchVolumes(ctx context.Context, req FetchRequest) (*Table, error) {
	if f.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if !req.GeoLevel.Valid() {
		return nil, fmt.Errorf("%w: %q must be one of country, region or dma", ErrInvalidGeoLevel, req.GeoLevel)
	}

	merged := make(map[termDate]float64)

	for start := 0; start < len(req.Terms); start += f.cfg.BatchSize {
		end := start + f.cfg.BatchSize
		if end > len(req.Terms) {
			end = len(req.Terms)
		}
		batch := req.Terms[start:end]

		if err := f.pace.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := f.client.GetTimelines(ctx, TimelinesRequest{
			Terms:      batch,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Resolution: string(req.Frequency),
			Geo:        req.Geo,
			GeoLevel:   req.GeoLevel,
		})
		if err != nil {
			return nil, err
		}

		for _, line := range resp.Lines {
			for _, point := range line.Points {
				date, err := dateparse.ToISO(point.Date)
				if err != nil {
					return nil, err
				}
				merged[termDate{term: line.Term, date: date}] = point.Value
			}
		}

		f.log.WithFields(map[string]interface{}{
			"batch_terms":  len(batch),
			"merged_total": len(merged),
		}).Debug("Merged batch results")
	}

	return buildTable(req.Terms, merged), nil
}
