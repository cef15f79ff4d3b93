package trends

import "errors"

var (
	// ErrMissingAPIKey is returned before any request is issued when no
	// credential is configured.
	ErrMissingAPIKey = errors.New("trends: api key not configured")

	// ErrInvalidGeoLevel is returned before any request is issued when the
	// geo level is not country, region or dma.
	ErrInvalidGeoLevel = errors.New("trends: invalid geo level")
)
