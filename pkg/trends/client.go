package trends

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"trends-go/pkg/logger"
)

// APIClient issues timeline queries against the remote volumes service.
type APIClient interface {
	GetTimelines(ctx context.Context, req TimelinesRequest) (*TimelinesResponse, error)
}

type httpAPIClient struct {
	endpoint string
	apiKey   string
	client   *fasthttp.Client
	timeout  time.Duration
	log      *logger.Logger
}

// NewHTTPClient creates a fasthttp-backed timelines client.
func NewHTTPClient(endpoint, apiKey string, timeout time.Duration) APIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &httpAPIClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		timeout: timeout,
		log:     logger.GetLogger().WithField("component", "trends_client"),
	}
}

func (c *httpAPIClient) GetTimelines(ctx context.Context, tr TimelinesRequest) (*TimelinesResponse, error) {
	// fasthttp has no request context; honor cancellation up front like
	// the rest of the call sites do.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("User-Agent", "trends-go/1.0")
	req.Header.Set("Accept", "application/json")

	args := req.URI().QueryArgs()
	for _, term := range tr.Terms {
		args.Add("terms", term)
	}
	args.Set("time_startDate", tr.StartDate)
	args.Set("time_endDate", tr.EndDate)
	args.Set("timelineResolution", tr.Resolution)
	if param := geoRestrictionParam(tr.GeoLevel); param != "" {
		args.Set(param, tr.Geo)
	}
	if c.apiKey != "" {
		args.Set("key", c.apiKey)
	}

	c.log.WithField("terms_count", len(tr.Terms)).Debug("Requesting timelines batch")

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("timelines request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("timelines API returned status %d: %s", resp.StatusCode(), resp.Body())
	}

	return ParseTimelinesResponse(resp.Body())
}
