package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	apperrors "farm-manager/internal/errors"
)

// LiveQuote is a pre-decided price record from the live mandi feed. The
// feed forecasts server-side; no re-forecasting happens client-side.
type LiveQuote struct {
	Mandi     string  `json:"mandi"`
	Price     float64 `json:"price"`
	Predicted float64 `json:"predicted"`
	Decision  string  `json:"decision"`
}

// FetchResult is the explicit two-variant outcome of a live fetch:
// either Quote is set, or Err records why the feed was unavailable.
// The error is inspectable for logging but is never a caller failure;
// unavailability is handled by falling back to the dataset.
type FetchResult struct {
	Quote *LiveQuote
	Err   error
}

// Available returns true when the fetch yielded a usable quote.
func (r FetchResult) Available() bool {
	return r.Quote != nil
}

// LiveFeed fetches pre-decided prices from a live mandi feed.
//
// The feed endpoint is a design contract: no public provider serves this
// schema today, so the success shape is validated strictly and anything
// unexpected degrades to the fallback dataset.
type LiveFeed struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// LiveFeedOptions holds options for creating a live feed client.
type LiveFeedOptions struct {
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewLiveFeed creates a live mandi feed client with a hard request timeout.
func NewLiveFeed(opts LiveFeedOptions) *LiveFeed {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &LiveFeed{
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     opts.Logger.With().Str("component", "live_feed").Logger(),
	}
}

// Fetch attempts a single live price request for the commodity. A
// non-2xx status, timeout, malformed payload or missing field all yield
// an unavailable result; Fetch never fails the caller. No retries: the
// fallback dataset is always available.
func (f *LiveFeed) Fetch(ctx context.Context, crop string) FetchResult {
	if f == nil || f.baseURL == "" {
		return FetchResult{Err: apperrors.NewFeedError("", 0, "no live feed configured", nil)}
	}

	endpoint := fmt.Sprintf("%s?commodity=%s", f.baseURL, url.QueryEscape(crop))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return FetchResult{Err: apperrors.NewFeedError(f.baseURL, 0, "creating request", err)}
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Debug().Err(err).Dur("duration", time.Since(start)).Msg("Live feed request failed")
		return FetchResult{Err: apperrors.NewFeedError(f.baseURL, 0, "request failed", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FetchResult{Err: apperrors.NewFeedError(f.baseURL, resp.StatusCode, "non-success status", nil)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{Err: apperrors.NewFeedError(f.baseURL, 0, "reading response body", err)}
	}

	// Pointer fields distinguish absent keys from zero values; the feed
	// result is unusable unless every field is present.
	var payload struct {
		Mandi     *string  `json:"mandi"`
		Price     *float64 `json:"price"`
		Predicted *float64 `json:"predicted"`
		Decision  *string  `json:"decision"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return FetchResult{Err: apperrors.NewFeedError(f.baseURL, 0, "malformed payload", err)}
	}
	if payload.Mandi == nil || payload.Price == nil || payload.Predicted == nil || payload.Decision == nil {
		return FetchResult{Err: apperrors.NewFeedError(f.baseURL, 0, "incomplete payload", nil)}
	}

	f.logger.Debug().
		Str("mandi", *payload.Mandi).
		Dur("duration", time.Since(start)).
		Msg("Live feed quote received")

	return FetchResult{Quote: &LiveQuote{
		Mandi:     *payload.Mandi,
		Price:     *payload.Price,
		Predicted: *payload.Predicted,
		Decision:  *payload.Decision,
	}}
}
