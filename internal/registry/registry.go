// Package registry fetches trial eligibility criteria from the public
// clinical-trials registry API, rate limited to stay a polite client.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/juju/ratelimit"

	"github.com/mbellard/trialpack/internal/dataset"
)

var (
	ErrNoStudy          = errors.New("registry: no study in response")
	ErrUnexpectedStatus = errors.New("registry: unexpected response status")
)

// DefaultBaseURL is the registry's query endpoint.
const DefaultBaseURL = "https://clinicaltrials.gov/api/query"

// DefaultDelay spaces successive requests.
const DefaultDelay = 500 * time.Millisecond

// Client queries the registry with one token-bucket slot per request.
type Client struct {
	baseURL string
	httpc   *http.Client
	bucket  *ratelimit.Bucket
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, mainly for
// tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithDelay sets the minimum spacing between requests.
func WithDelay(delay time.Duration) Option {
	return func(c *Client) { c.bucket = ratelimit.NewBucket(delay, 1) }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient builds a Client with the public endpoint and default pacing.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		bucket:  ratelimit.NewBucket(DefaultDelay, 1),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fullStudiesResponse mirrors the nested registry payload down to the
// eligibility criteria field.
type fullStudiesResponse struct {
	FullStudiesResponse struct {
		FullStudies []struct {
			Study struct {
				ProtocolSection struct {
					EligibilityModule struct {
						EligibilityCriteria string `json:"EligibilityCriteria"`
					} `json:"EligibilityModule"`
				} `json:"ProtocolSection"`
			} `json:"Study"`
		} `json:"FullStudies"`
	} `json:"FullStudiesResponse"`
}

// Eligibility fetches the eligibility criteria text for one trial. The
// call waits for a rate-limit slot first and honors context cancellation
// while waiting.
func (c *Client) Eligibility(ctx context.Context, nctID string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/full_studies?expr=%s&min_rnk=1&max_rnk=1&fmt=json",
		c.baseURL, url.QueryEscape(nctID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", nctID, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", nctID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: %s for %s", ErrUnexpectedStatus, resp.Status, nctID)
	}

	var payload fullStudiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding response for %s: %w", nctID, err)
	}
	studies := payload.FullStudiesResponse.FullStudies
	if len(studies) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoStudy, nctID)
	}
	return studies[0].Study.ProtocolSection.EligibilityModule.EligibilityCriteria, nil
}

// Fill fetches eligibility criteria for up to limit records, in order,
// and stores the text on the records in place. Failures are logged and
// leave the record's eligibility empty; the first context error aborts.
func (c *Client) Fill(ctx context.Context, records []dataset.Record, limit int) error {
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}
	for i := 0; i < limit; i++ {
		text, err := c.Eligibility(ctx, records[i].NCTID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Warn("eligibility fetch failed", "nct_id", records[i].NCTID, "error", err)
			continue
		}
		records[i].Eligibility = text
	}
	return nil
}

// wait blocks until the rate limiter releases a slot or the context is
// done.
func (c *Client) wait(ctx context.Context) error {
	delay := c.bucket.Take(1)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
