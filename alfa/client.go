// Package alfa talks to the NCBI Variation Services endpoints that serve the
// Allele Frequency Aggregator (ALFA) data: overlapping frequency records for a
// genomic interval, and the population metadata tree that names the
// biosamples those records are keyed by.
package alfa

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/carbocation/alfafreq/compileinfo"
	"github.com/carbocation/pfx"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the root of the NCBI Variation Services v0 API.
	DefaultBaseURL = "https://api.ncbi.nlm.nih.gov/variation/v0"

	// DefaultMaxPages bounds the number of requests one interval fetch may
	// issue.
	DefaultMaxPages = 1000

	// DefaultTimeout bounds the wall time of one interval fetch, across all of
	// its pages.
	DefaultTimeout = 5 * time.Minute

	// DefaultRequestsPerSecond keeps unauthenticated clients under NCBI's
	// published limit of 3 requests per second.
	DefaultRequestsPerSecond = 1.0
)

// Config controls a Client. The zero value of any field means "use the
// default".
type Config struct {
	BaseURL string

	// MaxPages is the largest number of pages FetchInterval will request
	// before giving up with ErrTooManyPages.
	MaxPages int

	// Timeout applies to an entire FetchInterval or Populations call. Use a
	// negative value to rely solely on the caller's context.
	Timeout time.Duration

	// RequestsPerSecond paces requests. Use a negative value to disable
	// pacing.
	RequestsPerSecond float64

	// HTTPClient is used for all requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// UserAgent is sent with every request. Defaults to the build info of the
	// running binary.
	UserAgent string

	// Verbose logs every request.
	Verbose bool
}

// DefaultConfig returns a Config pointing at the public NCBI service.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		MaxPages:          DefaultMaxPages,
		Timeout:           DefaultTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		HTTPClient:        http.DefaultClient,
		UserAgent:         compileinfo.Get().UserAgent(),
	}
}

// Client issues sequential requests against the ALFA endpoints. A Client is
// not safe for concurrent use.
type Client struct {
	config  Config
	limiter *rate.Limiter
}

// New fills in defaults for any unset field of config and returns a Client.
func New(config Config) *Client {
	def := DefaultConfig()

	if config.BaseURL == "" {
		config.BaseURL = def.BaseURL
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	if config.MaxPages <= 0 {
		config.MaxPages = def.MaxPages
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = def.RequestsPerSecond
	}
	if config.HTTPClient == nil {
		config.HTTPClient = def.HTTPClient
	}
	if config.UserAgent == "" {
		config.UserAgent = def.UserAgent
	}

	c := &Client{config: config}
	if config.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return c
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// withTimeout derives the per-call context.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.Timeout > 0 {
		return context.WithTimeout(ctx, c.config.Timeout)
	}

	return context.WithCancel(ctx)
}

// get performs one paced GET and returns the status code and the full body.
// Non-2xx responses are not treated as errors here; callers classify them.
func (c *Client) get(ctx context.Context, url string) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, pfx.Err(err)
		}
	}

	if c.config.Verbose {
		log.Printf("GET %s\n", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, pfx.Err(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, pfx.Err(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, pfx.Err(fmt.Errorf("%s: reading body: %w", url, err))
	}

	return resp.StatusCode, body, nil
}
