package alfa

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/carbocation/alfafreq"
	"github.com/carbocation/pfx"
)

type intervalPage struct {
	Results alfafreq.Dataset `json:"results"`
}

// IntervalURL builds the overlapping_frequency_records URL for the half-open
// window [start, start+length) on seqID.
func (c *Client) IntervalURL(seqID string, start, length int) string {
	return fmt.Sprintf("%s/interval/%s:%d:%d/overlapping_frequency_records", c.config.BaseURL, seqID, start, length)
}

// FetchInterval downloads every frequency record overlapping [start, stop] on
// seqID. The server may answer with 206 Partial Content, in which case the
// next request starts at the largest position seen on that page; the loop
// ends when a page comes back 200. Any other status aborts the fetch with a
// *StatusError. The number of pages is bounded by Config.MaxPages and the
// total time by Config.Timeout.
func (c *Client) FetchInterval(ctx context.Context, seqID string, start, stop int) (alfafreq.Dataset, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	out := make(alfafreq.Dataset)

	for page := 0; ; page++ {
		if page >= c.config.MaxPages {
			return out, ErrTooManyPages
		}

		length := stop - start + 1
		if length < 1 {
			length = 1
		}

		url := c.IntervalURL(seqID, start, length)
		status, body, err := c.get(ctx, url)
		if err != nil {
			return out, err
		}

		if status != http.StatusOK && status != http.StatusPartialContent {
			return out, &StatusError{URL: url, StatusCode: status, Body: body}
		}

		var parsed intervalPage
		if err := json.Unmarshal(body, &parsed); err != nil {
			return out, pfx.Err(fmt.Errorf("%s: %w", url, err))
		}
		out.Merge(parsed.Results)

		if c.config.Verbose {
			log.Printf("Page %d of %s:%d-%d returned %d records with status %d (%d total)\n", page+1, seqID, start, stop, len(parsed.Results), status, len(out))
		}

		if status == http.StatusOK {
			return out, nil
		}

		next, ok, err := parsed.Results.MaxPosition()
		if err != nil {
			return out, pfx.Err(err)
		}
		if !ok || next <= start {
			return out, ErrNoProgress
		}
		start = next
	}
}
