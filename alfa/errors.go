package alfa

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

var (
	// ErrTooManyPages is returned when the server keeps answering 206 past
	// Config.MaxPages requests.
	ErrTooManyPages = errors.New("alfa: page limit reached before the server signaled completion")

	// ErrNoProgress is returned when a partial page would not move the start
	// of the next request forward, which would otherwise repeat the same
	// request forever.
	ErrNoProgress = errors.New("alfa: partial page did not advance the interval start")
)

const maxErrorBody = 512

// StatusError reports a response whose status code was neither 200 nor, for
// interval requests, 206. The body is kept verbatim.
type StatusError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = append(body[:cut:cut], "..."...)
	}

	return fmt.Sprintf("alfa: %s returned %d %s: %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode), string(body))
}
