// Package fetch is the single JSON-over-HTTP retrieval helper shared by the
// upstream feed clients. One attempt per call: scheduling is external and a
// failed run simply retries on the next invocation, so there is no retry or
// backoff here.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const userAgent = "aurorawatch/1.0 (+https://services.swpc.noaa.gov)"

// Error reports a failed feed retrieval: network error, non-2xx status, or
// undecodable body. Callers decide whether the failure is run-fatal.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// JSON performs a single GET against url and decodes the body into an
// untyped JSON value. The caller owns shape interpretation; feeds disagree
// about theirs.
func JSON(ctx context.Context, client *http.Client, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json,text/plain,*/*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{URL: url, Status: resp.StatusCode}
	}

	var v any
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("decode body: %w", err)}
	}
	return v, nil
}

// Decode performs a single GET against url and decodes the body into out.
// For feeds whose shape is a fixed contract rather than a guessing game.
func Decode(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json,text/plain,*/*")

	resp, err := client.Do(req)
	if err != nil {
		return &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{URL: url, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{URL: url, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
