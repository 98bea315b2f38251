// internal/adapters/suppliers/client.go
package suppliers

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_catalog/internal/adapters/observability"
	"hotel_catalog/internal/domain"
)

// HTTPFetcher is the fetch collaborator: GET a source URL and decode its JSON array.
type HTTPFetcher struct {
	hc      *http.Client
	rl      *rate.Limiter
	timeout time.Duration
	retries int
}

// NewHTTPFetcher builds a fetcher with a per-source timeout, a client-side request rate
// and a number of extra attempts on 429/5xx (0 disables retrying).
func NewHTTPFetcher(timeout time.Duration, rps, retries int) *HTTPFetcher {
	if rps <= 0 {
		rps = 5
	}
	if retries < 0 {
		retries = 0
	}
	return &HTTPFetcher{
		hc:      &http.Client{},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		timeout: timeout,
		retries: retries,
	}
}

// FetchRaw implements domain.RawFetcher. Every failure is a *domain.TransportError;
// a timeout counts as a failure like any other.
func (f *HTTPFetcher) FetchRaw(ctx context.Context, source string) ([]domain.RawRecord, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	body, status, err := f.get(ctx, source)
	if err != nil {
		return nil, &domain.TransportError{Source: source, StatusCode: status, Err: err}
	}
	out, err := decodeArray(body)
	if err != nil {
		return nil, &domain.TransportError{Source: source, StatusCode: status, Err: err}
	}
	return out, nil
}

// decodeArray insists on a top-level JSON array; null or an object is malformed for a supplier.
func decodeArray(body []byte) ([]domain.RawRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("payload is not a JSON array")
	}
	var out []domain.RawRecord
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}

// get performs a GET with client-side rate limiting and optional retries, returning the body
// of the first 2xx response. The returned status is the last one seen (0 if none).
func (f *HTTPFetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	if err := f.rl.Wait(ctx); err != nil {
		return nil, 0, err
	}

	var lastErr error
	lastStatus := 0
	for i := 0; i <= f.retries; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, 0, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-catalog/1.0")

		start := time.Now()
		resp, err := f.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("supplier", url, 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
			lastErr = err
			if i < f.retries && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
			return nil, 0, lastErr
		}
		lastStatus = resp.StatusCode

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			b, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			observability.ObserveExternal("supplier", url, resp.StatusCode, time.Since(start))
			if err != nil {
				return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
			}
			return b, resp.StatusCode, nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			wait := retryAfter(resp)
			resp.Body.Close()
			observability.ObserveExternal("supplier", url, resp.StatusCode, time.Since(start))
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < f.retries && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, lastStatus, ctx.Err()
			}
			return nil, lastStatus, lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			observability.ObserveExternal("supplier", url, resp.StatusCode, time.Since(start))
			return nil, resp.StatusCode, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return nil, lastStatus, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns 200ms, 400ms, 800ms... plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
