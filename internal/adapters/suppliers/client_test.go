package suppliers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_catalog/internal/adapters/suppliers"
	"hotel_catalog/internal/domain"
)

func TestHTTPFetcher_FetchRaw(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "iJhz", "destination": 5432}, {"id": "f8c9"}]`))
	}))
	defer ts.Close()

	f := suppliers.NewHTTPFetcher(2*time.Second, 100, 0)
	got, err := f.FetchRaw(context.Background(), ts.URL)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "iJhz", got[0]["id"])
	assert.Equal(t, 5432.0, got[0]["destination"])
}

func TestHTTPFetcher_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer ts.Close()

	f := suppliers.NewHTTPFetcher(5*time.Second, 100, 3)
	got, err := f.FetchRaw(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestHTTPFetcher_NoRetryByDefault(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(503)
	}))
	defer ts.Close()

	_, err := suppliers.NewHTTPFetcher(time.Second, 100, 0).FetchRaw(context.Background(), ts.URL)
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 503, te.StatusCode)
	assert.Equal(t, ts.URL, te.Source)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestHTTPFetcher_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := suppliers.NewHTTPFetcher(time.Second, 100, 2).FetchRaw(context.Background(), ts.URL)
	assert.ErrorIs(t, err, domain.ErrTransport)
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 404, te.StatusCode)
}

func TestHTTPFetcher_MalformedPayload(t *testing.T) {
	for _, body := range []string{`{"id": "a"}`, `null`, ``, `[{"id": `} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		_, err := suppliers.NewHTTPFetcher(time.Second, 100, 0).FetchRaw(context.Background(), ts.URL)
		ts.Close()
		assert.ErrorIs(t, err, domain.ErrTransport, "body %q", body)
	}
}

func TestHTTPFetcher_TimeoutIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	_, err := suppliers.NewHTTPFetcher(50*time.Millisecond, 100, 0).FetchRaw(context.Background(), ts.URL)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := suppliers.NewHTTPFetcher(time.Second, 100, 0).FetchRaw(context.Background(), url)
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.StatusCode)
}
