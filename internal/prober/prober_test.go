package prober

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/InQaaaaGit/fanout.git/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestProber создает Prober с быстрыми повторами для тестов
func newTestProber(t *testing.T, cfg *config.Config) *Prober {
	t.Helper()

	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 10 * time.Millisecond
	}
	if cfg.BodyPreviewLimit == 0 {
		cfg.BodyPreviewLimit = 500
	}

	p, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	return p
}

func TestProbeAllResultsInInputOrder(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "hello")
	}))
	defer okServer.Close()

	notFoundServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer notFoundServer.Close()

	// Закрытый сервер дает транспортную ошибку
	deadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := deadServer.URL
	deadServer.Close()

	p := newTestProber(t, &config.Config{MaxRetries: 0})

	urls := []string{okServer.URL, notFoundServer.URL, deadURL}
	results := p.ProbeAll(context.Background(), urls)

	require.Len(t, results, 3)

	assert.Equal(t, okServer.URL, results[0].URL)
	assert.Equal(t, http.StatusOK, results[0].StatusCode)
	assert.Equal(t, "hello", results[0].Preview)
	assert.Empty(t, results[0].Error)
	assert.True(t, results[0].OK())

	assert.Equal(t, notFoundServer.URL, results[1].URL)
	assert.Equal(t, http.StatusNotFound, results[1].StatusCode)
	assert.Empty(t, results[1].Error)
	assert.False(t, results[1].OK())

	assert.Equal(t, deadURL, results[2].URL)
	assert.Zero(t, results[2].StatusCode)
	assert.NotEmpty(t, results[2].Error)
}

func TestProbeAllEmptyList(t *testing.T) {
	p := newTestProber(t, &config.Config{})

	results := p.ProbeAll(context.Background(), nil)
	assert.Empty(t, results)

	results = p.ProbeAll(context.Background(), []string{})
	assert.Empty(t, results)
}

func TestProbeAllInvalidURLs(t *testing.T) {
	p := newTestProber(t, &config.Config{})

	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"Not a URL", "not-a-url", ErrInvalidURL.Error()},
		{"Unsupported scheme", "ftp://example.com/file", ErrUnsupportedScheme.Error()},
		{"Missing host", "http://", ErrInvalidURL.Error()},
		{"Empty string", "", ErrInvalidURL.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := p.ProbeAll(context.Background(), []string{tt.url})
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantErr, results[0].Error)
			assert.Zero(t, results[0].StatusCode)
			assert.Zero(t, results[0].Attempts)
		})
	}
}

func TestProbeRetriesOn5xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			http.Error(w, "temporary failure", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "recovered")
	}))
	defer server.Close()

	p := newTestProber(t, &config.Config{MaxRetries: 2})

	results := p.ProbeAll(context.Background(), []string{server.URL})
	require.Len(t, results, 1)

	assert.Equal(t, http.StatusOK, results[0].StatusCode)
	assert.Equal(t, 3, results[0].Attempts)
	assert.Equal(t, "recovered", results[0].Preview)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestProbeDoesNotRetryOn4xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	p := newTestProber(t, &config.Config{MaxRetries: 2})

	results := p.ProbeAll(context.Background(), []string{server.URL})
	require.Len(t, results, 1)

	assert.Equal(t, http.StatusGone, results[0].StatusCode)
	assert.Equal(t, 1, results[0].Attempts)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestProbeRetriesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "always down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := newTestProber(t, &config.Config{MaxRetries: 1})

	results := p.ProbeAll(context.Background(), []string{server.URL})
	require.Len(t, results, 1)

	assert.Equal(t, http.StatusServiceUnavailable, results[0].StatusCode)
	assert.Equal(t, 2, results[0].Attempts)
	assert.Empty(t, results[0].Error)
}

func TestProbePreviewTruncation(t *testing.T) {
	longBody := strings.Repeat("x", 600)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, longBody)
	}))
	defer server.Close()

	p := newTestProber(t, &config.Config{BodyPreviewLimit: 100})

	results := p.ProbeAll(context.Background(), []string{server.URL})
	require.Len(t, results, 1)

	assert.Equal(t, strings.Repeat("x", 100)+"...", results[0].Preview)
}

func TestProbeFinalURLAfterRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "landed")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	p := newTestProber(t, &config.Config{})

	results := p.ProbeAll(context.Background(), []string{server.URL + "/start"})
	require.Len(t, results, 1)

	assert.Equal(t, http.StatusOK, results[0].StatusCode)
	assert.Equal(t, server.URL+"/final", results[0].FinalURL)
	assert.Equal(t, "landed", results[0].Preview)
}

func TestProbeManyEndpointsConcurrently(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.URL.Path)
	}))
	defer server.Close()

	p := newTestProber(t, &config.Config{MaxConcurrency: 4})

	const n = 20
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("%s/endpoint/%d", server.URL, i)
	}

	results := p.ProbeAll(context.Background(), urls)
	require.Len(t, results, n)

	// Порядок результатов совпадает с порядком входного списка
	for i, r := range results {
		assert.Equal(t, urls[i], r.URL)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.Equal(t, fmt.Sprintf("/endpoint/%d", i), r.Preview)
	}
}

func TestProbeContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	defer server.Close()

	p := newTestProber(t, &config.Config{MaxRetries: 0})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	results := p.ProbeAll(ctx, []string{server.URL})
	elapsed := time.Since(start)

	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Error)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestCheckReady(t *testing.T) {
	p := newTestProber(t, &config.Config{})
	assert.NoError(t, p.CheckReady(context.Background()))

	var empty Prober
	assert.ErrorIs(t, empty.CheckReady(context.Background()), ErrNotReady)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.CheckReady(ctx))
}

func TestValidateTarget(t *testing.T) {
	host, err := validateTarget("https://example.com:8443/path")
	require.NoError(t, err)
	assert.Equal(t, "example.com:8443", host)

	_, err = validateTarget("://bad")
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = validateTarget("ftp://example.com")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}
