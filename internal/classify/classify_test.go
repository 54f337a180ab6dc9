package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cmsdko/lingua/internal/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelServer(t *testing.T, label string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req labelReq
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"label": label, "path": r.URL.Path})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestLabel checks the request shape, pad stripping and caching.
func TestLabel(t *testing.T) {
	var calls atomic.Int64
	srv := labelServer(t, "<pad> joy", &calls)

	c := New(Emotion, Options{URL: srv.URL + "/", CacheSize: 4})
	v, err := c.Label(context.Background(), "the boy is happy")
	require.NoError(t, err)
	assert.Equal(t, metric.Text("joy"), v)

	v, err = c.Label(context.Background(), "the boy is happy")
	require.NoError(t, err)
	assert.Equal(t, metric.Text("joy"), v)
	assert.EqualValues(t, 1, calls.Load())

	hits, misses := c.Cache().Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 1, misses)
}

func TestLabelPath(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"label":"POSITIVE"}`))
	}))
	defer srv.Close()

	v, err := New(Sentiment, Options{URL: srv.URL}).Label(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "/sentiment", path)
	assert.Equal(t, "POSITIVE", v.String())
}

// TestLabelErrors covers service failures and unusable responses.
func TestLabelErrors(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"Server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}},
		{"Malformed JSON", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"label":`))
		}},
		{"Empty label", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"label":"<pad>"}`))
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			_, err := New(Emotion, Options{URL: srv.URL}).Label(context.Background(), "x")
			assert.ErrorIs(t, err, ErrClassifier)
		})
	}
}

func TestDisabled(t *testing.T) {
	c := New(Sentiment, Options{})
	assert.False(t, c.Enabled())
	v, err := c.Label(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, metric.KindNotApplicable, v.Kind())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	v, err = nilClient.Label(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, metric.KindNotApplicable, v.Kind())
}

// TestCacheEviction checks FIFO eviction and concurrent access.
func TestCacheEviction(t *testing.T) {
	c := NewCache(2)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "3")
	c.Set("c", "4")

	_, ok := c.Get("a")
	assert.False(t, ok)
	label, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, "4", label)
	assert.Equal(t, 2, c.Len())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			c.Set(key, key)
			c.Get(key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 2, c.Len())

	var nilCache *Cache
	nilCache.Set("x", "y")
	_, ok = nilCache.Get("x")
	assert.False(t, ok)
	assert.Zero(t, nilCache.Len())
}
