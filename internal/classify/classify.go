// Package classify labels whole transcripts with external sentiment and
// emotion models served over HTTP.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cmsdko/lingua/internal/metric"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// ErrClassifier wraps every failure of a classifier service.
var ErrClassifier = errors.New("classifier failed")

// Kind selects the classifier endpoint.
type Kind string

const (
	Sentiment Kind = "sentiment"
	Emotion   Kind = "emotion"
)

const defaultTimeout = time.Minute

// Options configures a Client.
type Options struct {
	// URL is the base address of the service. An empty URL disables the
	// classifier: every label is then NotApplicable.
	URL     string
	Timeout time.Duration
	// RatePerSecond throttles outgoing requests. Zero or less disables throttling.
	RatePerSecond float64
	Burst         int
	// CacheSize bounds the label cache. Zero disables caching.
	CacheSize  int
	HTTPClient *http.Client
}

// Client labels texts through POST {URL}/{kind}.
type Client struct {
	kind    Kind
	c       *http.Client
	url     string
	limiter *rate.Limiter
	cache   *Cache
	tracer  trace.Tracer
}

type labelReq struct {
	Text string `json:"text"`
}

type labelResp struct {
	Label string `json:"label"`
}

func New(kind Kind, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: time.Minute,
				}).DialContext,
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     time.Minute,
			},
			Timeout: timeout,
		}
	}
	limit, burst := rate.Inf, opts.Burst
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	var cache *Cache
	if opts.CacheSize > 0 {
		cache = NewCache(opts.CacheSize)
	}
	return &Client{
		kind:    kind,
		c:       hc,
		url:     strings.TrimRight(opts.URL, "/"),
		limiter: rate.NewLimiter(limit, burst),
		cache:   cache,
		tracer:  otel.Tracer("lingua-classify"),
	}
}

// Enabled reports whether c calls a service.
func (c *Client) Enabled() bool { return c != nil && c.url != "" }

// Kind returns the classifier kind.
func (c *Client) Kind() Kind { return c.kind }

// Cache returns the label cache, nil when caching is off.
func (c *Client) Cache() *Cache { return c.cache }

// Label classifies text. A disabled client yields NotApplicable without a
// request.
func (c *Client) Label(ctx context.Context, text string) (metric.Value, error) {
	if !c.Enabled() {
		return metric.NotApplicable(), nil
	}
	if label, ok := c.cache.Get(text); ok {
		return metric.Text(label), nil
	}

	ctx, span := c.tracer.Start(ctx, "classify."+string(c.kind))
	defer span.End()
	span.SetAttributes(attribute.Int("classify.text_bytes", len(text)))

	label, err := c.label(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return metric.Value{}, err
	}
	span.SetAttributes(attribute.String("classify.label", label))
	c.cache.Set(text, label)
	return metric.Text(label), nil
}

func (c *Client) label(ctx context.Context, text string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %s wait: %v", ErrClassifier, c.kind, err)
	}

	b, err := json.Marshal(labelReq{Text: text})
	if err != nil {
		return "", fmt.Errorf("%s marshal: %w", c.kind, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/"+string(c.kind), bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.c.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrClassifier, c.kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxErr = 4096
		lb := io.LimitReader(resp.Body, maxErr)
		body, _ := io.ReadAll(lb)
		return "", fmt.Errorf("%w: %s %s: %s", ErrClassifier, c.kind, resp.Status, strings.TrimSpace(string(body)))
	}

	var out labelResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %s decode: %v", ErrClassifier, c.kind, err)
	}
	// Seq2seq emotion models pad their single-token output.
	label := strings.TrimSpace(strings.ReplaceAll(out.Label, "<pad>", ""))
	if label == "" {
		return "", fmt.Errorf("%w: %s returned an empty label", ErrClassifier, c.kind)
	}
	return label, nil
}
