// Package remote annotates transcripts through an HTTP service that wraps a
// spaCy-style pipeline.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/nlp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const defaultTimeout = 2 * time.Minute

// Options configures a Client.
type Options struct {
	// URL is the base address of the annotation service, without a trailing slash.
	URL  string
	Tier lang.Tier
	// Timeout bounds a single request. Zero uses two minutes.
	Timeout time.Duration
	// RatePerSecond throttles outgoing requests. Zero or less disables throttling.
	RatePerSecond float64
	Burst         int
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client is an nlp.Provider backed by POST {URL}/annotate.
type Client struct {
	c       *http.Client
	url     string
	tier    lang.Tier
	limiter *rate.Limiter
	tracer  trace.Tracer
}

type annotateReq struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

func New(opts Options) *Client {
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
				MaxIdleConns:        64,
				MaxIdleConnsPerHost: 16,
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
	tier := opts.Tier
	if tier == "" {
		tier = lang.TierSmall
	}
	return &Client{
		c:       hc,
		url:     strings.TrimRight(opts.URL, "/"),
		tier:    tier,
		limiter: rate.NewLimiter(limit, burst),
		tracer:  otel.Tracer("lingua-nlp-remote"),
	}
}

// Annotate sends text to the service with the model chosen for l and the
// configured tier.
func (c *Client) Annotate(ctx context.Context, text string, l lang.Language) (*nlp.Doc, error) {
	model, err := lang.ModelName(l, c.tier)
	if err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "nlp_remote.annotate")
	defer span.End()
	span.SetAttributes(
		attribute.String("nlp.model", model),
		attribute.Int("nlp.text_bytes", len(text)),
	)

	doc, err := c.annotate(ctx, text, model)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("nlp.tokens", len(doc.Tokens)),
		attribute.Int("nlp.sentences", len(doc.Sentences)),
	)
	return doc, nil
}

func (c *Client) annotate(ctx context.Context, text, model string) (*nlp.Doc, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: annotate wait: %v", nlp.ErrProvider, err)
	}

	payload, err := json.Marshal(annotateReq{Text: text, Model: model})
	if err != nil {
		return nil, fmt.Errorf("annotate marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/annotate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: annotate: %v", nlp.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxErr = 4096
		lb := io.LimitReader(resp.Body, maxErr)
		b, _ := io.ReadAll(lb)
		return nil, fmt.Errorf("%w: annotate %s: %s", nlp.ErrProvider, resp.Status, strings.TrimSpace(string(b)))
	}

	var out nlp.Doc
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: annotate decode: %v", nlp.ErrProvider, err)
	}
	if out.Model == "" {
		out.Model = model
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
