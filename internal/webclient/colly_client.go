package webclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/raysh454/a11ylens/internal/logging"
)

// CollyClient fetches pages with a gocolly collector. Each request gets a
// fresh collector so visited-URL bookkeeping never leaks between runs.
type CollyClient struct {
	timeout   time.Duration
	userAgent string
	logger    logging.Logger
}

func NewCollyClient(cfg Config, logger logging.Logger) (*CollyClient, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	l := logger.With(logging.Field{Key: "backend", Value: "colly"})
	l.Debug("created colly webclient")
	return &CollyClient{
		timeout:   cfg.timeout(),
		userAgent: cfg.userAgent(),
		logger:    l,
	}, nil
}

func (cc *CollyClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if m := strings.ToUpper(req.Method); m != "" && m != http.MethodGet {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, m)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(cc.userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(cc.timeout)
	// Deliver 4xx/5xx pages to OnResponse; the fetcher decides what a bad status means.
	c.ParseHTTPErrorResponse = true

	var captured *colly.Response
	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		for k, vs := range req.Headers {
			for _, v := range vs {
				r.Headers.Add(k, v)
			}
		}
	})
	c.OnResponse(func(r *colly.Response) {
		captured = r
	})

	cc.logger.Debug("visiting", logging.Field{Key: "url", Value: req.URL})
	visitErr := c.Visit(req.URL)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if captured == nil {
		if visitErr == nil {
			visitErr = fmt.Errorf("no response")
		}
		cc.logger.Warn("colly visit failed",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: visitErr.Error()})
		return nil, fmt.Errorf("colly visit: %w", visitErr)
	}

	headers := http.Header{}
	if captured.Headers != nil {
		headers = captured.Headers.Clone()
	}
	finalURL := ""
	if captured.Request != nil && captured.Request.URL != nil {
		finalURL = captured.Request.URL.String()
	}

	return &Response{
		Request:    req,
		Headers:    headers,
		Body:       captured.Body,
		StatusCode: captured.StatusCode,
		FinalURL:   finalURL,
		FetchedAt:  time.Now(),
		Backend:    string(ClientColly),
	}, nil
}

func (cc *CollyClient) Get(ctx context.Context, url string) (*Response, error) {
	return cc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (cc *CollyClient) Close() error { return nil }
