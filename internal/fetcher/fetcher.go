package fetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/utils"
	"github.com/raysh454/a11ylens/internal/webclient"
)

var (
	ErrNilWebClient     = errors.New("fetcher: webclient is nil")
	ErrUnexpectedStatus = errors.New("fetcher: unexpected status")
)

// Module: fetcher
// Normalizes a target URL and retrieves its HTML through a WebClient.
type Fetcher struct {
	cfg    Config
	wc     webclient.WebClient
	logger logging.Logger
}

// New creates a new Fetcher with the given webclient and logger.
func New(cfg Config, wc webclient.WebClient, logger logging.Logger) (*Fetcher, error) {
	if wc == nil {
		return nil, ErrNilWebClient
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Fetcher{
		cfg:    cfg,
		wc:     wc,
		logger: logger.With(logging.Field{Key: "component", Value: "fetcher"}),
	}, nil
}

// Fetch normalizes rawURL and GETs it. Only a backend error fails the fetch,
// unless RejectNon2xx is set.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*webclient.Response, error) {
	target, err := utils.NormalizeTarget(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	return f.HTTPGet(ctx, target)
}

// HTTPGet fetches page as given, without normalization.
func (f *Fetcher) HTTPGet(ctx context.Context, page string) (*webclient.Response, error) {
	f.logger.Debug("fetching page", logging.Field{Key: "url", Value: page})

	resp, err := f.wc.Get(ctx, page)
	if err != nil {
		f.logger.Error("error while fetching page",
			logging.Field{Key: "url", Value: page},
			logging.Field{Key: "error", Value: err})
		return nil, fmt.Errorf("error GETting %s: %w", page, err)
	}

	if f.cfg.RejectNon2xx && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		f.logger.Warn("page returned unexpected status",
			logging.Field{Key: "url", Value: page},
			logging.Field{Key: "status", Value: resp.StatusCode})
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, page)
	}

	f.logger.Info("fetched page",
		logging.Field{Key: "url", Value: resp.URL()},
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "size_bytes", Value: len(resp.Body)})
	return resp, nil
}

// Close releases the underlying webclient.
func (f *Fetcher) Close() error {
	return f.wc.Close()
}
