// Package guidelines looks up reference accessibility guidelines by scraping
// the WCAG quick reference page.
package guidelines

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/model"
	"github.com/raysh454/a11ylens/internal/utils"
	"github.com/raysh454/a11ylens/internal/webclient"
)

var (
	ErrNilWebClient       = errors.New("guidelines: webclient is nil")
	ErrUnexpectedStatus   = errors.New("guidelines: unexpected status")
	ErrMalformedGuideline = errors.New("guidelines: malformed guideline entry")
)

// Lookuper is implemented by anything that can produce reference guidelines.
type Lookuper interface {
	Lookup(ctx context.Context) ([]model.Guideline, error)
}

// Source scrapes guidelines from a reference page.
type Source struct {
	cfg    Config
	wc     webclient.WebClient
	logger logging.Logger
}

// NewSource builds a Source. Zero-valued config fields take their defaults.
func NewSource(cfg Config, wc webclient.WebClient, logger logging.Logger) (*Source, error) {
	if wc == nil {
		return nil, ErrNilWebClient
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Source{
		cfg:    cfg.withDefaults(),
		wc:     wc,
		logger: logger.With(logging.Field{Key: "component", Value: "guidelines"}),
	}, nil
}

// Config returns the effective configuration.
func (s *Source) Config() Config {
	return s.cfg
}

// Lookup fetches the reference page and returns up to Limit guidelines in
// page order, with links resolved against the page URL. A matching entry
// without a title or link fails the whole lookup.
func (s *Source) Lookup(ctx context.Context) ([]model.Guideline, error) {
	s.logger.Debug("fetching guideline page", logging.Field{Key: "url", Value: s.cfg.URL})

	resp, err := s.wc.Get(ctx, s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch guidelines: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, s.cfg.URL)
	}

	base := resp.URL()
	if base == "" {
		base = s.cfg.URL
	}
	out, err := Parse(resp.Body, base, s.cfg)
	if err != nil {
		s.logger.Warn("guideline page could not be parsed",
			logging.Field{Key: "url", Value: base},
			logging.Field{Key: "error", Value: err})
		return nil, err
	}

	s.logger.Info("guidelines loaded", logging.Field{Key: "count", Value: len(out)})
	return out, nil
}

// Parse extracts guidelines from a reference page body. Entries past
// cfg.Limit are not inspected, so a malformed one there does not fail.
func Parse(body []byte, baseURL string, cfg Config) ([]model.Guideline, error) {
	cfg = cfg.withDefaults()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse guideline page: %w", err)
	}

	var (
		out      []model.Guideline
		parseErr error
	)
	doc.Find(cfg.Selector).EachWithBreak(func(i int, g *goquery.Selection) bool {
		if len(out) >= cfg.Limit {
			return false
		}

		title := g.Find(cfg.TitleSelector).First()
		if title.Length() == 0 {
			parseErr = fmt.Errorf("%w: entry %d has no %s", ErrMalformedGuideline, i, cfg.TitleSelector)
			return false
		}
		href, ok := g.Find("a").First().Attr("href")
		if !ok {
			parseErr = fmt.Errorf("%w: entry %d has no link", ErrMalformedGuideline, i)
			return false
		}
		link, err := utils.ResolveReference(baseURL, href)
		if err != nil {
			parseErr = fmt.Errorf("%w: entry %d: %v", ErrMalformedGuideline, i, err)
			return false
		}

		out = append(out, model.Guideline{
			Title: strings.TrimSpace(title.Text()),
			Link:  link,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}
