package webclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raysh454/a11ylens/internal/logging"
)

// FirecrawlClient fetches pages through the Firecrawl scrape API, which
// renders the page remotely and returns its HTML.
type FirecrawlClient struct {
	http    *NetHTTPClient
	apiKey  string
	baseURL string
	logger  logging.Logger
}

type firecrawlScrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type firecrawlScrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		HTML     string `json:"html"`
		Metadata struct {
			StatusCode int    `json:"statusCode"`
			SourceURL  string `json:"sourceURL"`
			URL        string `json:"url"`
			Error      string `json:"error"`
		} `json:"metadata"`
	} `json:"data"`
}

// NewFirecrawlClient builds a client from cfg.Firecrawl. A missing API key
// fails construction with ErrMissingAPIKey. httpClient may be nil.
func NewFirecrawlClient(cfg Config, logger logging.Logger, httpClient *http.Client) (*FirecrawlClient, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	apiKey := strings.TrimSpace(cfg.Firecrawl.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(cfg.Firecrawl.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultFirecrawlBaseURL
	}

	// Remote rendering is slow; the transport timeout must outlast the scrape.
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * cfg.timeout()}
	}
	transport, err := NewNetHTTPClient(cfg, logger, httpClient)
	if err != nil {
		return nil, err
	}

	l := logger.With(logging.Field{Key: "backend", Value: "firecrawl"})
	l.Debug("created firecrawl webclient", logging.Field{Key: "base_url", Value: baseURL})

	return &FirecrawlClient{
		http:    transport,
		apiKey:  apiKey,
		baseURL: baseURL,
		logger:  l,
	}, nil
}

// Do scrapes req.URL. Only GET is meaningful for a scrape.
func (fc *FirecrawlClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if m := strings.ToUpper(req.Method); m != "" && m != http.MethodGet {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, m)
	}

	payload, err := json.Marshal(firecrawlScrapeRequest{URL: req.URL, Formats: []string{"html"}})
	if err != nil {
		return nil, fmt.Errorf("marshal scrape request: %w", err)
	}

	fc.logger.Debug("scraping page", logging.Field{Key: "url", Value: req.URL})

	apiResp, err := fc.http.Do(ctx, &Request{
		Method: http.MethodPost,
		URL:    fc.baseURL + "/v1/scrape",
		Headers: http.Header{
			"Content-Type":  {"application/json"},
			"Authorization": {"Bearer " + fc.apiKey},
		},
		Body: payload,
	})
	if err != nil {
		return nil, fmt.Errorf("firecrawl scrape: %w", err)
	}

	var decoded firecrawlScrapeResponse
	decodeErr := json.Unmarshal(apiResp.Body, &decoded)

	if apiResp.StatusCode < 200 || apiResp.StatusCode > 299 || !decoded.Success {
		msg := decoded.Error
		if msg == "" && decodeErr != nil {
			msg = http.StatusText(apiResp.StatusCode)
		}
		if msg == "" {
			msg = "service reported failure"
		}
		fc.logger.Warn("firecrawl scrape failed",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "status", Value: apiResp.StatusCode},
			logging.Field{Key: "error", Value: msg})
		return nil, fmt.Errorf("%w: %s (status %d)", ErrScrapeFailed, msg, apiResp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrScrapeFailed, decodeErr)
	}

	meta := decoded.Data.Metadata
	status := meta.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	finalURL := meta.URL
	if finalURL == "" {
		finalURL = meta.SourceURL
	}

	return &Response{
		Request:    req,
		Headers:    http.Header{"Content-Type": {"text/html; charset=utf-8"}},
		Body:       []byte(decoded.Data.HTML),
		StatusCode: status,
		FinalURL:   finalURL,
		FetchedAt:  time.Now(),
		Backend:    string(ClientFirecrawl),
	}, nil
}

func (fc *FirecrawlClient) Get(ctx context.Context, url string) (*Response, error) {
	return fc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (fc *FirecrawlClient) Close() error {
	return fc.http.Close()
}
