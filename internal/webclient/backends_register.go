package webclient

import (
	"net/http"

	"github.com/raysh454/a11ylens/internal/logging"
)

func init() {
	RegisterDefaultBackends()
}

// RegisterDefaultBackends registers the firecrawl, nethttp, chromedp and
// colly backends. It runs from init and may be called again to restore
// defaults after a test overrides one.
func RegisterDefaultBackends() {
	RegisterBackend(string(ClientFirecrawl), func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewFirecrawlClient(cfg, logger, nil)
	})

	RegisterBackend(string(ClientNetHTTP), func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewNetHTTPClient(cfg, logger, &http.Client{Timeout: cfg.timeout()})
	})

	RegisterBackend(string(ClientChromedp), func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewChromedpClient(cfg, logger)
	})

	RegisterBackend(string(ClientColly), func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewCollyClient(cfg, logger)
	})
}
