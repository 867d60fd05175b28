package webclient

import "errors"

var (
	ErrNilRequest         = errors.New("webclient: nil request")
	ErrUnsupportedMethod  = errors.New("webclient: unsupported method")
	ErrUnknownBackend     = errors.New("webclient: backend not registered")
	ErrMissingAPIKey      = errors.New("webclient: firecrawl api key is not set")
	ErrScrapeFailed       = errors.New("webclient: scrape failed")
	ErrBrowserUnavailable = errors.New("webclient: headless browser unavailable")
)
