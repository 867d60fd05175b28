package webclient

import "context"

// WebClient is the fetch collaborator contract. Backends differ in how they
// obtain the page (plain HTTP, a scraping service, a headless browser) but
// all hand back the page markup in Response.Body.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*Response, error)

	Close() error
}
