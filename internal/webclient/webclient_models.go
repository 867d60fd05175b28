package webclient

import (
	"net/http"
	"time"
)

type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

type Response struct {
	Request    *Request
	Headers    http.Header
	Body       []byte
	StatusCode int
	// FinalURL is where the backend ended up after redirects; empty when unknown.
	FinalURL  string
	FetchedAt time.Time
	// Backend names the client that produced the response.
	Backend string
}

// URL returns the final URL when known, otherwise the requested one.
func (r *Response) URL() string {
	if r == nil {
		return ""
	}
	if r.FinalURL != "" {
		return r.FinalURL
	}
	if r.Request != nil {
		return r.Request.URL
	}
	return ""
}
