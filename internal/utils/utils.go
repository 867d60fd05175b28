package utils

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/idna"
)

var (
	ErrEmptyURL          = errors.New("empty url")
	ErrMissingHost       = errors.New("missing host")
	ErrUnsupportedScheme = errors.New("unsupported scheme")
)

// CanonicalizeOptions controls optional canonicalization policies.
type CanonicalizeOptions struct {
	DefaultScheme      string // assumed for schemeless input; empty means the scheme is required
	DropTrackingParams bool   // remove common tracking params (utm_*, gclid, fbclid, ...)
	CleanPath          bool   // apply path.Clean (drops dot segments and trailing slashes)
	SortQuery          bool   // sort query keys and values for deterministic output
}

// TargetOptions is the policy for user-supplied analysis targets: the page
// is fetched as typed, only the scheme is defaulted and the host normalized.
var TargetOptions = CanonicalizeOptions{DefaultScheme: "https"}

var defaultTrackingParams = map[string]struct{}{
	"utm_source": {}, "utm_medium": {}, "utm_campaign": {}, "utm_term": {}, "utm_content": {},
	"gclid": {}, "fbclid": {}, "mc_cid": {}, "mc_eid": {},
}

// NormalizeTarget turns operator input into an absolute http(s) URL.
func NormalizeTarget(raw string) (string, error) {
	return Canonicalize(raw, TargetOptions)
}

// Canonicalize returns a normalized URL string or an error.
// Scheme and host are lowercased, IDN hosts converted to punycode, default
// ports, userinfo and fragment dropped.
func Canonicalize(raw string, opts CanonicalizeOptions) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}

	if opts.DefaultScheme != "" && !strings.Contains(raw, "://") {
		raw = opts.DefaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", raw, err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingHost, raw)
	}

	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}
	if host == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingHost, raw)
	}

	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		u.Host = net.JoinHostPort(host, port)
	} else {
		u.Host = host
	}

	u.User = nil
	u.Fragment = ""
	u.RawFragment = ""

	if opts.CleanPath && u.Path != "" {
		u.Path = path.Clean(u.Path)
		u.RawPath = ""
	}

	if opts.DropTrackingParams || opts.SortQuery {
		q := u.Query()
		if opts.DropTrackingParams {
			for k := range q {
				if _, ok := defaultTrackingParams[strings.ToLower(k)]; ok {
					q.Del(k)
				}
			}
		}
		if opts.SortQuery {
			for _, vs := range q {
				sort.Strings(vs)
			}
		}
		// url.Values.Encode sorts by key.
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// ResolveReference resolves href against base and returns an absolute URL.
func ResolveReference(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base %q: %w", base, err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("parse href %q: %w", href, err)
	}
	return b.ResolveReference(ref).String(), nil
}
