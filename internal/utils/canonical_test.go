package utils

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		opts CanonicalizeOptions
		want string
	}{
		{
			in:   "HTTP://Example.COM:80/foo/../bar/?b=2&a=1#frag",
			opts: CanonicalizeOptions{CleanPath: true, SortQuery: true},
			want: "http://example.com/bar?a=1&b=2",
		},
		{
			in:   "https://example.com:443/index.html#section",
			opts: CanonicalizeOptions{},
			want: "https://example.com/index.html",
		},
		{
			in:   "example.com/page?utm_source=x&utm_medium=y&z=1",
			opts: CanonicalizeOptions{DefaultScheme: "https", DropTrackingParams: true},
			want: "https://example.com/page?z=1",
		},
		{
			in:   "https://example.com/p?k=b&k=a",
			opts: CanonicalizeOptions{SortQuery: true},
			want: "https://example.com/p?k=a&k=b",
		},
	}

	for _, tt := range tests {
		got, err := Canonicalize(tt.in, tt.opts)
		if err != nil {
			t.Fatalf("Canonicalize(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalize_RequiresSchemeWithoutDefault(t *testing.T) {
	if _, err := Canonicalize("example.com/x", CanonicalizeOptions{}); err == nil {
		t.Error("expected error for schemeless input without a default scheme")
	}
}
