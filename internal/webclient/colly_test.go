package webclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raysh454/a11ylens/internal/webclient"
)

func TestCollyClient_Get_ReturnsBody(t *testing.T) {
	t.Parallel()
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html lang="en"><body>hi</body></html>`)
	}))
	defer ts.Close()

	client, err := webclient.NewCollyClient(webclient.Config{UserAgent: "colly-test"}, &noopLogger{})
	if err != nil {
		t.Fatalf("NewCollyClient: %v", err)
	}
	defer client.Close()

	resp, err := client.Get(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(resp.Body) != `<html lang="en"><body>hi</body></html>` {
		t.Errorf("unexpected body %q", resp.Body)
	}
	if resp.StatusCode != 200 || resp.Backend != "colly" {
		t.Errorf("unexpected response: status=%d backend=%s", resp.StatusCode, resp.Backend)
	}
	if ua != "colly-test" {
		t.Errorf("expected user agent colly-test, got %q", ua)
	}
}

func TestCollyClient_Get_KeepsErrorStatus(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "missing")
	}))
	defer ts.Close()

	client, _ := webclient.NewCollyClient(webclient.Config{}, &noopLogger{})
	resp, err := client.Get(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCollyClient_Do_Errors(t *testing.T) {
	t.Parallel()
	client, _ := webclient.NewCollyClient(webclient.Config{}, &noopLogger{})

	if _, err := client.Do(context.Background(), nil); !errors.Is(err, webclient.ErrNilRequest) {
		t.Errorf("expected ErrNilRequest, got %v", err)
	}
	if _, err := client.Do(context.Background(), &webclient.Request{Method: "PUT", URL: "http://x"}); !errors.Is(err, webclient.ErrUnsupportedMethod) {
		t.Errorf("expected ErrUnsupportedMethod, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Get(ctx, "http://127.0.0.1:1"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	if _, err := client.Get(context.Background(), "http://127.0.0.1:1"); err == nil {
		t.Error("expected connection error")
	}
}
