package webclient

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/raysh454/a11ylens/internal/logging"
)

// ChromedpClient renders pages in headless Chrome and returns the DOM after
// the network has gone idle, for pages that build their markup client side.
type ChromedpClient struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	idleAfter   time.Duration
	timeout     time.Duration
	logger      logging.Logger
}

// NewChromedpClient prepares a browser allocator. The browser itself starts
// on the first request; construction fails early when no Chrome binary can
// be found.
func NewChromedpClient(cfg Config, logger logging.Logger) (*ChromedpClient, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if cfg.Chromedp.ExecPath == "" && findChrome() == "" {
		return nil, ErrBrowserUnavailable
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", cfg.Chromedp.Headless),
		chromedp.UserAgent(cfg.userAgent()),
	)
	if cfg.Chromedp.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.Chromedp.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	idleAfter := cfg.Chromedp.IdleAfter
	if idleAfter <= 0 {
		idleAfter = DefaultIdleAfter
	}

	l := logger.With(logging.Field{Key: "backend", Value: "chromedp"})
	l.Debug("created chromedp webclient", logging.Field{Key: "idle_after", Value: idleAfter.String()})

	return &ChromedpClient{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		idleAfter:   idleAfter,
		timeout:     cfg.timeout(),
		logger:      l,
	}, nil
}

// findChrome mirrors the binary names chromedp looks for.
func findChrome() string {
	for _, name := range []string{
		"headless_shell", "headless-shell", "chromium", "chromium-browser",
		"google-chrome", "google-chrome-stable", "google-chrome-beta", "google-chrome-unstable",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// waitNetworkIdle returns a channel that fires once no requests have been in
// flight for idleAfter. kick restarts the quiet-period timer, e.g. once
// navigation has finished and nothing else was requested.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) (idle <-chan struct{}, kick func()) {
	idleChan := make(chan struct{}, 1)
	var activeReqs atomic.Int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(idleAfter, func() {
			if activeReqs.Load() <= 0 {
				once.Do(func() { idleChan <- struct{}{} })
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			activeReqs.Add(1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if activeReqs.Add(-1) <= 0 {
				startTimer()
			}
		}
	})

	return idleChan, startTimer
}

func (cdc *ChromedpClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if m := strings.ToUpper(req.Method); m != "" && m != http.MethodGet {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, m)
	}

	tabCtx, cancelTab := chromedp.NewContext(cdc.allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, cdc.timeout)
	defer cancelTimeout()

	// The tab lives under the allocator, so tie it to the caller's ctx by hand.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var (
		statusMu sync.Mutex
		status   int
		headers  = http.Header{}
	)
	chromedp.ListenTarget(tabCtx, func(ev any) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Type != network.ResourceTypeDocument {
			return
		}
		statusMu.Lock()
		defer statusMu.Unlock()
		if status != 0 {
			return
		}
		status = int(resp.Response.Status)
		for k, v := range resp.Response.Headers {
			headers.Set(k, fmt.Sprint(v))
		}
	})

	idle, kick := waitNetworkIdle(tabCtx, cdc.idleAfter)

	cdc.logger.Debug("navigating", logging.Field{Key: "url", Value: req.URL})
	if err := chromedp.Run(tabCtx, network.Enable(), chromedp.Navigate(req.URL)); err != nil {
		return nil, fmt.Errorf("chromedp navigate: %w", err)
	}
	kick()

	select {
	case <-idle:
	case <-tabCtx.Done():
		return nil, fmt.Errorf("chromedp wait for idle: %w", tabCtx.Err())
	}

	var html, location string
	if err := chromedp.Run(tabCtx,
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&location),
	); err != nil {
		return nil, fmt.Errorf("chromedp read dom: %w", err)
	}

	statusMu.Lock()
	code := status
	statusMu.Unlock()
	if code == 0 {
		code = http.StatusOK
	}

	return &Response{
		Request:    req,
		Headers:    headers,
		Body:       []byte(html),
		StatusCode: code,
		FinalURL:   location,
		FetchedAt:  time.Now(),
		Backend:    string(ClientChromedp),
	}, nil
}

func (cdc *ChromedpClient) Get(ctx context.Context, url string) (*Response, error) {
	return cdc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (cdc *ChromedpClient) Close() error {
	cdc.allocCancel()
	return nil
}
