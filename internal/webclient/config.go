package webclient

import "time"

type Client string

const (
	ClientFirecrawl Client = "firecrawl"
	ClientNetHTTP   Client = "nethttp"
	ClientChromedp  Client = "chromedp"
	ClientColly     Client = "colly"
)

const (
	DefaultTimeout          = 30 * time.Second
	DefaultUserAgent        = "a11ylens/0.1 (+https://github.com/raysh454/a11ylens)"
	DefaultFirecrawlBaseURL = "https://api.firecrawl.dev"
	DefaultIdleAfter        = 2 * time.Second
)

// Config selects and configures the fetch backend. It is built once per run
// by the app layer and passed in at construction.
type Config struct {
	Client    Client        `mapstructure:"client"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`

	Firecrawl FirecrawlConfig `mapstructure:"firecrawl"`
	Chromedp  ChromedpConfig  `mapstructure:"chromedp"`
}

// FirecrawlConfig holds the scraping service credentials.
type FirecrawlConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// ChromedpConfig tunes the headless browser backend.
type ChromedpConfig struct {
	// IdleAfter is how long the network must stay quiet before the DOM is read.
	IdleAfter time.Duration `mapstructure:"idle_after"`
	Headless  bool          `mapstructure:"headless"`
	// ExecPath overrides the Chrome binary lookup.
	ExecPath string `mapstructure:"exec_path"`
}

// DefaultConfig returns the Firecrawl backend with a 30s timeout.
func DefaultConfig() Config {
	return Config{
		Client:    ClientFirecrawl,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Firecrawl: FirecrawlConfig{BaseURL: DefaultFirecrawlBaseURL},
		Chromedp:  ChromedpConfig{IdleAfter: DefaultIdleAfter, Headless: true},
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c Config) userAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}
