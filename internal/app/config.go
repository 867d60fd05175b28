package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/raysh454/a11ylens/internal/assessor"
	"github.com/raysh454/a11ylens/internal/fetcher"
	"github.com/raysh454/a11ylens/internal/guidelines"
	"github.com/raysh454/a11ylens/internal/webclient"
)

const (
	// AppName names the config file and the XDG config directory.
	AppName = "a11ylens"

	// EnvPrefix prefixes every environment override, e.g. A11YLENS_WEBCLIENT_CLIENT.
	EnvPrefix = "A11YLENS"

	// FirecrawlAPIKeyEnv is read unprefixed for compatibility with other Firecrawl tooling.
	FirecrawlAPIKeyEnv = "FIRECRAWL_API_KEY"

	DefaultListenAddr = ":8080"
	DotEnvFile        = ".env"
)

// Config aggregates the per-component configuration for one process.
type Config struct {
	Log        LogConfig         `mapstructure:"log"`
	WebClient  webclient.Config  `mapstructure:"webclient"`
	Fetcher    fetcher.Config    `mapstructure:"fetcher"`
	Assessor   assessor.Config   `mapstructure:"assessor"`
	Guidelines guidelines.Config `mapstructure:"guidelines"`
	Server     ServerConfig      `mapstructure:"server"`

	// ConfigFile is the file the config was read from, if any.
	ConfigFile string `mapstructure:"-"`
}

type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WebClient:  webclient.DefaultConfig(),
		Assessor:   assessor.DefaultConfig(),
		Guidelines: guidelines.DefaultConfig(),
		Server:     ServerConfig{ListenAddr: DefaultListenAddr},
	}
}

// APIKeySet reports whether a Firecrawl API key is configured.
func (c *Config) APIKeySet() bool {
	return c != nil && strings.TrimSpace(c.WebClient.Firecrawl.APIKey) != ""
}

// Validate checks values that would otherwise only fail at first use.
func (c *Config) Validate() error {
	found := false
	for _, name := range webclient.ListBackends() {
		if strings.EqualFold(name, string(c.WebClient.Client)) {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", webclient.ErrUnknownBackend, c.WebClient.Client)
	}
	if c.WebClient.Timeout < 0 {
		return errors.New("webclient.timeout cannot be negative")
	}
	return nil
}

// LoadConfig loads configuration with the following precedence (lowest to highest):
// 1. Default values
// 2. Config file (path, or ./a11ylens.yaml, or $XDG_CONFIG_HOME/a11ylens/a11ylens.yaml)
// 3. .env file in the working directory
// 4. Environment variables (A11YLENS_*, FIRECRAWL_API_KEY)
// 5. CLI flags (handled by caller)
func LoadConfig(path string) (*Config, error) {
	return loadConfig(path, DotEnvFile)
}

func loadConfig(path, dotEnv string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("webclient.firecrawl.api_key", EnvPrefix+"_WEBCLIENT_FIRECRAWL_API_KEY", FirecrawlAPIKeyEnv); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := mergeDotEnv(v, dotEnv); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// mergeDotEnv applies KEY=value pairs from a dotenv file on top of the config
// file. Variables already present in the process environment win.
func mergeDotEnv(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	d := viper.New()
	d.SetConfigFile(path)
	d.SetConfigType("env")
	if err := d.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	envToKey := map[string]string{strings.ToLower(FirecrawlAPIKeyEnv): "webclient.firecrawl.api_key"}
	for _, key := range v.AllKeys() {
		envToKey[strings.ToLower(EnvPrefix+"_"+strings.ReplaceAll(key, ".", "_"))] = key
	}

	for _, name := range d.AllKeys() {
		key, ok := envToKey[name]
		if !ok || envOverrides(key) {
			continue
		}
		v.Set(key, d.Get(name))
	}
	return nil
}

// envOverrides reports whether the process environment already sets key.
func envOverrides(key string) bool {
	names := []string{EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
	if key == "webclient.firecrawl.api_key" {
		names = append(names, FirecrawlAPIKeyEnv)
	}
	for _, n := range names {
		if _, set := os.LookupEnv(n); set {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.verbose", d.Log.Verbose)

	v.SetDefault("webclient.client", string(d.WebClient.Client))
	v.SetDefault("webclient.timeout", d.WebClient.Timeout)
	v.SetDefault("webclient.user_agent", d.WebClient.UserAgent)
	v.SetDefault("webclient.firecrawl.api_key", d.WebClient.Firecrawl.APIKey)
	v.SetDefault("webclient.firecrawl.base_url", d.WebClient.Firecrawl.BaseURL)
	v.SetDefault("webclient.chromedp.idle_after", d.WebClient.Chromedp.IdleAfter)
	v.SetDefault("webclient.chromedp.headless", d.WebClient.Chromedp.Headless)
	v.SetDefault("webclient.chromedp.exec_path", d.WebClient.Chromedp.ExecPath)

	v.SetDefault("fetcher.reject_non_2xx", d.Fetcher.RejectNon2xx)
	v.SetDefault("assessor.rules_version", d.Assessor.RulesVersion)

	v.SetDefault("guidelines.url", d.Guidelines.URL)
	v.SetDefault("guidelines.selector", d.Guidelines.Selector)
	v.SetDefault("guidelines.title_selector", d.Guidelines.TitleSelector)
	v.SetDefault("guidelines.limit", d.Guidelines.Limit)

	v.SetDefault("server.listen_addr", d.Server.ListenAddr)
}

// SampleConfig returns an annotated config file.
func SampleConfig() string {
	return `# a11ylens configuration
# Save as ./a11ylens.yaml or $XDG_CONFIG_HOME/a11ylens/a11ylens.yaml

log:
  verbose: false

webclient:
  # firecrawl | nethttp | chromedp | colly
  client: firecrawl
  timeout: 30s
  firecrawl:
    # Prefer FIRECRAWL_API_KEY in the environment or a .env file.
    # api_key: fc-...
    base_url: https://api.firecrawl.dev
  chromedp:
    idle_after: 2s
    headless: true

fetcher:
  # Fail pages that answer with a non-2xx status instead of analyzing them.
  reject_non_2xx: false
guidelines:
  url: https://www.w3.org/WAI/WCAG21/quickref/
  limit: 5

server:
  listen_addr: ":8080"
`
}
