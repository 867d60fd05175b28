package guidelines

const (
	DefaultURL           = "https://www.w3.org/WAI/WCAG21/quickref/"
	DefaultSelector      = ".guideline"
	DefaultTitleSelector = ".guideline-title"
	DefaultLimit         = 5
)

// Config points the lookup at a reference page and describes its layout.
type Config struct {
	URL           string `mapstructure:"url"`
	Selector      string `mapstructure:"selector"`
	TitleSelector string `mapstructure:"title_selector"`
	// Limit caps the number of guidelines returned; <= 0 means DefaultLimit.
	Limit int `mapstructure:"limit"`
}

func DefaultConfig() Config {
	return Config{
		URL:           DefaultURL,
		Selector:      DefaultSelector,
		TitleSelector: DefaultTitleSelector,
		Limit:         DefaultLimit,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.URL == "" {
		c.URL = d.URL
	}
	if c.Selector == "" {
		c.Selector = d.Selector
	}
	if c.TitleSelector == "" {
		c.TitleSelector = d.TitleSelector
	}
	if c.Limit <= 0 {
		c.Limit = d.Limit
	}
	return c
}
