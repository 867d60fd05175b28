package assessor

// DefaultRulesVersion identifies the current rule set in logs and reports.
const DefaultRulesVersion = "a11y-rules/1"

// Config holds runtime settings for the assessor.
type Config struct {
	// RulesVersion allows safe evolution of the tally rules.
	RulesVersion string `json:"rules_version" mapstructure:"rules_version"`
}

func DefaultConfig() Config {
	return Config{RulesVersion: DefaultRulesVersion}
}
