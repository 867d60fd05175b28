package demoserver

// Config controls the fixture site.
type Config struct {
	// Port the fixture site listens on.
	Port int

	// StartFixed serves every page at its fixed revision instead of the
	// defective one, so the first analyze run reports a clean page.
	StartFixed bool

	// ServeQuickref mounts the offline guideline reference at QuickrefPath.
	ServeQuickref bool
}

// DefaultConfig serves defective revisions on port 9999 with the guideline
// reference mounted.
func DefaultConfig() Config {
	return Config{
		Port:          9999,
		ServeQuickref: true,
	}
}
