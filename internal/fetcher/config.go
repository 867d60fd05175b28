package fetcher

// Config tunes the page fetcher.
type Config struct {
	// RejectNon2xx fails pages whose status is outside 2xx with
	// ErrUnexpectedStatus. By default the returned markup is analyzed
	// whatever its status.
	RejectNon2xx bool `mapstructure:"reject_non_2xx"`
}
