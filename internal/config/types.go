package config

// Config represents the global ffizer configuration file.
type Config struct {
	// Cache configures the git template cache.
	Cache CacheConfig `json:"cache"`
	// Git configures git source resolution.
	Git GitConfig `json:"git"`
	// Output configures display settings.
	Output OutputConfig `json:"output"`
	// Defaults configures run-time defaults a user can override per-invocation.
	Defaults DefaultsConfig `json:"defaults"`
}

// CacheConfig represents cache settings.
type CacheConfig struct {
	// Directory is the cache root; empty means the platform user-cache directory.
	Directory string `json:"directory"`
	// TTL is a cache time-to-live in seconds (0 = no expiration); the
	// source locator does not read it, so cached entries never expire.
	TTL int `json:"ttl"`
}

// GitConfig represents git-specific settings.
type GitConfig struct {
	// Timeout is the clone/fetch subprocess timeout in seconds; a 0 read
	// from the file is replaced by the default of 60 on load.
	Timeout int `json:"timeout"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color is the colored-output setting; the CLI does not read it
	// (coloring is controlled by --no-color).
	Color bool `json:"color"`
	// Quiet is the quiet-output setting; the CLI does not read it
	// (quiet output is controlled by --quiet).
	Quiet bool `json:"quiet"`
}

// DefaultsConfig represents default values applied when not overridden
// by a flag.
type DefaultsConfig struct {
	// Offline defaults --offline when true.
	Offline bool `json:"offline"`
	// Confirm is the default confirmation policy: "never" or "always".
	Confirm string `json:"confirm"`
}
