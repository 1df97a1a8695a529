// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Fact store backend names accepted by FactStore.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// FactStore selects the fact repository backend: memory, sqlite or postgres.
	FactStore string `koanf:"fact_store"`

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `koanf:"sqlite_path"`

	// PostgresDSN is the connection string used by the postgres backend.
	PostgresDSN string `koanf:"postgres_dsn"`

	// PostgresMaxConns caps the pgx connection pool.
	PostgresMaxConns int `koanf:"postgres_max_conns"`

	// DefaultPodiumSize is the podium cap applied when the caller does not supply one.
	DefaultPodiumSize int `koanf:"default_podium_size"`

	// MaxPodiumSize caps the podium_size query parameter.
	MaxPodiumSize int `koanf:"max_podium_size"`

	// RequestTimeoutSeconds bounds a single report request end to end.
	RequestTimeoutSeconds int `koanf:"request_timeout_seconds"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		FactStore:             StoreMemory,
		SQLitePath:            "blocboard.db",
		PostgresDSN:           "",
		PostgresMaxConns:      16,
		DefaultPodiumSize:     3,
		MaxPodiumSize:         50,
		RequestTimeoutSeconds: 30,
	}
}
