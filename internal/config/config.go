package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultListenAddr    = ":8080"
	DefaultDatabasePath  = "library.db"
	DefaultOMDbBaseURL   = "https://www.omdbapi.com/"
	DefaultVerifyTimeout = 5 * time.Second
)

// Config holds all runtime configuration for the catalog service. It is
// built once at startup and passed explicitly to the components that need
// it; nothing reads the environment after Load returns.
type Config struct {
	ListenAddr    string        // address for the HTTP server, e.g. ":8080"
	DatabasePath  string        // path to the sqlite database file
	OMDbAPIKey    string        // API key for the OMDb lookup service
	OMDbBaseURL   string        // OMDb endpoint, overridable for tests
	VerifyTimeout time.Duration // per-lookup timeout for title verification
	LogFile       string        // optional rotating log file; empty means stderr only
}

// Load reads configuration from environment variables, applying defaults
// for everything except the OMDb API key (verification is skipped without
// one, see services/metadata).
func Load() Config {
	return Config{
		ListenAddr:    getenv("SHOWLIB_ADDR", DefaultListenAddr),
		DatabasePath:  getenv("SHOWLIB_DB_PATH", DefaultDatabasePath),
		OMDbAPIKey:    os.Getenv("OMDB_API_KEY"),
		OMDbBaseURL:   getenv("OMDB_BASE_URL", DefaultOMDbBaseURL),
		VerifyTimeout: getenvDuration("OMDB_TIMEOUT_SECONDS", DefaultVerifyTimeout),
		LogFile:       os.Getenv("SHOWLIB_LOG_FILE"),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
