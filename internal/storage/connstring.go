package storage

import (
	"net/url"
	"strings"
)

// IsPostgres reports whether the config value is a PostgreSQL connection
// string rather than a local database path.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Passwords belong in the OS keyring, the
// environment, or .pgpass, never in command-line arguments that end up in
// shell history.
func HasEmbeddedCredentials(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.User != nil {
		if _, set := u.User.Password(); set {
			return true
		}
	}

	// DSN format: space-separated key=value pairs.
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}
