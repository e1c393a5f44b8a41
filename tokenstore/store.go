package tokenstore

import (
	"time"

	"github.com/jrsteele09/skillshare-client/session"
)

// Driver identifiers supported by the token store.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Config describes the store selection parameters.
type Config struct {
	Driver    string
	Namespace string
	TTL       time.Duration
	File      *FileConfig
	Redis     *RedisConfig
	SQLite    *SQLiteConfig
}

// FileConfig locates the on-disk store and optionally seals tokens at rest.
type FileConfig struct {
	Path       string
	Passphrase string
}

// RedisConfig captures connection options.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// SQLiteConfig provides the database location.
type SQLiteConfig struct {
	DSN string
}

// storageKey scopes the token key to a namespace so several profiles can share
// one backend.
func storageKey(namespace string) string {
	if namespace == "" || namespace == "default" {
		return session.TokenKey
	}
	return namespace + ":" + session.TokenKey
}
