package config

import (
	"os"
	"path/filepath"
	"time"
)

type StoreConfig interface {
	GetStoreDriver() string
	GetStoreNamespace() string
	GetTokenFile() string
	GetTokenPassphrase() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
	GetSQLiteDSN() string
	GetStoreTimeout() time.Duration
}

type Store struct {
	values overlay
}

var _ StoreConfig = Store{}

func (s Store) GetStoreDriver() string {
	return s.values.get("TOKEN_STORE", "file")
}

func (s Store) GetStoreNamespace() string {
	return s.values.get("TOKEN_NAMESPACE", "default")
}

func (s Store) GetTokenFile() string {
	return s.values.get("TOKEN_FILE", defaultTokenFile())
}

func (s Store) GetTokenPassphrase() string {
	return s.values.get("TOKEN_PASSPHRASE", "")
}

func (s Store) GetRedisAddr() string {
	return s.values.get("REDIS_ADDR", "localhost:6379")
}

func (s Store) GetRedisPassword() string {
	return s.values.get("REDIS_PASSWORD", "")
}

func (s Store) GetRedisDB() int {
	return s.values.getInt("REDIS_DB", 0)
}

func (s Store) GetRedisPrefix() string {
	return s.values.get("REDIS_PREFIX", "skillshare:")
}

func (s Store) GetSQLiteDSN() string {
	return s.values.get("SQLITE_DSN", "skillshare.db")
}

func (s Store) GetStoreTimeout() time.Duration {
	return s.values.getDuration("TOKEN_STORE_TIMEOUT", 5*time.Second)
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".skillshare", "storage.json")
	}
	return filepath.Join(dir, "skillshare", "storage.json")
}
