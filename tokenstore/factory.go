package tokenstore

import (
	"context"
	"fmt"

	"github.com/jrsteele09/skillshare-client/internal/config"
	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/session"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Dependencies carries handles a caller already owns.
type Dependencies struct {
	SQLiteDB    *gorm.DB
	RedisClient *redis.Client
}

// New builds the token repo selected by cfg.Driver.
func New(ctx context.Context, cfg Config, deps Dependencies) (session.TokenRepo, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		return NewMemory(cfg), nil
	case DriverFile:
		return NewFile(cfg)
	case DriverRedis:
		if deps.RedisClient != nil {
			return NewRedisWithClient(deps.RedisClient, cfg), nil
		}
		return NewRedis(ctx, cfg)
	case DriverSQLite:
		if deps.SQLiteDB != nil {
			return NewSQLite(deps.SQLiteDB, cfg)
		}
		return OpenSQLite(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedDriver, driver)
	}
}

// ConfigFrom maps application configuration onto store settings.
func ConfigFrom(c config.StoreConfig) Config {
	return Config{
		Driver:    c.GetStoreDriver(),
		Namespace: c.GetStoreNamespace(),
		File: &FileConfig{
			Path:       c.GetTokenFile(),
			Passphrase: c.GetTokenPassphrase(),
		},
		Redis: &RedisConfig{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
			Prefix:   c.GetRedisPrefix(),
		},
		SQLite: &SQLiteConfig{
			DSN: c.GetSQLiteDSN(),
		},
	}
}
