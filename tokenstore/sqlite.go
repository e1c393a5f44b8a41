package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/skillshare-client/session"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StoredToken is the single-row-per-namespace table backing SQLiteStore.
type StoredToken struct {
	Name      string `gorm:"column:name;primaryKey;size:191"`
	Token     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (StoredToken) TableName() string {
	return "auth_tokens"
}

var _ session.TokenRepo = (*SQLiteStore)(nil)

type SQLiteStore struct {
	db    *gorm.DB
	key   string
	owned bool
}

// OpenSQLite opens the database at dsn and builds a store that owns it.
func OpenSQLite(cfg Config) (*SQLiteStore, error) {
	if cfg.SQLite == nil || cfg.SQLite.DSN == "" {
		return nil, fmt.Errorf("sqlite store requires a dsn")
	}
	db, err := gorm.Open(sqlite.Open(cfg.SQLite.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "OpenSQLite gorm.Open")
	}
	s, err := NewSQLite(db, cfg)
	if err != nil {
		return nil, err
	}
	s.owned = true
	return s, nil
}

// NewSQLite builds a store on an existing handle and migrates its table.
func NewSQLite(db *gorm.DB, cfg Config) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite store requires database handle")
	}
	if err := db.AutoMigrate(&StoredToken{}); err != nil {
		return nil, pkgerrors.Wrap(err, "NewSQLite AutoMigrate")
	}
	return &SQLiteStore{db: db, key: storageKey(cfg.Namespace)}, nil
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	var row StoredToken
	err := s.db.WithContext(ctx).Where("name = ?", s.key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, pkgerrors.Wrap(err, "SQLiteStore.Get")
	}
	return row.Token, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", s.key).Delete(&StoredToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&StoredToken{Name: s.key, Token: token}).Error
	})
	return pkgerrors.Wrap(err, "SQLiteStore.Set")
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	err := s.db.WithContext(ctx).Where("name = ?", s.key).Delete(&StoredToken{}).Error
	return pkgerrors.Wrap(err, "SQLiteStore.Delete")
}

func (s *SQLiteStore) Close(_ context.Context) error {
	if !s.owned {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return pkgerrors.Wrap(err, "SQLiteStore.Close")
	}
	return sqlDB.Close()
}
