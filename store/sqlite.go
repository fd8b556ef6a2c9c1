package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KVEntry is one row of the key-value table.
type KVEntry struct {
	Key       string `gorm:"column:kv_key;primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }

// SQLite is a Store backed by a single SQLite table.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for an
// ephemeral store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: sqlite handle: %w", err)
	}
	// one connection so ":memory:" databases are shared across calls
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	s.db = nil
	return err
}

func (s *SQLite) Get(key string) ([]byte, bool, error) {
	if s == nil || s.db == nil {
		return nil, false, ErrClosed
	}
	var entry KVEntry
	err := s.db.Where("kv_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *SQLite) Set(key string, value []byte) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	entry := KVEntry{Key: key, Value: append([]byte(nil), value...), UpdatedAt: time.Now().UTC()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("store: set %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(key string) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if err := s.db.Where("kv_key = ?", key).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}
