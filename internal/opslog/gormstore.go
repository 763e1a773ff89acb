package opslog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore keeps the log in PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore connects to dsn and migrates the entries table.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate entries table: %w", err)
	}
	return newGormStore(db), nil
}

func newGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Append inserts e.
func (s *GormStore) Append(ctx context.Context, e *Entry) error {
	e.Timestamp = e.Timestamp.UTC()
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *GormStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var entries []Entry
	if err := recentQuery(s.db.WithContext(ctx), limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	return entries, nil
}

// Day returns the entries logged on day (UTC), oldest first.
func (s *GormStore) Day(ctx context.Context, day time.Time) ([]Entry, error) {
	var entries []Entry
	if err := dayQuery(s.db.WithContext(ctx), day).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	return entries, nil
}

// Close releases the connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func recentQuery(tx *gorm.DB, limit int) *gorm.DB {
	return tx.Model(&Entry{}).Order("id DESC").Limit(limitOrDefault(limit))
}

func dayQuery(tx *gorm.DB, day time.Time) *gorm.DB {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return tx.Model(&Entry{}).
		Where("ts >= ? AND ts < ?", start, start.AddDate(0, 0, 1)).
		Order("id ASC")
}
