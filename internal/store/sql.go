package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/weboid/site-backend/internal/domain"
)

// SQLStore is the persistent backend: one SQLite table per collection, both
// sharing the Record schema.
type SQLStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the SQLite database, applies PRAGMAs,
// configures the pool, and migrates both collections. When tracing is set the
// GORM OpenTelemetry plugin is installed.
func OpenSQLite(path string, trace bool) (*SQLStore, error) {
	// Fail early if the parent directory does not exist instead of a cryptic
	// sqlite error later.
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return prepare(db, trace)
}

// NewSQL wraps an already-open GORM handle (tests use an in-memory DSN).
func NewSQL(db *gorm.DB) (*SQLStore, error) {
	return prepare(db, false)
}

func prepare(db *gorm.DB, trace bool) (*SQLStore, error) {
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if trace {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, err
		}
	}

	for _, col := range []Collection{Contacts, Tickets} {
		if err := db.Table(string(col)).AutoMigrate(&domain.Record{}); err != nil {
			return nil, fmt.Errorf("migrate %s: %w", col, err)
		}
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) table(ctx context.Context, col Collection) *gorm.DB {
	return s.db.WithContext(ctx).Table(string(col))
}

// Create persists rec with a fresh UUID and UTC timestamps and returns it.
func (s *SQLStore) Create(ctx context.Context, col Collection, rec *domain.Record) (*domain.Record, error) {
	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := s.table(ctx, col).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// Get fetches a record by its store id, or ErrNotFound.
func (s *SQLStore) Get(ctx context.Context, col Collection, id string) (*domain.Record, error) {
	var rec domain.Record
	err := s.table(ctx, col).Where("id = ?", id).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindByField returns records whose field equals value, newest first. Only
// the closed filterable field set is accepted. limit <= 0 means no limit.
func (s *SQLStore) FindByField(ctx context.Context, col Collection, field, value string, limit int) ([]domain.Record, error) {
	if !filterable(field) {
		return nil, errNotFilterable(field)
	}
	q := s.table(ctx, col).
		Where(fmt.Sprintf("%s = ?", field), value).
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.Record
	err := q.Find(&out).Error
	return out, err
}

// List returns every record in the collection, newest first.
func (s *SQLStore) List(ctx context.Context, col Collection) ([]domain.Record, error) {
	var out []domain.Record
	err := s.table(ctx, col).Order("created_at desc").Find(&out).Error
	return out, err
}

// Update shallow-merges fields into the record and refreshes updated_at,
// returning the updated record or ErrNotFound.
func (s *SQLStore) Update(ctx context.Context, col Collection, id string, fields map[string]any) (*domain.Record, error) {
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updated_at"] = time.Now().UTC()

	res := s.table(ctx, col).Where("id = ?", id).Updates(merged)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, col, id)
}

// Delete removes the record permanently and returns its prior state, or
// ErrNotFound.
func (s *SQLStore) Delete(ctx context.Context, col Collection, id string) (*domain.Record, error) {
	prior, err := s.Get(ctx, col, id)
	if err != nil {
		return nil, err
	}
	if err := s.table(ctx, col).Where("id = ?", id).Delete(&domain.Record{}).Error; err != nil {
		return nil, err
	}
	return prior, nil
}
