// Package store implements the record persistence layer: a uniform Store
// interface over two interchangeable backends, a GORM/SQLite-backed
// persistent store and an in-process fallback used when no database is
// configured (local development). Exactly one backend is selected per process
// lifetime, at startup; nothing above this package branches on which one is
// active.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/weboid/site-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist. It aliases
// gorm.ErrRecordNotFound so both backends surface the same sentinel.
var ErrNotFound = gorm.ErrRecordNotFound

// Collection names the two logical record collections.
type Collection string

const (
	Contacts Collection = "contacts"
	Tickets  Collection = "tickets"
)

// Fields accepted by FindByField. The set is closed so backends can
// interpolate column names safely.
const (
	FieldType      = "type"
	FieldStatus    = "status"
	FieldReference = "reference_number"
)

// filterable reports whether field may be used with FindByField.
func filterable(field string) bool {
	switch field {
	case FieldType, FieldStatus, FieldReference:
		return true
	}
	return false
}

func errNotFilterable(field string) error {
	return fmt.Errorf("store: field %q is not filterable", field)
}

// Store is the uniform contract both backends satisfy.
//
// Create assigns the id and both timestamps before persisting and returns the
// full record. Update shallow-merges the supplied fields and always refreshes
// updated_at; Delete returns the record's prior state. List and FindByField
// order newest first.
type Store interface {
	Create(ctx context.Context, col Collection, rec *domain.Record) (*domain.Record, error)
	Get(ctx context.Context, col Collection, id string) (*domain.Record, error)
	FindByField(ctx context.Context, col Collection, field, value string, limit int) ([]domain.Record, error)
	List(ctx context.Context, col Collection) ([]domain.Record, error)
	Update(ctx context.Context, col Collection, id string, fields map[string]any) (*domain.Record, error)
	Delete(ctx context.Context, col Collection, id string) (*domain.Record, error)
}

// Open selects the backend for this process. A configured, openable SQLite
// path yields the persistent store; an empty path or a failed open falls back
// to the in-memory store (logged, development-only, not safe across
// processes). The choice is made exactly once; there is no mid-request
// fallback.
func Open(dbPath string, tracing bool) Store {
	if strings.TrimSpace(dbPath) == "" {
		log.Warn().Msg("DB_PATH not set; using in-memory record store (development only)")
		return NewMemory()
	}
	s, err := OpenSQLite(dbPath, tracing)
	if err != nil {
		log.Warn().Err(err).Str("db_path", dbPath).
			Msg("could not open persistent store; using in-memory fallback")
		return NewMemory()
	}
	log.Info().Str("db_path", dbPath).Msg("persistent record store ready")
	return s
}
