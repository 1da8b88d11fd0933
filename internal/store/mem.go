package store

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/weboid/site-backend/internal/domain"
)

// Memory is the in-process fallback backend: a mutex-guarded slice per
// collection plus a shared id counter. It exists for local development when
// no database is configured; state is lost on restart and is not shared
// across process instances.
type Memory struct {
	mu     sync.Mutex
	nextID int
	recs   map[Collection][]domain.Record
}

// NewMemory returns an empty in-memory store. Each instance owns its own
// state, so tests can construct isolated stores.
func NewMemory() *Memory {
	return &Memory{
		nextID: 1,
		recs: map[Collection][]domain.Record{
			Contacts: {},
			Tickets:  {},
		},
	}
}

func (m *Memory) Create(_ context.Context, col Collection, rec *domain.Record) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	rec.ID = strconv.Itoa(m.nextID)
	m.nextID++
	rec.CreatedAt = now
	rec.UpdatedAt = now

	m.recs[col] = append(m.recs[col], *rec)
	out := *rec
	return &out, nil
}

func (m *Memory) Get(_ context.Context, col Collection, id string) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.index(col, id); i >= 0 {
		out := m.recs[col][i]
		return &out, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) FindByField(_ context.Context, col Collection, field, value string, limit int) ([]domain.Record, error) {
	if !filterable(field) {
		return nil, errNotFilterable(field)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Record
	for _, r := range m.recs[col] {
		if fieldValue(&r, field) == value {
			out = append(out, r)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *Memory) List(_ context.Context, col Collection) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Record, len(m.recs[col]))
	copy(out, m.recs[col])
	sortNewestFirst(out)
	return out, nil
}

func (m *Memory) Update(_ context.Context, col Collection, id string, fields map[string]any) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(col, id)
	if i < 0 {
		return nil, ErrNotFound
	}

	merged, err := mergeFields(&m.recs[col][i], fields)
	if err != nil {
		return nil, err
	}
	merged.UpdatedAt = time.Now().UTC()
	m.recs[col][i] = *merged

	out := *merged
	return &out, nil
}

func (m *Memory) Delete(_ context.Context, col Collection, id string) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(col, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	prior := m.recs[col][i]
	m.recs[col] = append(m.recs[col][:i], m.recs[col][i+1:]...)
	return &prior, nil
}

// index returns the position of id in col, or -1. Callers hold the lock.
func (m *Memory) index(col Collection, id string) int {
	for i, r := range m.recs[col] {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func fieldValue(r *domain.Record, field string) string {
	switch field {
	case FieldType:
		return r.Type
	case FieldStatus:
		return r.Status
	case FieldReference:
		return r.ReferenceNumber
	}
	return ""
}

func sortNewestFirst(recs []domain.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
}

// mergeFields overlays a partial field map (snake_case keys matching the
// Record's JSON tags) onto rec via a JSON round trip, mirroring the shallow
// merge the SQL backend gets from UPDATE. Identity fields cannot be clobbered:
// id and created_at are restored after the merge.
func mergeFields(rec *domain.Record, fields map[string]any) (*domain.Record, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, err
	}
	for k, v := range fields {
		asMap[k] = v
	}

	raw, err = json.Marshal(asMap)
	if err != nil {
		return nil, err
	}
	var merged domain.Record
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	merged.ID = rec.ID
	merged.CreatedAt = rec.CreatedAt
	return &merged, nil
}
