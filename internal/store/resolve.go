package store

import (
	"context"
	"errors"

	"github.com/weboid/site-backend/internal/domain"
	"github.com/weboid/site-backend/internal/refnum"
)

// Resolve looks up a record by a caller-supplied identifier that may be
// either a store id or a 3-digit reference number. The exact-id lookup runs
// first; only when it misses and the identifier has the reference shape does
// the reference-number lookup run. Anything else is ErrNotFound.
func Resolve(ctx context.Context, s Store, col Collection, idOrRef string) (*domain.Record, error) {
	rec, err := s.Get(ctx, col, idOrRef)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if !refnum.IsReference(idOrRef) {
		return nil, ErrNotFound
	}

	matches, err := s.FindByField(ctx, col, FieldReference, idOrRef, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}
