package handlers

import (
	"context"

	"github.com/weboid/site-backend/internal/domain"
)

//
// Service contracts (context-aware)
//

// ContactService defines the contact submission operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ContactService interface {
	// List returns every contact submission, newest first.
	List(ctx context.Context) ([]domain.Record, error)
	// ListByType returns submissions with the given type tag.
	ListByType(ctx context.Context, typ string) ([]domain.Record, error)
	// Get resolves an id or 3-digit reference number to a submission.
	Get(ctx context.Context, idOrRef string) (*domain.Record, error)
	// Create records a general contact submission.
	Create(ctx context.Context, rec domain.Record) (*domain.Record, error)
	// CreateAssessment records a website assessment request.
	CreateAssessment(ctx context.Context, rec domain.Record) (*domain.Record, error)
	// Update applies a partial update addressed by id or reference number.
	Update(ctx context.Context, idOrRef string, fields map[string]any) (*domain.Record, error)
	// Delete removes a submission and returns its prior state.
	Delete(ctx context.Context, idOrRef string) (*domain.Record, error)
}

// TicketService defines the support ticket operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type TicketService interface {
	// List returns every ticket, newest first.
	List(ctx context.Context) ([]domain.Record, error)
	// ListByStatus returns tickets with the given status.
	ListByStatus(ctx context.Context, status string) ([]domain.Record, error)
	// Get resolves an id or 3-digit reference number to a ticket.
	Get(ctx context.Context, idOrRef string) (*domain.Record, error)
	// Create records a new support ticket.
	Create(ctx context.Context, rec domain.Record) (*domain.Record, error)
	// Update applies a partial update addressed by id or reference number.
	Update(ctx context.Context, idOrRef string, fields map[string]any) (*domain.Record, error)
	// Delete removes a ticket and returns its prior state.
	Delete(ctx context.Context, idOrRef string) (*domain.Record, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for contacts and tickets. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	contacts ContactService
	tickets  TicketService
	// dev enables internal error detail in 5xx responses.
	dev bool
}

// New constructs a Handlers instance bound to the given services. dev should
// be true only outside production.
func New(contacts ContactService, tickets TicketService, dev bool) *Handlers {
	return &Handlers{contacts: contacts, tickets: tickets, dev: dev}
}
