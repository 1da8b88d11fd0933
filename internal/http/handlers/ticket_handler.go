// Ticket HTTP handlers.
//
// This file exposes REST endpoints for support tickets:
//   - GET    /tickets                  (list)
//   - GET    /tickets/status/{status}  (list by status)
//   - GET    /tickets/{id}             (fetch by id or reference number)
//   - POST   /tickets                  (create)
//   - PUT    /tickets/{id}             (partial update)
//   - DELETE /tickets/{id}             (delete)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weboid/site-backend/internal/domain"
)

// CreateTicketRequest is the JSON payload for filing a support ticket.
type CreateTicketRequest struct {
	Title       string `json:"title" example:"Site is down"`
	Description string `json:"description" example:"Homepage returns a 500 since this morning."`
	Priority    string `json:"priority,omitempty" example:"high"`
	Category    string `json:"category,omitempty" example:"technical"`
	UserEmail   string `json:"userEmail,omitempty" example:"jane@example.com"`
	UserName    string `json:"userName,omitempty" example:"Jane Doe"`
}

// ListTickets returns every ticket, newest first.
func (h *Handlers) ListTickets(c *gin.Context) {
	recs, err := h.tickets.List(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "Ticket not found", "Failed to fetch tickets")
		return
	}
	list(c, recs, len(recs))
}

// ListTicketsByStatus returns the tickets carrying the status in the path.
// An unknown status yields an empty list, not an error.
func (h *Handlers) ListTicketsByStatus(c *gin.Context) {
	recs, err := h.tickets.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		h.respondServiceError(c, err, "Ticket not found", "Failed to fetch tickets by status")
		return
	}
	list(c, recs, len(recs))
}

// GetTicket fetches a single ticket by store id or 3-digit reference number.
func (h *Handlers) GetTicket(c *gin.Context) {
	rec, err := h.tickets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "Ticket not found", "Failed to fetch ticket")
		return
	}
	ok(c, http.StatusOK, "", rec)
}

// CreateTicket files a new support ticket and returns the stored record,
// reference number included.
func (h *Handlers) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", nil, false)
		return
	}

	created, err := h.tickets.Create(c.Request.Context(), domain.Record{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		UserEmail:   req.UserEmail,
		UserName:    req.UserName,
	})
	if err != nil {
		h.respondServiceError(c, err, "Ticket not found", "Failed to create ticket")
		return
	}
	ok(c, http.StatusCreated, "Ticket created successfully", created)
}

// UpdateTicket applies a partial update to the ticket addressed by id or
// reference number. A status change triggers customer and internal
// notification emails downstream.
func (h *Handlers) UpdateTicket(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", nil, false)
		return
	}

	updated, err := h.tickets.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.respondServiceError(c, err, "Ticket not found", "Failed to update ticket")
		return
	}
	ok(c, http.StatusOK, "Ticket updated successfully", updated)
}

// DeleteTicket removes the ticket addressed by id or reference number and
// returns its prior state.
func (h *Handlers) DeleteTicket(c *gin.Context) {
	deleted, err := h.tickets.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "Ticket not found", "Failed to delete ticket")
		return
	}
	ok(c, http.StatusOK, "Ticket deleted successfully", deleted)
}
