// Contact HTTP handlers.
//
// This file exposes REST endpoints for contact submissions:
//   - GET    /contacts                     (list)
//   - GET    /contacts/type/{type}         (list by type tag)
//   - GET    /contacts/{id}                (fetch by id or reference number)
//   - POST   /contacts                     (general contact form)
//   - POST   /contacts/website-assessment  (assessment request form)
//   - PUT    /contacts/{id}                (partial update)
//   - DELETE /contacts/{id}                (delete)
//
// Handlers are transport-thin: they bind input, call the contact service,
// and translate results into envelope responses.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weboid/site-backend/internal/domain"
)

//
// DTOs
//

// CreateContactRequest is the JSON payload of the general contact form.
type CreateContactRequest struct {
	Name    string `json:"name" example:"Jane Doe"`
	Email   string `json:"email" example:"jane@example.com"`
	Phone   string `json:"phone,omitempty" example:"021 123 4567"`
	Subject string `json:"subject,omitempty" example:"Quote request"`
	Message string `json:"message" example:"I'd like a quote for a new site."`
	Company string `json:"company,omitempty" example:"Jane's Flowers"`
	Website string `json:"website,omitempty" example:"https://janesflowers.co.nz"`
	Type    string `json:"type,omitempty" example:"general"`
	Source  string `json:"source,omitempty" example:"website"`
}

// CreateAssessmentRequest is the JSON payload of the website assessment form.
type CreateAssessmentRequest struct {
	Name           string `json:"name" example:"Jane Doe"`
	Email          string `json:"email" example:"jane@example.com"`
	Phone          string `json:"phone" example:"021 123 4567"`
	Business       string `json:"business,omitempty" example:"Jane's Flowers"`
	CurrentWebsite string `json:"currentWebsite,omitempty" example:"https://old-site.co.nz"`
	Challenges     string `json:"challenges,omitempty" example:"The site is slow and dated."`
	Goals          string `json:"goals,omitempty" example:"Take orders online."`
}

//
// Endpoints
//

// ListContacts returns every contact submission, newest first.
func (h *Handlers) ListContacts(c *gin.Context) {
	recs, err := h.contacts.List(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "Contact not found", "Failed to fetch contacts")
		return
	}
	list(c, recs, len(recs))
}

// ListContactsByType returns the submissions carrying the type tag in the
// path. An unknown type yields an empty list, not an error.
func (h *Handlers) ListContactsByType(c *gin.Context) {
	recs, err := h.contacts.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		h.respondServiceError(c, err, "Contact not found", "Failed to fetch contacts by type")
		return
	}
	list(c, recs, len(recs))
}

// GetContact fetches a single submission by store id or 3-digit reference
// number.
func (h *Handlers) GetContact(c *gin.Context) {
	rec, err := h.contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "Contact not found", "Failed to fetch contact")
		return
	}
	ok(c, http.StatusOK, "", rec)
}

// CreateContact records a general contact submission and returns the stored
// record, reference number included.
func (h *Handlers) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", nil, false)
		return
	}

	created, err := h.contacts.Create(c.Request.Context(), domain.Record{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Company: req.Company,
		Website: req.Website,
		Type:    req.Type,
		Source:  req.Source,
	})
	if err != nil {
		h.respondServiceError(c, err, "Contact not found", "Failed to submit contact form")
		return
	}
	ok(c, http.StatusCreated, "Contact submission received successfully", created)
}

// CreateWebsiteAssessment records a website assessment request.
func (h *Handlers) CreateWebsiteAssessment(c *gin.Context) {
	var req CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", nil, false)
		return
	}

	created, err := h.contacts.CreateAssessment(c.Request.Context(), domain.Record{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Business:       req.Business,
		CurrentWebsite: req.CurrentWebsite,
		Challenges:     req.Challenges,
		Goals:          req.Goals,
	})
	if err != nil {
		h.respondServiceError(c, err, "Contact not found", "Failed to submit website assessment request")
		return
	}
	ok(c, http.StatusCreated, "Website assessment request received successfully! We'll call you within 24 hours.", created)
}

// UpdateContact applies a partial update to the submission addressed by id
// or reference number. Unknown and protected fields in the payload are
// ignored.
func (h *Handlers) UpdateContact(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", nil, false)
		return
	}

	updated, err := h.contacts.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.respondServiceError(c, err, "Contact not found", "Failed to update contact")
		return
	}
	ok(c, http.StatusOK, "Contact updated successfully", updated)
}

// DeleteContact removes the submission addressed by id or reference number
// and returns its prior state.
func (h *Handlers) DeleteContact(c *gin.Context) {
	deleted, err := h.contacts.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "Contact not found", "Failed to delete contact")
		return
	}
	ok(c, http.StatusOK, "Contact deleted successfully", deleted)
}
