// Package services – TicketService
//
// This file implements the TicketService, which governs support tickets:
// sanitizing and validating submissions, assigning reference numbers,
// persisting records, and sending confirmations on creation plus customer
// and internal notifications when a ticket's status changes. As with
// contacts, email delivery never fails the operation it accompanies.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/weboid/site-backend/internal/domain"
	"github.com/weboid/site-backend/internal/mail"
	"github.com/weboid/site-backend/internal/store"
	"github.com/weboid/site-backend/internal/validation"
)

// TicketService implements the use-cases around support tickets.
type TicketService struct {
	// Store is the record store backing the tickets collection.
	Store store.Store
	// Mail dispatches notification emails.
	Mail Mailer
	// Notify is the internal address copied on ticket activity.
	Notify string
}

// NewTicketService constructs a TicketService.
func NewTicketService(st store.Store, m Mailer, notify string) *TicketService {
	return &TicketService{Store: st, Mail: m, Notify: notify}
}

// List returns every ticket, newest first.
func (s *TicketService) List(ctx context.Context) ([]domain.Record, error) {
	return s.Store.List(ctx, store.Tickets)
}

// ListByStatus returns the tickets whose status equals status, newest first.
// An unknown status simply matches nothing.
func (s *TicketService) ListByStatus(ctx context.Context, status string) ([]domain.Record, error) {
	return s.Store.FindByField(ctx, store.Tickets, store.FieldStatus, status, 0)
}

// Get resolves idOrRef as a store id first and as a 3-digit reference number
// second.
func (s *TicketService) Get(ctx context.Context, idOrRef string) (*domain.Record, error) {
	rec, err := store.Resolve(ctx, s.Store, store.Tickets, idOrRef)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return rec, nil
}

// Create records a new support ticket.
//
// The input is sanitized, then validated; a *ValidationError carrying every
// violation is returned for rejected input. Accepted tickets get a reference
// number, default priority medium and category general, and status "open",
// then a confirmation email to the submitter and an internal notification.
func (s *TicketService) Create(ctx context.Context, rec domain.Record) (*domain.Record, error) {
	validation.SanitizeRecord(&rec)

	if errs := validation.ValidateTicket(&rec); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	if rec.Priority == "" {
		rec.Priority = domain.PriorityMedium
	}
	if rec.Category == "" {
		rec.Category = "general"
	}
	rec.Status = domain.StatusOpen
	rec.ReferenceNumber = allocateReference(ctx, s.Store, store.Tickets)

	created, err := s.Store.Create(ctx, store.Tickets, &rec)
	if err != nil {
		return nil, err
	}

	s.sendCreationEmails(ctx, created)
	return created, nil
}

// Update applies a partial update to the ticket identified by idOrRef. Field
// names are normalized to stored column names; unknown and protected fields
// are dropped. When the update includes a status and the ticket carries a
// submitter email, the customer and the internal address are both notified.
func (s *TicketService) Update(ctx context.Context, idOrRef string, fields map[string]any) (*domain.Record, error) {
	rec, err := store.Resolve(ctx, s.Store, store.Tickets, idOrRef)
	if err != nil {
		return nil, mapNotFound(err)
	}

	updates := normalizeUpdates(validation.SanitizeFields(fields), ticketUpdatable)

	updated, err := s.Store.Update(ctx, store.Tickets, rec.ID, updates)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if _, changed := updates["status"]; changed {
		s.sendUpdateEmails(ctx, updated)
	}
	return updated, nil
}

// Delete removes the ticket identified by idOrRef and returns its prior
// state.
func (s *TicketService) Delete(ctx context.Context, idOrRef string) (*domain.Record, error) {
	rec, err := store.Resolve(ctx, s.Store, store.Tickets, idOrRef)
	if err != nil {
		return nil, mapNotFound(err)
	}

	deleted, err := s.Store.Delete(ctx, store.Tickets, rec.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return deleted, nil
}

// priorityFlag decorates internal subject lines for high and urgent tickets.
func priorityFlag(priority string) string {
	switch strings.ToLower(priority) {
	case domain.PriorityUrgent:
		return "URGENT "
	case domain.PriorityHigh:
		return " HIGH PRIORITY "
	}
	return ""
}

// sendCreationEmails sends the submitter confirmation and the internal
// notification for a new ticket. Both require a submitter email; a ticket
// filed without one generates no mail at all.
func (s *TicketService) sendCreationEmails(ctx context.Context, rec *domain.Record) {
	if rec.UserEmail == "" {
		return
	}

	subject := fmt.Sprintf("Support Ticket Confirmation - %s (#%s)", rec.Title, rec.ReferenceNumber)

	var body strings.Builder
	body.WriteString("<h2>Support Ticket Confirmation</h2>\n")
	body.WriteString("<p>Thank you for submitting your support ticket. We have received your request and we will get back to you soon.</p>\n")
	body.WriteString(`<div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">` + "\n")
	body.WriteString("<h3>Ticket Details</h3>\n")
	body.WriteString(detailRow("Ticket Number", "#"+rec.ReferenceNumber))
	body.WriteString(detailRow("Title", rec.Title))
	body.WriteString(detailRow("Priority", rec.Priority))
	body.WriteString(detailRow("Category", rec.Category))
	body.WriteString(detailRow("Status", rec.Status))
	body.WriteString(detailRow("Created", rec.CreatedAt.Format(timeLayout)))
	body.WriteString("</div>\n")
	body.WriteString(`<div style="background-color: #fff; border-left: 4px solid #667eea; padding: 15px; margin: 20px 0;">` + "\n")
	body.WriteString("<h4>Description:</h4>\n")
	body.WriteString("<p>" + mail.EscapeText(rec.Description) + "</p>\n")
	body.WriteString("</div>\n")
	body.WriteString(fmt.Sprintf(`<p style="color: #666; font-size: 14px;">You will receive email updates when there are changes to your ticket. Please reference ticket number <strong>#%s</strong> in any correspondence.</p>`+"\n", rec.ReferenceNumber))
	body.WriteString(`<p style="margin-top: 25px;"><strong>Need assistance?</strong><br>You can reply directly to this email</p>` + "\n")

	s.send(ctx, mail.Message{
		To:            rec.UserEmail,
		Subject:       subject,
		Body:          body.String(),
		RecipientName: rec.UserName,
		Department:    mail.Support,
	})

	internalSubject := fmt.Sprintf("%sNew Ticket #%s - %s",
		priorityFlag(rec.Priority), rec.ReferenceNumber, rec.Title)

	internal := fmt.Sprintf(`<p>New support ticket submitted:</p>
<p>Ticket #%s<br>
Title: %s<br>
Priority: %s<br>
Category: %s<br>
Status: %s<br>
Submitted: %s</p>
<p>Customer:<br>
Name: %s<br>
Email: %s</p>
<p>Description:<br>%s</p>
<p>Reply to customer: %s</p>`,
		rec.ReferenceNumber,
		mail.EscapeText(rec.Title),
		strings.ToUpper(rec.Priority),
		mail.EscapeText(rec.Category),
		rec.Status,
		rec.CreatedAt.Format(timeLayout),
		mail.EscapeText(orNotProvided(rec.UserName)),
		mail.EscapeText(rec.UserEmail),
		mail.EscapeText(rec.Description),
		mail.EscapeText(rec.UserEmail))

	s.send(ctx, mail.Message{
		To:            s.Notify,
		Subject:       internalSubject,
		Body:          internal,
		RecipientName: "Weboid System",
		Department:    mail.Support,
	})
}

// sendUpdateEmails notifies the customer and the internal address of a status
// change.
func (s *TicketService) sendUpdateEmails(ctx context.Context, rec *domain.Record) {
	if rec.UserEmail == "" {
		return
	}

	recipientName := rec.UserName
	if recipientName == "" {
		recipientName = "there"
	}
	subject := fmt.Sprintf("Support Ticket Update - %s (#%s)", rec.Title, rec.ReferenceNumber)

	var body strings.Builder
	body.WriteString("<h2>Support Ticket Update</h2>\n")
	body.WriteString("<p>Your support ticket has been updated. Here are the latest details:</p>\n")
	body.WriteString(`<div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">` + "\n")
	body.WriteString("<h3>Ticket Details</h3>\n")
	body.WriteString(detailRow("Ticket Number", "#"+rec.ReferenceNumber))
	body.WriteString(detailRow("Title", rec.Title))
	body.WriteString(detailRow("Priority", rec.Priority))
	body.WriteString(detailRow("Status", rec.Status))
	body.WriteString(detailRow("Last Updated", rec.UpdatedAt.Format(timeLayout)))
	body.WriteString("</div>\n")
	body.WriteString(`<div style="background-color: #e7f3ff; border-left: 4px solid #667eea; padding: 15px; margin: 20px 0;">` + "\n")
	body.WriteString("<h4>Status Update:</h4>\n")
	body.WriteString("<p>Your ticket status has been updated to: <strong>" + mail.EscapeText(rec.Status) + "</strong></p>\n")
	switch rec.Status {
	case domain.StatusResolved:
		body.WriteString(`<p style="color: #059669; font-weight: 600;">Your ticket has been resolved! If you need further assistance, please reply to this email.</p>` + "\n")
	case domain.StatusInProgress:
		body.WriteString(`<p style="color: #0284c7; font-weight: 600;">Our support team is actively working on your ticket.</p>` + "\n")
	}
	body.WriteString("</div>\n")
	body.WriteString(fmt.Sprintf(`<p style="color: #666; font-size: 14px;">Please reference ticket number <strong>#%s</strong> in any correspondence regarding this ticket.</p>`+"\n", rec.ReferenceNumber))
	body.WriteString(`<p style="margin-top: 25px;"><strong>Need to add more information?</strong><br>You can reply directly to this email</p>` + "\n")

	s.send(ctx, mail.Message{
		To:            rec.UserEmail,
		Subject:       subject,
		Body:          body.String(),
		RecipientName: recipientName,
		Department:    mail.Support,
	})

	internalSubject := fmt.Sprintf("%sTicket Update #%s - Status: %s",
		priorityFlag(rec.Priority), rec.ReferenceNumber, rec.Status)

	internal := fmt.Sprintf(`<p>Support ticket updated:</p>
<p>Ticket #%s<br>
Title: %s<br>
Priority: %s<br>
Status: %s<br>
Updated: %s</p>
<p>Customer:<br>
Name: %s<br>
Email: %s</p>
<p>Customer has been notified of this update.<br>
Reply to customer: %s</p>`,
		rec.ReferenceNumber,
		mail.EscapeText(rec.Title),
		strings.ToUpper(rec.Priority),
		strings.ToUpper(rec.Status),
		rec.UpdatedAt.Format(timeLayout),
		mail.EscapeText(orNotProvided(rec.UserName)),
		mail.EscapeText(rec.UserEmail),
		mail.EscapeText(rec.UserEmail))

	s.send(ctx, mail.Message{
		To:            s.Notify,
		Subject:       internalSubject,
		Body:          internal,
		RecipientName: "Weboid System",
		Department:    mail.Support,
	})
}

// send delivers one notification, logging failures without propagating them.
func (s *TicketService) send(ctx context.Context, msg mail.Message) {
	if msg.To == "" {
		return
	}
	if err := s.Mail.Send(ctx, msg); err != nil {
		log.Error().Err(err).
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("failed to send ticket notification email")
	}
}
