// Package services – ContactService
//
// This file implements the ContactService, which governs contact form and
// website assessment submissions: sanitizing input, validating it, assigning
// a reference number, persisting the record, and sending the confirmation
// and internal notification emails. Email delivery is best effort; a send
// failure is logged and never fails the submission.
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

// ContactService implements the use-cases around contact submissions.
type ContactService struct {
	// Store is the record store backing the contacts collection.
	Store store.Store
	// Mail dispatches notification emails.
	Mail Mailer
	// Notify is the internal address copied on every new submission.
	Notify string
}

// NewContactService constructs a ContactService.
func NewContactService(st store.Store, m Mailer, notify string) *ContactService {
	return &ContactService{Store: st, Mail: m, Notify: notify}
}

// List returns every contact submission, newest first.
func (s *ContactService) List(ctx context.Context) ([]domain.Record, error) {
	return s.Store.List(ctx, store.Contacts)
}

// ListByType returns the submissions whose type tag equals typ, newest first.
// An unknown type simply matches nothing.
func (s *ContactService) ListByType(ctx context.Context, typ string) ([]domain.Record, error) {
	return s.Store.FindByField(ctx, store.Contacts, store.FieldType, typ, 0)
}

// Get resolves idOrRef as a store id first and as a 3-digit reference number
// second.
func (s *ContactService) Get(ctx context.Context, idOrRef string) (*domain.Record, error) {
	rec, err := store.Resolve(ctx, s.Store, store.Contacts, idOrRef)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return rec, nil
}

// Create records a general contact submission.
//
// The input is sanitized, then validated; a *ValidationError carrying every
// violation is returned for rejected input. Accepted submissions get a
// reference number, the default type/source when absent, and status "new",
// then a confirmation email to the submitter and an internal notification.
func (s *ContactService) Create(ctx context.Context, rec domain.Record) (*domain.Record, error) {
	validation.SanitizeRecord(&rec)

	if errs := validation.ValidateContact(&rec); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	if rec.Type == "" {
		rec.Type = domain.TypeGeneral
	}
	if rec.Source == "" {
		rec.Source = domain.SourceWebsite
	}
	rec.Status = domain.StatusNew
	rec.ReferenceNumber = allocateReference(ctx, s.Store, store.Contacts)

	created, err := s.Store.Create(ctx, store.Contacts, &rec)
	if err != nil {
		return nil, err
	}

	s.sendContactEmails(ctx, created)
	return created, nil
}

// CreateAssessment records a website assessment request. Assessments are
// always typed website_assessment, sourced from the landing page form, and
// created at high priority; the submitter's phone number is mandatory so the
// promised callback can happen.
func (s *ContactService) CreateAssessment(ctx context.Context, rec domain.Record) (*domain.Record, error) {
	validation.SanitizeRecord(&rec)
	rec.Type = domain.TypeWebsiteAssessment

	if errs := validation.ValidateAssessment(&rec); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	rec.Source = domain.SourceAssessment
	rec.Status = domain.StatusNew
	rec.Priority = domain.PriorityHigh
	rec.ReferenceNumber = allocateReference(ctx, s.Store, store.Contacts)

	created, err := s.Store.Create(ctx, store.Contacts, &rec)
	if err != nil {
		return nil, err
	}

	s.sendAssessmentEmails(ctx, created)
	return created, nil
}

// Update applies a partial update to the submission identified by idOrRef.
// Field names are normalized to stored column names; unknown and protected
// fields are dropped. String values are sanitized the same way submissions
// are.
func (s *ContactService) Update(ctx context.Context, idOrRef string, fields map[string]any) (*domain.Record, error) {
	rec, err := store.Resolve(ctx, s.Store, store.Contacts, idOrRef)
	if err != nil {
		return nil, mapNotFound(err)
	}

	updates := normalizeUpdates(validation.SanitizeFields(fields), contactUpdatable)

	updated, err := s.Store.Update(ctx, store.Contacts, rec.ID, updates)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return updated, nil
}

// Delete removes the submission identified by idOrRef and returns its prior
// state.
func (s *ContactService) Delete(ctx context.Context, idOrRef string) (*domain.Record, error) {
	rec, err := store.Resolve(ctx, s.Store, store.Contacts, idOrRef)
	if err != nil {
		return nil, mapNotFound(err)
	}

	deleted, err := s.Store.Delete(ctx, store.Contacts, rec.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return deleted, nil
}

// sendContactEmails sends the submitter confirmation and the internal
// notification for a new general contact. Failures are logged and swallowed.
func (s *ContactService) sendContactEmails(ctx context.Context, rec *domain.Record) {
	if rec.Email == "" {
		return
	}

	subject := fmt.Sprintf("Contact Confirmation - We've received your message (#%s)", rec.ReferenceNumber)

	var body strings.Builder
	body.WriteString("<h2>Thank you for contacting Weboid!</h2>\n")
	body.WriteString("<p>We've received your message and we'll get back to you within 24 hours.</p>\n")
	body.WriteString(`<div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">` + "\n")
	body.WriteString("<h3>Contact Details</h3>\n")
	body.WriteString(detailRow("Reference Number", "#"+rec.ReferenceNumber))
	body.WriteString(detailRow("Name", rec.Name))
	body.WriteString(detailRow("Email", rec.Email))
	body.WriteString(detailRow("Phone", rec.Phone))
	body.WriteString(detailRow("Company", rec.Company))
	body.WriteString(detailRow("Subject", rec.Subject))
	body.WriteString(detailRow("Submitted", rec.CreatedAt.Format(timeLayout)))
	body.WriteString("</div>\n")
	body.WriteString(`<div style="background-color: #fff; border-left: 4px solid #667eea; padding: 15px; margin: 20px 0;">` + "\n")
	body.WriteString("<h4>Your Message:</h4>\n")
	body.WriteString("<p>" + mail.EscapeText(rec.Message) + "</p>\n")
	body.WriteString("</div>\n")
	body.WriteString("<p>We appreciate your interest in Weboid and look forward to helping you with your website needs.</p>\n")
	body.WriteString(fmt.Sprintf(`<p style="color: #666; font-size: 14px;">You will receive email updates regarding your inquiry. Please reference #%s in any correspondence.</p>`+"\n", rec.ReferenceNumber))

	s.send(ctx, mail.Message{
		To:            rec.Email,
		Subject:       subject,
		Body:          body.String(),
		RecipientName: rec.Name,
		Department:    mail.General,
	})

	subjectLine := rec.Subject
	if subjectLine == "" {
		subjectLine = "General Inquiry"
	}
	internalSubject := fmt.Sprintf("New Contact Submission #%s - %s", rec.ReferenceNumber, subjectLine)

	internal := fmt.Sprintf(`<p>New contact form submission:</p>
<p>Reference #%s<br>
Type: %s<br>
Name: %s<br>
Email: %s<br>
Phone: %s<br>
Company: %s<br>
Website: %s<br>
Subject: %s<br>
Source: %s<br>
Submitted: %s</p>
<p>Message:<br>%s</p>
<p>Reply to: %s</p>`,
		rec.ReferenceNumber,
		strings.ToUpper(rec.Type),
		mail.EscapeText(orNotProvided(rec.Name)),
		mail.EscapeText(rec.Email),
		mail.EscapeText(orNotProvided(rec.Phone)),
		mail.EscapeText(orNotProvided(rec.Company)),
		mail.EscapeText(orNotProvided(rec.Website)),
		mail.EscapeText(orNotProvided(rec.Subject)),
		rec.Source,
		rec.CreatedAt.Format(timeLayout),
		mail.EscapeText(rec.Message),
		mail.EscapeText(rec.Email))

	s.send(ctx, mail.Message{
		To:            s.Notify,
		Subject:       internalSubject,
		Body:          internal,
		RecipientName: "Weboid System",
		Department:    mail.General,
	})
}

// sendAssessmentEmails sends the assessment confirmation and the high
// priority internal notification.
func (s *ContactService) sendAssessmentEmails(ctx context.Context, rec *domain.Record) {
	if rec.Email == "" {
		return
	}

	subject := fmt.Sprintf("Website Assessment Request Received - We'll call you within 24 hours! (#%s)", rec.ReferenceNumber)

	var body strings.Builder
	body.WriteString("<h2>Thank you for requesting a Website Assessment!</h2>\n")
	body.WriteString("<p>We've received your website assessment request and Thomas will personally call you back within 24 hours to discuss your needs.</p>\n")
	body.WriteString(`<div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">` + "\n")
	body.WriteString("<h3>Assessment Request Details</h3>\n")
	body.WriteString(detailRow("Reference Number", "#"+rec.ReferenceNumber))
	body.WriteString(detailRow("Name", rec.Name))
	body.WriteString(detailRow("Email", rec.Email))
	body.WriteString(detailRow("Phone", rec.Phone))
	body.WriteString(detailRow("Business", rec.Business))
	body.WriteString(detailRow("Current Website", rec.CurrentWebsite))
	body.WriteString(detailRow("Priority", "High Priority Assessment"))
	body.WriteString(detailRow("Submitted", rec.CreatedAt.Format(timeLayout)))
	body.WriteString("</div>\n")
	if rec.Challenges != "" {
		body.WriteString(`<div style="background-color: #fff; border-left: 4px solid #f59e0b; padding: 15px; margin: 20px 0;">` + "\n")
		body.WriteString("<h4>Current Website Challenges:</h4>\n")
		body.WriteString("<p>" + mail.EscapeText(rec.Challenges) + "</p>\n")
		body.WriteString("</div>\n")
	}
	if rec.Goals != "" {
		body.WriteString(`<div style="background-color: #fff; border-left: 4px solid #10b981; padding: 15px; margin: 20px 0;">` + "\n")
		body.WriteString("<h4>Website Goals:</h4>\n")
		body.WriteString("<p>" + mail.EscapeText(rec.Goals) + "</p>\n")
		body.WriteString("</div>\n")
	}
	body.WriteString(`<div style="background-color: #e7f3ff; border-left: 4px solid #667eea; padding: 15px; margin: 20px 0;">` + "\n")
	body.WriteString("<h4>What happens next:</h4>\n")
	body.WriteString(`<ul style="margin: 0; padding-left: 20px;">` + "\n")
	body.WriteString("<li>Thomas will personally review your information</li>\n")
	body.WriteString("<li>You'll receive a call within 24 hours</li>\n")
	body.WriteString("<li>We'll provide honest advice about what would work best</li>\n")
	body.WriteString("<li>No obligation, no sales pressure</li>\n")
	body.WriteString("</ul>\n</div>\n")
	body.WriteString("<p>We're excited to help you create a website that actually works for your business!</p>\n")
	body.WriteString(fmt.Sprintf(`<p style="color: #666; font-size: 14px;">Please reference assessment #%s if you need to contact us before we call you.</p>`+"\n", rec.ReferenceNumber))

	s.send(ctx, mail.Message{
		To:            rec.Email,
		Subject:       subject,
		Body:          body.String(),
		RecipientName: rec.Name,
		Department:    mail.General,
	})

	headline := rec.Business
	if headline == "" {
		headline = rec.Name
	}
	internalSubject := fmt.Sprintf("HIGH PRIORITY - New Website Assessment #%s - %s",
		rec.ReferenceNumber, headline)

	internal := fmt.Sprintf(`<p>HIGH PRIORITY WEBSITE ASSESSMENT REQUEST:</p>
<p>Reference #%s<br>
Name: %s<br>
Email: %s<br>
Phone: %s<br>
Business: %s<br>
Current Website: %s<br>
Source: Landing Page Assessment Form<br>
Submitted: %s</p>
<p>CURRENT WEBSITE CHALLENGES:<br>%s</p>
<p>WEBSITE GOALS:<br>%s</p>
<p>ACTION REQUIRED: Call %s at %s within 24 hours<br>
Reply to: %s</p>
<p>Customer has been sent confirmation email and is expecting a call within 24 hours.</p>`,
		rec.ReferenceNumber,
		mail.EscapeText(rec.Name),
		mail.EscapeText(rec.Email),
		mail.EscapeText(rec.Phone),
		mail.EscapeText(orNotProvided(rec.Business)),
		mail.EscapeText(orNotProvided(rec.CurrentWebsite)),
		rec.CreatedAt.Format(timeLayout),
		mail.EscapeText(orNotProvided(rec.Challenges)),
		mail.EscapeText(orNotProvided(rec.Goals)),
		mail.EscapeText(rec.Name),
		mail.EscapeText(rec.Phone),
		mail.EscapeText(rec.Email))

	s.send(ctx, mail.Message{
		To:            s.Notify,
		Subject:       internalSubject,
		Body:          internal,
		RecipientName: "Weboid System",
		Department:    mail.General,
	})
}

// send delivers one notification, logging failures without propagating them.
func (s *ContactService) send(ctx context.Context, msg mail.Message) {
	if msg.To == "" {
		return
	}
	if err := s.Mail.Send(ctx, msg); err != nil {
		log.Error().Err(err).
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("failed to send contact notification email")
	}
}
