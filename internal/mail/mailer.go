package mail

import (
	"context"
	"errors"
	"fmt"

	mailjet "github.com/mailjet/mailjet-apiv3-go/v4"
	"github.com/rs/zerolog/log"
)

// Message is one notification as the services describe it: a body fragment
// plus addressing, before the persona and wrapper are applied.
type Message struct {
	To            string
	Subject       string
	Body          string // HTML fragment inserted into the wrapper
	RecipientName string
	Department    Department
	ReplyTo       string   // optional override of the persona default
	CC            []string // optional
}

// Outbound is a fully rendered message as handed to the provider.
type Outbound struct {
	FromEmail string
	FromName  string
	To        string
	Subject   string
	HTMLPart  string
	TextPart  string
	ReplyTo   string
	CC        []string
}

// Sender delivers a rendered message via the external provider.
type Sender interface {
	Send(ctx context.Context, msg Outbound) error
}

// MailjetSender sends through the Mailjet v3.1 send API.
type MailjetSender struct {
	client *mailjet.Client
}

// NewMailjetSender builds a sender from API credentials.
func NewMailjetSender(apiKeyPublic, apiKeyPrivate string) *MailjetSender {
	return &MailjetSender{client: mailjet.NewMailjetClient(apiKeyPublic, apiKeyPrivate)}
}

// Send submits a single message and surfaces any non-success status as an
// error.
func (s *MailjetSender) Send(_ context.Context, msg Outbound) error {
	info := mailjet.InfoMessagesV31{
		From: &mailjet.RecipientV31{
			Email: msg.FromEmail,
			Name:  msg.FromName,
		},
		To: &mailjet.RecipientsV31{
			{Email: msg.To},
		},
		Subject:  msg.Subject,
		HTMLPart: msg.HTMLPart,
		TextPart: msg.TextPart,
	}
	if msg.ReplyTo != "" {
		info.ReplyTo = &mailjet.RecipientV31{Email: msg.ReplyTo}
	}
	if len(msg.CC) > 0 {
		cc := make(mailjet.RecipientsV31, 0, len(msg.CC))
		for _, addr := range msg.CC {
			cc = append(cc, mailjet.RecipientV31{Email: addr})
		}
		info.Cc = &cc
	}

	res, err := s.client.SendMailV31(&mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{info},
	})
	if err != nil {
		return fmt.Errorf("mailjet send: %w", err)
	}
	for _, r := range res.ResultsV31 {
		if r.Status != "success" {
			return fmt.Errorf("mailjet send: message status %q", r.Status)
		}
	}
	return nil
}

// Dispatcher renders messages with the department persona and hands them to
// the sender. A Dispatcher with a nil sender (no credentials configured) logs
// the would-be send and succeeds, matching local development behavior.
type Dispatcher struct {
	sender Sender
}

// NewDispatcher wraps sender; sender may be nil for development mode.
func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Configured reports whether a real sender is attached.
func (d *Dispatcher) Configured() bool { return d.sender != nil }

// Send renders and delivers one message. The caller decides whether a
// failure matters; controllers log and discard it.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("mail: recipient address is required")
	}

	persona := msg.Department.Persona()

	if d.sender == nil {
		log.Info().
			Str("department", string(msg.Department)).
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("email service not configured; skipping send")
		return nil
	}

	html, err := render(msg.Body, msg.RecipientName, persona)
	if err != nil {
		return fmt.Errorf("mail: render: %w", err)
	}

	replyTo := msg.ReplyTo
	if replyTo == "" {
		replyTo = persona.ReplyTo
	}

	return d.sender.Send(ctx, Outbound{
		FromEmail: persona.FromEmail,
		FromName:  persona.FromName,
		To:        msg.To,
		Subject:   msg.Subject,
		HTMLPart:  html,
		TextPart:  StripTags(msg.Body),
		ReplyTo:   replyTo,
		CC:        msg.CC,
	})
}
