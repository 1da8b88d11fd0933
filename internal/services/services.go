package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/weboid/site-backend/internal/mail"
	"github.com/weboid/site-backend/internal/refnum"
	"github.com/weboid/site-backend/internal/store"
)

// Mailer is the notification contract the services require. *mail.Dispatcher
// satisfies it; tests substitute a recorder.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// timeLayout formats timestamps embedded in notification emails.
const timeLayout = "2 Jan 2006, 3:04 PM MST"

// allocateReference picks a reference number for a new record in col, probing
// the store for collisions.
func allocateReference(ctx context.Context, st store.Store, col store.Collection) string {
	return refnum.Allocate(func(candidate string) (bool, error) {
		matches, err := st.FindByField(ctx, col, store.FieldReference, candidate, 1)
		if err != nil {
			return false, err
		}
		return len(matches) > 0, nil
	})
}

// mapNotFound translates the store sentinel into the service-level one.
func mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// camelAliases maps the JSON-style field names clients send to the stored
// column names. Snake_case names pass through untouched.
var camelAliases = map[string]string{
	"userEmail":      "user_email",
	"userName":       "user_name",
	"currentWebsite": "current_website",
}

// contactUpdatable and ticketUpdatable are the columns an update request may
// touch. Identity and bookkeeping columns (id, reference_number, created_at,
// updated_at) are deliberately absent.
var (
	contactUpdatable = fieldSet("type", "status", "priority", "source",
		"name", "email", "phone", "subject", "message", "company", "website",
		"business", "current_website", "challenges", "goals")

	ticketUpdatable = fieldSet("status", "priority", "category",
		"title", "description", "user_email", "user_name")
)

func fieldSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// normalizeUpdates resolves aliases and drops any field outside the allowed
// set. Unknown or protected fields are silently ignored rather than rejected.
func normalizeUpdates(fields map[string]any, allowed map[string]bool) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if alias, ok := camelAliases[k]; ok {
			k = alias
		}
		if allowed[k] {
			out[k] = v
		}
	}
	return out
}

// detailRow renders one "<p><strong>Label:</strong> value</p>" line for the
// HTML detail blocks, or nothing when the value is empty. The value is
// escaped; user input never reaches the message markup raw.
func detailRow(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return fmt.Sprintf("<p><strong>%s:</strong> %s</p>\n", label, mail.EscapeText(value))
}

// orNotProvided substitutes the placeholder used in internal notifications
// for absent optional fields.
func orNotProvided(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not provided"
	}
	return value
}
