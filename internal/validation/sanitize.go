// Package validation holds the pure input-hygiene layer: a sanitizer that
// strips dangerous markup from free-text fields and per-kind validators that
// report every violated rule in one pass. Sanitization always runs before
// validation so length limits apply to the cleaned content.
package validation

import (
	"regexp"
	"strings"

	"github.com/weboid/site-backend/internal/domain"
)

var (
	scriptRE  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	iframeRE  = regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`)
	jsURIRE   = regexp.MustCompile(`(?i)javascript:`)
	handlerRE = regexp.MustCompile(`(?i)on\w+=`)
)

// CleanString removes script and iframe blocks (including their content),
// javascript: URI prefixes, and inline event-handler attributes, all
// case-insensitively, then trims surrounding whitespace. It is idempotent
// and total over strings.
func CleanString(s string) string {
	s = scriptRE.ReplaceAllString(s, "")
	s = iframeRE.ReplaceAllString(s, "")
	s = jsURIRE.ReplaceAllString(s, "")
	s = handlerRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SanitizeRecord cleans every free-text field of rec in place. Non-string
// fields (timestamps, identifiers assigned by the store) are untouched.
func SanitizeRecord(rec *domain.Record) {
	for _, f := range []*string{
		&rec.Type, &rec.Status, &rec.Priority, &rec.Source,
		&rec.Name, &rec.Email, &rec.Phone, &rec.Subject, &rec.Message,
		&rec.Company, &rec.Website,
		&rec.Business, &rec.CurrentWebsite, &rec.Challenges, &rec.Goals,
		&rec.Title, &rec.Description, &rec.Category, &rec.UserEmail, &rec.UserName,
	} {
		*f = CleanString(*f)
	}
}

// SanitizeFields cleans every string value of a partial-update field map,
// returning a new map. Non-string values pass through unchanged.
func SanitizeFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			out[k] = CleanString(s)
			continue
		}
		out[k] = v
	}
	return out
}
