package validation

import (
	"regexp"
	"strings"

	"github.com/weboid/site-backend/internal/domain"
)

// emailRE matches the local@domain.tld shape. Deliberately permissive beyond
// that; deliverability is the mail provider's problem.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has a plausible email shape.
func ValidEmail(s string) bool {
	return emailRE.MatchString(s)
}

func validPriority(p string) bool {
	switch p {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent:
		return true
	}
	return false
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func tooLong(s string, max int) bool { return len(strings.TrimSpace(s)) > max }

// ValidateTicket checks a support ticket submission and returns every
// violated rule, not just the first.
func ValidateTicket(rec *domain.Record) []string {
	var errs []string

	if blank(rec.Title) {
		errs = append(errs, "Title is required")
	} else if tooLong(rec.Title, 200) {
		errs = append(errs, "Title must be less than 200 characters")
	}

	if blank(rec.Description) {
		errs = append(errs, "Description is required")
	} else if tooLong(rec.Description, 2000) {
		errs = append(errs, "Description must be less than 2000 characters")
	}

	if rec.Priority != "" && !validPriority(rec.Priority) {
		errs = append(errs, "Priority must be one of: low, medium, high, urgent")
	}
	if rec.Category != "" && tooLong(rec.Category, 50) {
		errs = append(errs, "Category must be less than 50 characters")
	}
	if rec.UserEmail != "" && !ValidEmail(rec.UserEmail) {
		errs = append(errs, "Please provide a valid email address")
	}

	return errs
}

// ValidateContact checks a general contact submission.
func ValidateContact(rec *domain.Record) []string {
	errs := validateContactBase(rec)

	if blank(rec.Message) {
		errs = append(errs, "Message is required")
	} else if tooLong(rec.Message, 2000) {
		errs = append(errs, "Message must be less than 2000 characters")
	}
	if rec.Subject != "" && tooLong(rec.Subject, 200) {
		errs = append(errs, "Subject must be less than 200 characters")
	}

	return append(errs, validateContactOptional(rec)...)
}

// ValidateAssessment checks a website assessment submission. Phone is
// required; goals, challenges, business, and the current website are optional
// but length-capped.
func ValidateAssessment(rec *domain.Record) []string {
	errs := validateContactBase(rec)

	if blank(rec.Phone) {
		errs = append(errs, "Phone number is required for website assessment")
	} else if tooLong(rec.Phone, 20) {
		errs = append(errs, "Phone number must be less than 20 characters")
	}
	if rec.Goals != "" && tooLong(rec.Goals, 1000) {
		errs = append(errs, "Goals description must be less than 1000 characters")
	}
	if rec.Challenges != "" && tooLong(rec.Challenges, 1000) {
		errs = append(errs, "Challenges description must be less than 1000 characters")
	}
	if rec.Business != "" && tooLong(rec.Business, 100) {
		errs = append(errs, "Business name must be less than 100 characters")
	}
	if rec.CurrentWebsite != "" && tooLong(rec.CurrentWebsite, 200) {
		errs = append(errs, "Website URL must be less than 200 characters")
	}

	return append(errs, validateContactOptional(rec)...)
}

// validateContactBase covers the fields required for every contact kind.
func validateContactBase(rec *domain.Record) []string {
	var errs []string
	if blank(rec.Name) {
		errs = append(errs, "Name is required")
	} else if tooLong(rec.Name, 100) {
		errs = append(errs, "Name must be less than 100 characters")
	}
	if !ValidEmail(rec.Email) {
		errs = append(errs, "Valid email address is required")
	}
	return errs
}

// validateContactOptional covers the optional fields shared by all contact
// kinds. Note the assessment's required phone check runs first, so a too-long
// phone is reported only once.
func validateContactOptional(rec *domain.Record) []string {
	var errs []string
	if rec.Type != domain.TypeWebsiteAssessment && rec.Phone != "" && tooLong(rec.Phone, 20) {
		errs = append(errs, "Phone number must be less than 20 characters")
	}
	if rec.Company != "" && tooLong(rec.Company, 100) {
		errs = append(errs, "Company name must be less than 100 characters")
	}
	if rec.Website != "" && tooLong(rec.Website, 200) {
		errs = append(errs, "Website URL must be less than 200 characters")
	}
	return errs
}
