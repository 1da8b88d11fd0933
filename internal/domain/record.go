// Package domain defines the persistence model shared by the contact and
// ticket collections. A single tagged Record type covers every submission
// kind; the Type field discriminates, and kind-specific fields are simply
// empty for the other kinds.
package domain

import (
	"time"
)

// Submission types stored in the contacts collection. Tickets have no type
// tag; they live in their own collection.
const (
	TypeGeneral           = "general"
	TypeWebsiteAssessment = "website_assessment"
)

// Lifecycle statuses. The status field is free-form (any value may overwrite
// any other); these are the values the services assign and the frontends
// display.
const (
	StatusNew        = "new"
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// Ticket priorities, in ascending order of urgency.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Sources recorded on created submissions.
const (
	SourceWebsite    = "website"
	SourceAssessment = "landing_page_assessment"
)

// Record is a persisted contact or ticket submission.
//
// Fields:
//   - ID: store-assigned opaque identifier; stable, unique, immutable.
//   - ReferenceNumber: human-facing 3-digit string, unique among live records
//     of the same collection at assignment time (best effort, see refnum).
//   - Type: submission kind for contacts (general / website_assessment).
//   - Status: free-form lifecycle tag; no enforced transition graph.
//   - Priority: advisory; decorates email subjects only.
//   - CreatedAt / UpdatedAt: CreatedAt set once, UpdatedAt refreshed on every
//     mutation.
//
// The remaining fields are per-kind payload; all optional except where the
// validator enforces presence.
type Record struct {
	ID              string `json:"id"               gorm:"type:char(36);primaryKey"`
	ReferenceNumber string `json:"reference_number" gorm:"type:char(3);index"`
	Type            string `json:"type,omitempty"   gorm:"type:varchar(32);index"`
	Status          string `json:"status"           gorm:"type:varchar(32);index"`
	Priority        string `json:"priority,omitempty" gorm:"type:varchar(16)"`
	Source          string `json:"source,omitempty" gorm:"type:varchar(64)"`

	// General contact payload.
	Name    string `json:"name,omitempty"    gorm:"type:varchar(100)"`
	Email   string `json:"email,omitempty"   gorm:"type:varchar(254)"`
	Phone   string `json:"phone,omitempty"   gorm:"type:varchar(20)"`
	Subject string `json:"subject,omitempty" gorm:"type:varchar(200)"`
	Message string `json:"message,omitempty" gorm:"type:text"`
	Company string `json:"company,omitempty" gorm:"type:varchar(100)"`
	Website string `json:"website,omitempty" gorm:"type:varchar(200)"`

	// Website assessment payload.
	Business       string `json:"business,omitempty"        gorm:"type:varchar(100)"`
	CurrentWebsite string `json:"current_website,omitempty" gorm:"type:varchar(200)"`
	Challenges     string `json:"challenges,omitempty"      gorm:"type:varchar(1000)"`
	Goals          string `json:"goals,omitempty"           gorm:"type:varchar(1000)"`

	// Support ticket payload.
	Title       string `json:"title,omitempty"       gorm:"type:varchar(200)"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	Category    string `json:"category,omitempty"    gorm:"type:varchar(50)"`
	UserEmail   string `json:"user_email,omitempty"  gorm:"type:varchar(254)"`
	UserName    string `json:"user_name,omitempty"   gorm:"type:varchar(100)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
