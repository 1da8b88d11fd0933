// Package mail implements the notification dispatcher: department personas,
// the fixed HTML wrapper every outbound message is rendered into, and the
// Mailjet-backed sender. Without provider credentials the dispatcher runs in
// a log-only development mode; callers treat every send as best effort.
package mail

// Department selects the persona (from-address, sign-off, reply-to default)
// a message is sent as.
type Department string

const (
	Support   Department = "support"
	Accounts  Department = "accounts"
	General   Department = "general"
	System    Department = "system"
	Marketing Department = "marketing"
)

// Persona is the fixed identity a department sends as. ReplyTo may be empty
// (the system persona sends no-reply mail).
type Persona struct {
	FromEmail    string
	FromName     string
	ReplyTo      string
	SignOffName  string
	SignOffTitle string
	Description  string
}

var personas = map[Department]Persona{
	Support: {
		FromEmail:    "support@weboid.dev",
		FromName:     "Weboid Support",
		ReplyTo:      "support@weboid.dev",
		SignOffName:  "Support Team",
		SignOffTitle: "Weboid Support",
		Description:  "Support Request",
	},
	Accounts: {
		FromEmail:    "accounts@weboid.dev",
		FromName:     "Accounts and Billing",
		ReplyTo:      "accounts@weboid.dev",
		SignOffName:  "Accounts Team",
		SignOffTitle: "Accounts & Billing, Weboid",
		Description:  "Accounts & Billing",
	},
	General: {
		FromEmail:    "hello@weboid.dev",
		FromName:     "Weboid",
		ReplyTo:      "hello@weboid.dev",
		SignOffName:  "Weboid",
		SignOffTitle: "Weboid",
		Description:  "General Inquiry",
	},
	System: {
		FromEmail:    "noreply@weboid.dev",
		FromName:     "Weboid",
		ReplyTo:      "",
		SignOffName:  "Weboid",
		SignOffTitle: "Weboid",
		Description:  "System Notification",
	},
	Marketing: {
		FromEmail:    "digital@weboid.dev",
		FromName:     "Weboid",
		ReplyTo:      "kiaora@weboid.dev",
		SignOffName:  "Weboid",
		SignOffTitle: "Weboid",
		Description:  "Newsletter & Updates",
	},
}

// Persona returns the department's identity; unknown departments fall back
// to the general persona.
func (d Department) Persona() Persona {
	if p, ok := personas[d]; ok {
		return p
	}
	return personas[General]
}
