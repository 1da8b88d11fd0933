package validation

import (
	"testing"

	"github.com/weboid/site-backend/internal/domain"
)

func TestCleanString_RemovesScriptBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"script with content", "<script>alert(1)</script>hello", "hello"},
		{"script case-insensitive", "<SCRIPT>alert(1)</SCRIPT>hello", "hello"},
		{"script with attrs", `<script type="text/javascript">x()</script>ok`, "ok"},
		{"iframe block", `<iframe src="https://evil.example"></iframe>safe`, "safe"},
		{"iframe case-insensitive", "<IFRAME>x</IFRAME>safe", "safe"},
		{"javascript uri", `javascript:alert(1)`, "alert(1)"},
		{"mixed-case uri", `JavaScript:void(0)`, "void(0)"},
		{"event handler", `<img src=x onerror=alert(1)>`, "<img src=x alert(1)>"},
		{"onclick handler", `a onclick=doIt() b`, "a doIt() b"},
		{"whitespace trim", "  hello  ", "hello"},
		{"plain text untouched", "just a message", "just a message"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanString(tc.in); got != tc.want {
				t.Fatalf("CleanString(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanString_Idempotent(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>hello",
		`<iframe src="x">nested <b>html</b></iframe> tail`,
		"javascript:javascript:alert(1)",
		`<div onmouseover=steal()>text</div>`,
		"   padded   ",
		"plain",
	}
	for _, in := range inputs {
		once := CleanString(in)
		twice := CleanString(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestSanitizeRecord_CleansFreeTextFields(t *testing.T) {
	rec := &domain.Record{
		Name:        "  Jane <script>x()</script>Doe  ",
		Message:     "<iframe>spy</iframe>Hi there",
		Title:       "javascript:Broken checkout",
		Description: "clicking pay does nothing",
	}
	SanitizeRecord(rec)

	if rec.Name != "Jane Doe" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Message != "Hi there" {
		t.Errorf("Message = %q", rec.Message)
	}
	if rec.Title != "Broken checkout" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Description != "clicking pay does nothing" {
		t.Errorf("Description = %q", rec.Description)
	}
}

func TestSanitizeFields_StringsOnly(t *testing.T) {
	in := map[string]any{
		"status":   " resolved<script>x</script> ",
		"priority": "high",
		"count":    3,
		"flag":     true,
	}
	out := SanitizeFields(in)

	if out["status"] != "resolved" {
		t.Errorf("status = %v", out["status"])
	}
	if out["priority"] != "high" {
		t.Errorf("priority = %v", out["priority"])
	}
	if out["count"] != 3 || out["flag"] != true {
		t.Errorf("non-string fields must pass through unchanged: %v", out)
	}
	if in["status"] != " resolved<script>x</script> " {
		t.Errorf("input map mutated")
	}
}
