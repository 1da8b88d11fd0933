package mail

import (
	"bytes"
	"html/template"
	"regexp"
)

// tagRE matches any HTML tag; used to derive the plain-text part.
var tagRE = regexp.MustCompile(`<[^>]*>`)

// StripTags removes HTML tags from s, producing the TextPart companion of an
// HTML body.
func StripTags(s string) string {
	return tagRE.ReplaceAllString(s, "")
}

// wrapperData feeds the fixed outer template. Body is pre-built trusted
// markup produced by the services, never raw user input (user-supplied
// values are escaped where the body fragments are assembled).
type wrapperData struct {
	Body          template.HTML
	RecipientName string
	Description   string
	SignOffName   string
	SignOffTitle  string
}

// wrapper is the fixed outer layout: branded header, greeting, signature,
// and a footer carrying contact addresses and the legal disclaimer.
var wrapper = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; margin: 0; padding: 0; background-color: #f5f5f5; line-height: 1.6;">
  <div style="background-color: #ffffff; max-width: 600px; margin: 20px auto; border-radius: 8px; overflow: hidden;">
    <div style="background-color: #000000; padding: 30px 30px 20px 30px; border-bottom: 1px solid #e5e7eb;">
      <img src="https://www.weboid.dev/img/Logo25-WhiteTEXT-TransBG.png" alt="Weboid" style="max-height: 40px; width: auto;">
      {{if .Description}}<p style="color: #d1d5db; font-size: 14px; margin: 10px 0 0 0; font-weight: 500;">{{.Description}}</p>{{end}}
    </div>
    <div style="padding: 30px; color: #1f2937;">
      <div style="font-size: 18px; font-weight: 600; margin-bottom: 20px;">{{if .RecipientName}}Kia ora {{.RecipientName}},{{else}}Kia ora,{{end}}</div>
      <div style="font-size: 16px; line-height: 1.6; margin-bottom: 25px;">
        {{.Body}}
      </div>
      <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb; font-size: 16px; font-weight: 500;">
        Regards,<br>
        <strong>{{.SignOffName}}</strong><br>
        <em>{{.SignOffTitle}}</em>
      </div>
    </div>
    <div style="background-color: #111827; padding: 25px 30px; font-size: 13px; color: #d1d5db; line-height: 1.5;">
      <div style="font-weight: 600; color: #ffffff; margin-bottom: 8px;">Weboid - Aotearoa New Zealand | NZBN 9429050012305</div>
      <div style="margin-bottom: 8px;">
        <strong>Billing &amp; Accounts:</strong> <a href="mailto:accounts@weboid.dev" style="color: #60a5fa;">accounts@weboid.dev</a><br>
        <strong>Support:</strong> <a href="mailto:support@weboid.dev" style="color: #60a5fa;">support@weboid.dev</a><br>
        <strong>General:</strong> <a href="mailto:hello@weboid.dev" style="color: #60a5fa;">hello@weboid.dev</a>
      </div>
      <div style="margin-top: 8px; font-size: 12px;">
        You are receiving this email because you have an account with Weboid or have requested information from us.
      </div>
      <div style="margin-top: 20px; padding-top: 15px; border-top: 1px solid #374151; font-size: 11px; color: #9ca3af; line-height: 1.4;">
        The content of this message is confidential. If you have received it by mistake, please inform us by email reply and then delete the message. It is forbidden to copy, forward, or in any way reveal the contents of this message to anyone. The integrity and security of this email cannot be guaranteed over the Internet. Therefore, the sender will not be held liable for any damage caused by the message. Any reply to this email acknowledges acceptance of our Terms and Conditions and Privacy Policy.
      </div>
    </div>
  </div>
</body>
</html>`))

// render wraps a body fragment in the fixed layout for the given persona.
func render(body, recipientName string, p Persona) (string, error) {
	var buf bytes.Buffer
	err := wrapper.Execute(&buf, wrapperData{
		Body:          template.HTML(body),
		RecipientName: recipientName,
		Description:   p.Description,
		SignOffName:   p.SignOffName,
		SignOffTitle:  p.SignOffTitle,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EscapeText HTML-escapes a user-supplied value for inclusion in a body
// fragment.
func EscapeText(s string) string {
	return template.HTMLEscapeString(s)
}
