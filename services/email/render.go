package email

import (
	"fmt"
	"html"
	"strings"

	"sacredgreeks/models"
)

const brandColor = "#7c2d12"

func esc(s string) string {
	return html.EscapeString(s)
}

// nl2br escapes s and turns line breaks into <br>.
func nl2br(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(esc(s), "\n", "<br>")
}

func layout(heading, body string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;background:#f8fafc;margin:0;padding:24px;">`)
	b.WriteString(`<div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px;">`)
	b.WriteString(`<h1 style="color:` + brandColor + `;font-size:22px;margin-top:0;">` + heading + `</h1>`)
	b.WriteString(body)
	b.WriteString(`<p style="color:#64748b;font-size:12px;margin-top:32px;">Sacred Greeks Life</p>`)
	b.WriteString(`</div></body></html>`)
	return b.String()
}

// RenderContact builds the message delivered to the support inbox for a contact form submission.
func RenderContact(req models.ContactRequest, inbox string) models.EmailMessage {
	body := `<p><strong>From:</strong> ` + esc(req.Name) + ` &lt;` + esc(req.Email) + `&gt;</p>` +
		`<p><strong>Subject:</strong> ` + esc(req.Subject) + `</p>` +
		`<p>` + nl2br(req.Message) + `</p>`

	return models.EmailMessage{
		To:      []string{inbox},
		Subject: "Contact form: " + strings.TrimSpace(req.Subject),
		HTML:    layout("New contact message", body),
		ReplyTo: req.Email,
	}
}

func RenderWelcome(displayName, to, appURL string) models.EmailMessage {
	body := `<p>Hi ` + esc(displayName) + `,</p>` +
		`<p>Welcome to Sacred Greeks Life. Start with today's devotional and build your streak one day at a time.</p>` +
		`<p><a href="` + esc(appURL) + `" style="color:` + brandColor + `;">Open the app</a></p>`

	return models.EmailMessage{
		To:      []string{to},
		Subject: "Welcome to Sacred Greeks Life",
		HTML:    layout("Welcome!", body),
	}
}

func RenderAchievement(displayName, to string, a models.Achievement) models.EmailMessage {
	body := `<p>Congratulations ` + esc(displayName) + `!</p>` +
		`<p>You unlocked <strong>` + esc(a.Name) + `</strong>: ` + esc(a.Description) + `</p>` +
		fmt.Sprintf(`<p>+%d points</p>`, a.Points)

	return models.EmailMessage{
		To:      []string{to},
		Subject: "Achievement unlocked: " + a.Name,
		HTML:    layout("Achievement unlocked", body),
	}
}

// Validate checks a rendered message before it is queued.
func Validate(msg models.EmailMessage) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	for _, to := range msg.To {
		if strings.TrimSpace(to) == "" {
			return ErrNoRecipients
		}
	}
	if strings.TrimSpace(msg.Subject) == "" || strings.TrimSpace(msg.HTML) == "" {
		return ErrEmptyMessage
	}
	return nil
}
