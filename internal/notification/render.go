package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("notification").
	Funcs(template.FuncMap{"money": formatBudget}).
	ParseFS(templateFS, "templates/*.html"))

func formatBudget(b *float64) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("$%.2f", *b)
}

// Message is a rendered email.
type Message struct {
	Subject string
	Body    string
}

type templateData struct {
	Job
	JoinURL string
}

// Render builds the subject and HTML body for job.
func Render(job Job, appURL string) (Message, error) {
	var subject, name string
	data := templateData{Job: job}

	switch job.Kind {
	case KindAssignment:
		subject = fmt.Sprintf("🎯 Your Secret Santa assignment for %q", job.EventName)
		name = "assignment.html"
	case KindInvitation:
		subject = fmt.Sprintf("🎅 You're invited to %q Secret Santa!", job.EventName)
		name = "invitation.html"
		data.JoinURL = strings.TrimRight(appURL, "/") + "?code=" + url.QueryEscape(job.JoinCode)
	default:
		return Message{}, fmt.Errorf("unknown notification kind %q", job.Kind)
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", name, err)
	}
	return Message{Subject: subject, Body: body.String()}, nil
}
