package mailing

import (
	"bytes"
	"html/template"
)

type ReminderLine struct {
	Name  string
	Label string
	Date  string
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`<p>Hi {{.Name}},</p>
{{if .Critical}}<p><strong>Use these first:</strong></p>
<ul>{{range .Critical}}<li>{{.Name}} ({{.Label}}{{if .Date}}, {{.Date}}{{end}})</li>{{end}}</ul>{{end}}
{{if .Warning}}<p>Coming up soon:</p>
<ul>{{range .Warning}}<li>{{.Name}} ({{.Label}}{{if .Date}}, {{.Date}}{{end}})</li>{{end}}</ul>{{end}}
<p><a href="{{.AppURL}}">Open your pantry</a></p>`))

// ExpiryReminderBody renders the HTML body of the pantry expiry reminder.
func ExpiryReminderBody(name, appURL string, critical, warning []ReminderLine) (string, error) {
	var buf bytes.Buffer
	err := reminderTemplate.Execute(&buf, struct {
		Name     string
		AppURL   string
		Critical []ReminderLine
		Warning  []ReminderLine
	}{name, appURL, critical, warning})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
