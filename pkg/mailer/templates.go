package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names accepted in EmailJob.Template.
const (
	Welcome        = "welcome"
	AccountDeleted = "account_deleted"
)

var tmpl = template.Must(template.New("email").Parse(`
{{define "welcome"}}
<h2>Welcome to DevLink, {{.Name}}!</h2>
<p>Your account is ready. Set up your developer profile to get found by other members.</p>
{{end}}
{{define "account_deleted"}}
<h2>Goodbye, {{.Name}}</h2>
<p>Your DevLink account and profile have been deleted. We're sorry to see you go.</p>
{{end}}
`))

// Render produces subject, text and html bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	var buf bytes.Buffer
	if err = tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", "", "", fmt.Errorf("render %s: %w", name, err)
	}
	html = buf.String()
	switch name {
	case Welcome:
		subject = "Welcome to DevLink"
		text = fmt.Sprintf("Welcome to DevLink, %v! Your account is ready.", data["Name"])
	case AccountDeleted:
		subject = "Your DevLink account was deleted"
		text = fmt.Sprintf("Goodbye, %v. Your account and profile have been deleted.", data["Name"])
	default:
		subject = "Notification"
	}
	return subject, text, html, nil
}
