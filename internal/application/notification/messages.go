package notification

import (
	"bytes"
	"fmt"
	"text/template"

	"garage/internal/infrastructure/telegram"
)

var funcs = template.FuncMap{
	"esc": telegram.EscapeHTML,
}

var statusTelegramTmpl = template.Must(template.New("status_telegram").Funcs(funcs).Parse(
	`<b>{{esc .Headline}}</b>
Order: <code>{{esc .Number}}</code>
Client: {{esc .Client}}
Vehicle: {{esc .Vehicle}}
Center: {{esc .Center}}
Status: {{if .From}}{{esc .From}} → {{end}}{{esc .To}}
Total: {{esc .Total}}{{if .Reason}}
Reason: {{esc .Reason}}{{end}}`))

var completedEmailTmpl = template.Must(template.New("completed_email").Parse(
	`# Your vehicle is ready

Hello {{.Client}},

The service order **{{.Number}}** for your {{.Vehicle}} was completed at {{.Center}} on {{.When}}.

| Order | Total |
|-------|-------|
| {{.Number}} | {{.Total}} |

You can pick up your vehicle during business hours.
`))

var agendaTelegramTmpl = template.Must(template.New("agenda_telegram").Funcs(funcs).Parse(
	`<b>Agenda for {{esc .Day}}</b> ({{len .Lines}} orders)
{{range .Lines}}
{{esc .Time}} <code>{{esc .Number}}</code> {{esc .Client}}, {{esc .Vehicle}} ({{esc .Center}}){{end}}`))

// statusView is the flattened data shared by every status template.
type statusView struct {
	Headline string
	Number   string
	Client   string
	Vehicle  string
	Center   string
	From     string
	To       string
	Total    string
	Reason   string
	When     string
}

type agendaLine struct {
	Time    string
	Number  string
	Client  string
	Vehicle string
	Center  string
}

type agendaView struct {
	Day   string
	Lines []agendaLine
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
