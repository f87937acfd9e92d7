package notify

import (
	"bytes"
	"html/template"
	"strings"
)

var templates = template.Must(template.New("email").Parse(`
{{define "otp"}}<p>Hello {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Your one-time password is:</p>
<h2 style="letter-spacing:4px">{{.Code}}</h2>
<p>It expires in {{.ExpiryMinutes}} minutes. If you did not request it, ignore this email.</p>{{end}}

{{define "welcome"}}<p>Welcome to Yukti Platform, {{.Name}}!</p>
<p>Your signup for <strong>{{.CompanyName}}</strong> was received and is pending approval.
We will email you as soon as your company is approved.</p>{{end}}

{{define "invitation"}}<p>Hello {{.Name}},</p>
<p>{{if .InviterName}}{{.InviterName}} has invited you{{else}}You have been invited{{end}} to join <strong>{{.CompanyName}}</strong> on Yukti Platform as <em>{{.Role}}</em>.</p>
{{if .Message}}<blockquote>{{.Message}}</blockquote>{{end}}
<p><a href="{{.URL}}">Accept invitation</a></p>
{{if .Code}}<p>Your verification code is <strong>{{.Code}}</strong>.</p>{{end}}
<p>This invitation expires on {{.ExpiresAt.Format "2 Jan 2006 15:04 MST"}}.</p>{{end}}

{{define "approval"}}<p>Hello {{.Name}},</p>
<p>Great news: <strong>{{.CompanyName}}</strong> has been approved.</p>
<p>Your dashboard is ready at <a href="{{.DashboardURL}}">{{.DashboardURL}}</a>.</p>{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
