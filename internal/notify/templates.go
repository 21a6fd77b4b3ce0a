package notify

import (
	"fmt"
	"strings"
	"text/template"
)

type messageTemplate struct {
	subject *template.Template
	body    *template.Template
}

var templates = map[Kind]messageTemplate{
	KindSubmitted: mustTemplate(
		"Application Received",
		`Dear {{.name}},

We have received your application for the {{.program}} program (attempt #{{.attempt}}).
Our HR team will review it and get back to you.

Thank you for applying.`),
	KindHRAlert: mustTemplate(
		"New Application Submitted",
		`A new application was submitted by {{.name}} for the {{.program}} program (attempt #{{.attempt}}).
Please review it in the HR dashboard.`),
	KindApproved: mustTemplate(
		"Application Approved",
		`Dear {{.name}},

Your application for the {{.program}} program has been approved.
{{if .notes}}HR notes: {{.notes}}
{{end}}You will be contacted to schedule your teaching demo.`),
	KindRejected: mustTemplate(
		"Application Update",
		`Dear {{.name}},

After careful review, your application for the {{.program}} program was not approved at this time.
{{if .notes}}HR notes: {{.notes}}
{{end}}You may submit a new application in the future.`),
	KindDemoScheduled: mustTemplate(
		"Teaching Demo Scheduled",
		`Dear {{.name}},

Your teaching demo for the {{.program}} program has been scheduled for {{.schedule}}.
Please arrive prepared and on time.`),
	KindResults: mustTemplate(
		"Evaluation Results",
		`Dear {{.name}},

Your evaluation for the {{.program}} program is complete.

Score breakdown:
{{.breakdown}}
Overall: {{.percentage}}%, result: {{.result}}`),
	KindRequirementRequested: mustTemplate(
		"Pre-Employment Document Required",
		`Dear {{.name}},

Please submit the following document to continue your pre-employment process: {{.requirement}}.`),
	KindRequirementReviewed: mustTemplate(
		"Pre-Employment Document Reviewed",
		`Dear {{.name}},

Your document "{{.requirement}}" has been reviewed: {{.status}}.
{{if .remarks}}Remarks: {{.remarks}}
{{end}}`),
}

func mustTemplate(subject, body string) messageTemplate {
	return messageTemplate{
		subject: template.Must(template.New("subject").Parse(subject)),
		body:    template.Must(template.New("body").Parse(body)),
	}
}

// Render produces the subject and body for an event.
func Render(event Event) (subject, body string, err error) {
	tmpl, ok := templates[event.Kind]
	if !ok {
		return "", "", fmt.Errorf("no template registered for notification kind %q", event.Kind)
	}
	var sb, bb strings.Builder
	if err := tmpl.subject.Execute(&sb, event.Data); err != nil {
		return "", "", fmt.Errorf("rendering subject for %s: %w", event.Kind, err)
	}
	if err := tmpl.body.Execute(&bb, event.Data); err != nil {
		return "", "", fmt.Errorf("rendering body for %s: %w", event.Kind, err)
	}
	return sb.String(), bb.String(), nil
}
