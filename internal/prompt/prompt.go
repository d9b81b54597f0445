// Package prompt renders the generation prompts sent to the LLM. Templates
// are embedded Go text/templates; nothing here inspects the model's answer.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"webforge/internal/discover"
)

// Params feed the GUI and API prompt templates.
type Params struct {
	AppURL       string
	Page         *discover.PageInfo
	Endpoints    []discover.Endpoint
	UserJourneys []string
	MaxTestCases int
}

const guiTemplate = `Generate end-to-end GUI test cases for the web application at {{.AppURL}}.

Page title: {{.Page.Title}}
Forms: {{len .Page.Forms}}
{{- range .Page.Forms}}
  - {{.Selector}} ({{len .Inputs}} inputs)
{{- end}}
Links: {{len .Page.Links}}
Inputs: {{len .Page.Inputs}}
{{- if .UserJourneys}}

User journeys to cover:
{{- range .UserJourneys}}
  - {{.}}
{{- end}}
{{- end}}

Return a JSON array of at most {{.MaxTestCases}} test cases. Each test case
must have: id, name, description, category, priority (critical|high|medium|low),
tags, steps (action, selector, value, description) and assertions
(type, selector, expected, operator). Return JSON only, no commentary.`

const apiTemplate = `Generate API test cases for the endpoints below.

{{- range .Endpoints}}
{{.Method}} {{.URL}}{{if .Status}} -> {{.Status}}{{end}}
{{- end}}
{{- if .UserJourneys}}

User journeys to cover:
{{- range .UserJourneys}}
  - {{.}}
{{- end}}
{{- end}}

Return a JSON array of at most {{.MaxTestCases}} test cases. Each test case
must have: id, name, description, category, priority, tags, method, endpoint,
expectedStatus and assertions (type, target, expected, operator). Cover happy
paths, error responses and input validation. Return JSON only, no commentary.`

var (
	guiTmpl = template.Must(template.New("gui").Parse(guiTemplate))
	apiTmpl = template.Must(template.New("api").Parse(apiTemplate))
)

// GUI renders the GUI-suite generation prompt.
func GUI(p Params) (string, error) {
	if p.Page == nil {
		p.Page = &discover.PageInfo{}
	}
	return render(guiTmpl, p)
}

// API renders the API-suite generation prompt.
func API(p Params) (string, error) {
	return render(apiTmpl, p)
}

func render(tmpl *template.Template, p Params) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("execute prompt template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
