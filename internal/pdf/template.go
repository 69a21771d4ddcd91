// Package pdf renders CV documents to HTML and prints them to PDF with a
// headless browser.
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jonathan/cv-studio/internal/cv"
)

// cvTemplate is the single-page layout. A header field renders only when its
// value is non-empty and its visibility flag is on.
var cvTemplate = template.Must(template.New("cv").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, serif; margin: 2.2em; color: #1a1a1a; }
  h1 { margin: 0; font-size: 1.9em; }
  h2 { border-bottom: 1px solid #999; font-size: 1.1em; text-transform: uppercase; letter-spacing: 0.08em; }
  .title { font-size: 1.1em; color: #444; margin-top: 0.2em; }
  .contact { font-size: 0.85em; color: #555; margin-top: 0.5em; }
  .contact span + span::before { content: " \2022  "; }
  .photo { float: right; max-width: 90px; border-radius: 4px; }
  .entry { margin-bottom: 0.8em; }
  .entry-head { display: flex; justify-content: space-between; }
  .entry-head .when { color: #666; font-size: 0.85em; }
  ul { margin: 0.3em 0 0 1.2em; padding: 0; }
  .skills dt { font-weight: bold; display: inline; }
  .skills dd { display: inline; margin: 0; }
</style>
</head>
<body>
{{- with .PersonalInfo}}
{{- if and .ShowPhoto .PhotoURL}}<img class="photo" src="{{.PhotoURL}}" alt="">{{end}}
{{- if and .ShowName .Name}}<h1>{{.Name}}</h1>{{end}}
{{- if and .ShowTitle .Title}}<div class="title">{{.Title}}</div>{{end}}
<div class="contact">
{{- if and .ShowPhone .Phone}}<span>{{.Phone}}</span>{{end}}
{{- if and .ShowEmail .Email}}<span>{{.Email}}</span>{{end}}
{{- if and .ShowLinkedIn .LinkedIn}}<span>{{.LinkedIn}}</span>{{end}}
{{- if and .ShowGitHub .GitHub}}<span>{{.GitHub}}</span>{{end}}
{{- if and .ShowPortfolio .Portfolio}}<span>{{.Portfolio}}</span>{{end}}
{{- if and .ShowAddress .Address}}<span>{{.Address}}</span>{{end}}
</div>
{{- end}}
{{- if .Summary}}
<h2>Summary</h2>
<p>{{.Summary}}</p>
{{- end}}
{{- if .Experience}}
<h2>Experience</h2>
{{- range .Experience}}
<div class="entry">
  <div class="entry-head"><strong>{{.JobTitle}}</strong><span class="when">{{.StartDate}} &ndash; {{.EndDate}}</span></div>
  <div>{{.Company}}{{if .Location}}, {{.Location}}{{end}}</div>
  {{- if .Responsibilities}}
  <ul>{{range .Responsibilities}}<li>{{.}}</li>{{end}}</ul>
  {{- end}}
</div>
{{- end}}
{{- end}}
{{- if .Education}}
<h2>Education</h2>
{{- range .Education}}
<div class="entry">
  <div class="entry-head"><strong>{{.Degree}}</strong><span class="when">{{.GraduationDate}}</span></div>
  <div>{{.Institution}}{{if .Location}}, {{.Location}}{{end}}</div>
  {{- if .Details}}
  <ul>{{range .Details}}<li>{{.}}</li>{{end}}</ul>
  {{- end}}
</div>
{{- end}}
{{- end}}
{{- if .Skills}}
<h2>Skills</h2>
<dl class="skills">
{{- range .Skills}}
<div><dt>{{.Category}}:</dt> <dd>{{range $i, $s := .Skills}}{{if $i}}, {{end}}{{$s}}{{end}}</dd></div>
{{- end}}
</dl>
{{- end}}
</body>
</html>`))

// RenderHTML produces the printable HTML for a document.
func RenderHTML(doc *cv.Document) (string, error) {
	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render cv template: %w", err)
	}
	return buf.String(), nil
}
