package chi

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/culturegraph/reconcile/internal/domain/record"
)

// Preview pages are small standalone HTML documents sized for the
// 600x400 iframe advertised in the manifest.

var previewTemplates = template.Must(template.New("preview").Parse(`
{{define "head"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: sans-serif; margin: 16px; font-size: 14px; }
h2 { margin: 0 0 4px 0; }
.kind { color: #666; margin-bottom: 12px; }
table { border-collapse: collapse; }
td { padding: 2px 12px 2px 0; vertical-align: top; }
td.label { color: #666; white-space: nowrap; }
img { max-width: 180px; float: right; margin-left: 12px; }
</style>
</head>
<body>{{end}}
{{define "foot"}}</body>
</html>{{end}}

{{define "museum"}}{{template "head"}}
<h2>{{.Name}}</h2>
<div class="kind">Museum/Institution</div>
<table>
{{if .LegalName}}<tr><td class="label">Legal name</td><td>{{.LegalName}}</td></tr>{{end}}
{{if .AlternateName}}<tr><td class="label">Also known as</td><td>{{.AlternateName}}</td></tr>{{end}}
{{if .MuseumType}}<tr><td class="label">Type</td><td>{{.MuseumType}}</td></tr>{{end}}
{{if .StreetAddress}}<tr><td class="label">Address</td><td>{{.StreetAddress}}</td></tr>{{end}}
{{if .City}}<tr><td class="label">City</td><td>{{.City}}{{if .State}}, {{.State}}{{end}} {{.Zip}}</td></tr>{{end}}
{{if .Phone}}<tr><td class="label">Phone</td><td>{{.Phone}}</td></tr>{{end}}
</table>
{{template "foot"}}{{end}}

{{define "artist"}}{{template "head"}}
<h2>{{.Name}}</h2>
<div class="kind">Artist/Creator</div>
<table>
{{if .Nationality}}<tr><td class="label">Nationality</td><td>{{.Nationality}}</td></tr>{{end}}
{{if .BirthYear}}<tr><td class="label">Born</td><td>{{.BirthYear}}</td></tr>{{end}}
{{if .DeathYear}}<tr><td class="label">Died</td><td>{{.DeathYear}}</td></tr>{{end}}
{{if .Bio}}<tr><td class="label">Bio</td><td>{{.Bio}}</td></tr>{{end}}
{{if .WikiQID}}<tr><td class="label">Wikidata</td><td><a href="https://www.wikidata.org/wiki/{{.WikiQID}}">{{.WikiQID}}</a></td></tr>{{end}}
{{if .ULAN}}<tr><td class="label">Getty ULAN</td><td><a href="https://vocab.getty.edu/ulan/{{.ULAN}}">{{.ULAN}}</a></td></tr>{{end}}
</table>
{{template "foot"}}{{end}}

{{define "artifact"}}{{template "head"}}
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="">{{end}}
<h2>{{if .Title}}{{.Title}}{{else}}Untitled{{end}}</h2>
<div class="kind">Cultural Artifact</div>
<table>
{{if .Artist}}<tr><td class="label">Artist</td><td>{{.Artist}}</td></tr>{{end}}
{{if .Date}}<tr><td class="label">Date</td><td>{{.Date}}</td></tr>{{end}}
{{if .Medium}}<tr><td class="label">Medium</td><td>{{.Medium}}</td></tr>{{end}}
{{if .Dimensions}}<tr><td class="label">Dimensions</td><td>{{.Dimensions}}</td></tr>{{end}}
{{if .Classification}}<tr><td class="label">Classification</td><td>{{.Classification}}</td></tr>{{end}}
{{if .Department}}<tr><td class="label">Department</td><td>{{.Department}}</td></tr>{{end}}
{{if .AccessionNumber}}<tr><td class="label">Accession</td><td>{{.AccessionNumber}}</td></tr>{{end}}
{{if .CreditLine}}<tr><td class="label">Credit</td><td>{{.CreditLine}}</td></tr>{{end}}
{{if .URL}}<tr><td class="label">Link</td><td><a href="{{.URL}}">Collection page</a></td></tr>{{end}}
</table>
{{template "foot"}}{{end}}
`))

// renderPreview produces the HTML preview for a record.
func renderPreview(rec record.Record) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch r := rec.(type) {
	case *record.Museum:
		err = previewTemplates.ExecuteTemplate(&buf, "museum", r)
	case *record.Artist:
		err = previewTemplates.ExecuteTemplate(&buf, "artist", r)
	case *record.Artifact:
		err = previewTemplates.ExecuteTemplate(&buf, "artifact", r)
	default:
		return nil, fmt.Errorf("no preview for record variant %T", rec)
	}
	if err != nil {
		return nil, fmt.Errorf("render preview %s: %w", rec.ID(), err)
	}
	return buf.Bytes(), nil
}
