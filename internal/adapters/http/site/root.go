// Package site serves the embedded documentation pages under /docs/.
package site

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/okian/courtzones/internal/domain/zone"
)

// ErrServe is returned when a page cannot be rendered.
var ErrServe = errors.New("docs site serve failed")

var zonesPage = template.Must(template.New("zones").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>courtzones zones</title><link rel="stylesheet" href="style.css"></head>
<body>
<h1>Zones</h1>
<p>Shots are grouped into these zones, in this order, from their range, area and basic tags.</p>
<table>
<tr><th>#</th><th>Name</th><th>Display</th></tr>
{{range $i, $z := .}}<tr><td>{{$i}}</td><td><code>{{$z.String}}</code></td><td>{{$z.Display}}</td></tr>
{{end}}</table>
<p><a href="./">Back</a></p>
</body>
</html>
`))

// Register attaches the documentation routes to mux.
//
//	GET /docs        -> redirect to /docs/
//	GET /docs/       -> embedded static pages
//	GET /docs/zones  -> zone catalogue
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/docs/", http.StripPrefix("/docs/", http.FileServer(FS())))
	mux.HandleFunc("/docs/zones", HandleZones)
	mux.Handle("/docs", http.RedirectHandler("/docs/", http.StatusMovedPermanently))
}

// HandleZones renders the zone catalogue page.
func HandleZones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := zonesPage.Execute(w, zone.Labels()); err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
	}
}
