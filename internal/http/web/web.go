// Package web holds the embedded HTML templates.
package web

import (
	"embed"
	"html/template"
	"net/url"
	"strings"

	"fleetlog/internal/domain"
	"fleetlog/internal/services"
	"fleetlog/internal/utils"
)

//go:embed templates/*.tmpl
var files embed.FS

// Funcs are the helpers available to every page.
var Funcs = template.FuncMap{
	"money":      utils.FormatMoney,
	"num":        utils.FormatNumber,
	"join":       strings.Join,
	"monthLabel": services.MonthLabel,
	"category":   func(c domain.RouteCategory) string { return c.Label() },
	"export":     exportURL,
	"doc":        func(name string) string { return "/documents/" + url.PathEscape(name) },
	"inc":        func(i int) int { return i + 1 },
	"dict":       dict,
}

// dict builds a map from alternating keys and values so a partial can take
// more than one argument.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			m[k] = kv[i+1]
		}
	}
	return m
}

// exportURL links an export with the page's current filters kept.
func exportURL(kind, query, format string) template.URL {
	v, _ := url.ParseQuery(query)
	v.Set("format", format)
	return template.URL("/export/" + kind + "?" + v.Encode())
}

// Templates parses every page. Pages are addressed by file name, for
// example "employees.tmpl".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.tmpl")
}
