package ui

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/units"
)

//go:embed templates
var templatesFS embed.FS

var funcMap = template.FuncMap{
	"flightTime": func(minutes int) string {
		return units.FlightTimeFromMinutes(minutes).String()
	},
	"stateLabel": func(s constants.PirepState) string {
		return s.Label()
	},
	"fareInput": func(fareID string) string {
		return constants.FarePrefix + fareID
	},
	"upper": strings.ToUpper,
	"add": func(a, b int) int {
		return a + b
	},
}

// RenderTemplate renders a page inside the base layout
func RenderTemplate(w http.ResponseWriter, templateName string, data map[string]interface{}) error {
	t, err := template.New("base.html").Funcs(funcMap).ParseFS(
		templatesFS,
		"templates/layouts/base.html",
		"templates/partials/*.html",
		"templates/"+templateName,
	)
	if err != nil {
		logging.Error("UI: failed to load template", "template", templateName, "error", err.Error())
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		logging.Error("UI: failed to render template", "template", templateName, "error", err.Error())
		return err
	}

	return nil
}

// RenderPartial renders just the "content" block of a template, for fragments loaded into a page
func RenderPartial(w http.ResponseWriter, templateName string, data map[string]interface{}) error {
	t, err := template.New("partial").Funcs(funcMap).ParseFS(templatesFS, "templates/"+templateName)
	if err != nil {
		logging.Error("UI: failed to load partial", "template", templateName, "error", err.Error())
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "content", data); err != nil {
		logging.Error("UI: failed to render partial", "template", templateName, "error", err.Error())
		return err
	}

	return nil
}
