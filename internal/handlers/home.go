package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/VickGidi/Victory-furniture-bot/internal/render"
)

type homePageData struct {
	Title   string
	Welcome template.HTML
}

// HandleHome serves the chat page hosting the widget. The initial bot greeting is rendered into
// the page server-side so the conversation view is never empty on load.
func (m Main) HandleHome(w http.ResponseWriter, r *http.Request) {
	greeting, err := m.responder.Reply(r.Context(), "")
	if err != nil {
		m.logger.Error("Failed to get greeting", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	html, err := render.HTML(greeting)
	if err != nil {
		m.logger.Error("Failed to render greeting", slog.String(errLoggerKey, err.Error()))
		html = greeting
	}

	data := homePageData{
		Title:   "Victory Furniture",
		Welcome: template.HTML(html),
	}

	if err := m.templates.ExecuteTemplate(w, "home.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
