package handlers

import (
	"context"
	"html/template"
	"log/slog"

	victorybot "github.com/VickGidi/Victory-furniture-bot"
)

const errLoggerKey = "err"

// Responder produces the reply for one user message. It accepts a context and the raw message
// text, returning the reply as markdown.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Main handles the core functionality of the chat application, managing HTML templates and the
// interaction between HTTP requests and the answer engine.
type Main struct {
	templates *template.Template

	responder Responder

	logger *slog.Logger
}

// NewMain creates a new Main instance with the provided Responder. It parses the required HTML
// templates from the embedded filesystem.
func NewMain(responder Responder, logger *slog.Logger) (Main, error) {
	// We parse templates from two distinct directories to separate layout from pages
	tmpl, err := template.ParseFS(
		victorybot.TemplateFS,
		"templates/layout/*.html",
		"templates/pages/*.html",
	)
	if err != nil {
		return Main{}, err
	}

	return Main{
		templates: tmpl,
		responder: responder,
		logger:    logger.With(slog.String("module", "handlers")),
	}, nil
}
