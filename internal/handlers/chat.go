package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/VickGidi/Victory-furniture-bot/internal/models"
	"github.com/VickGidi/Victory-furniture-bot/internal/render"
)

// HandleChat processes one chat exchange through an HTTP POST request. It expects a JSON body
// of the form {"message": "<text>"} and answers with {"reply": "<html>"}.
//
// An empty or whitespace-only message is answered with the greeting, matching the behavior the
// widget relies on. The reply markdown produced by the responder is rendered to HTML before it
// leaves the server; if rendering fails the raw markdown is sent instead so the exchange still
// completes. A well-formed request never gets a non-2xx status.
func (m Main) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.logger.Error("Method not allowed", slog.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID := uuid.New().String()

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.logger.Error("Failed to decode chat request",
			slog.String("requestID", reqID),
			slog.String(errLoggerKey, err.Error()))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := m.responder.Reply(r.Context(), req.Message)
	if err != nil {
		m.logger.Error("Responder failed",
			slog.String("requestID", reqID),
			slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	html, err := render.HTML(reply)
	if err != nil {
		m.logger.Error("Failed to render reply",
			slog.String("requestID", reqID),
			slog.String(errLoggerKey, err.Error()))
		html = reply
	}

	m.logger.Debug("Chat exchange",
		slog.String("requestID", reqID),
		slog.Int("messageLen", len(req.Message)),
		slog.Int("replyLen", len(reply)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(models.ChatResponse{Reply: html, ReplyMarkdown: reply}); err != nil {
		m.logger.Error("Failed to encode chat response",
			slog.String("requestID", reqID),
			slog.String(errLoggerKey, err.Error()))
	}
}
