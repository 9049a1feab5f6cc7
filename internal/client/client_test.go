package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VickGidi/Victory-furniture-bot/internal/client"
)

func TestSend(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply": "Hi there"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	reply, err := c.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if reply != "Hi there" {
		t.Errorf("Send() = %q, want %q", reply, "Hi there")
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotPath != "/api/chat" {
		t.Errorf("path = %q, want /api/chat", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["message"] != "hello" {
		t.Errorf("message field = %q, want %q", gotBody["message"], "hello")
	}
}

func TestSendPrefersMarkdownField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"reply": "<p>hello</p>", "replyMarkdown": "hello"}`))
	}))
	defer srv.Close()

	reply, err := client.New(srv.URL).Send(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply != "hello" {
		t.Errorf("Send() = %q, want the markdown field", reply)
	}
}

func TestSendErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "non-JSON body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>not json</html>"))
			},
		},
		{
			name: "missing reply field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"status": "ok"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			if _, err := client.New(srv.URL).Send(context.Background(), "hi"); err == nil {
				t.Error("Send() succeeded, want error")
			}
		})
	}
}

func TestSendConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := client.New(url).Send(context.Background(), "hi"); err == nil {
		t.Error("Send() succeeded against a closed server, want error")
	}
}
