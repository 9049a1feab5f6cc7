package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/VickGidi/Victory-furniture-bot/internal/models"
)

type mockSender struct {
	reply string
	err   error

	sent []string
}

func (m *mockSender) Send(_ context.Context, message string) (string, error) {
	m.sent = append(m.sent, message)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func readyModel(t *testing.T, sender Sender) Model {
	t.Helper()
	m := NewModel(sender, true)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, ok := updated.(Model)
	if !ok {
		t.Fatal("Update did not return a Model")
	}
	return model
}

func pressEnter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(Model)
	if !ok {
		t.Fatal("Update did not return a Model")
	}
	return model, cmd
}

func TestSubmitEmptyInputIsNoOp(t *testing.T) {
	for _, input := range []string{"", "   "} {
		m := readyModel(t, &mockSender{})
		m.textarea.SetValue(input)

		m, cmd := pressEnter(t, m)

		if len(m.messages) != 0 {
			t.Errorf("input %q produced %d messages, want 0", input, len(m.messages))
		}
		if cmd != nil {
			t.Errorf("input %q produced a command, want none", input)
		}
		if m.textarea.Value() != input {
			t.Errorf("input %q was cleared to %q, want untouched", input, m.textarea.Value())
		}
		if m.pending != 0 {
			t.Errorf("input %q left %d pending sends", input, m.pending)
		}
	}
}

func TestSubmitRendersUserMessageBeforeResponse(t *testing.T) {
	m := readyModel(t, &mockSender{reply: "Hi there"})
	m.textarea.SetValue("  hello  ")

	m, cmd := pressEnter(t, m)

	if len(m.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(m.messages))
	}
	if m.messages[0].Sender != models.SenderUser || m.messages[0].Text != "hello" {
		t.Errorf("unexpected message: %+v", m.messages[0])
	}
	if m.textarea.Value() != "" {
		t.Errorf("textarea not cleared: %q", m.textarea.Value())
	}
	if cmd == nil {
		t.Error("no send command issued")
	}
	if m.pending != 1 {
		t.Errorf("pending = %d, want 1", m.pending)
	}
}

func TestReplyAppendsBotMessage(t *testing.T) {
	m := readyModel(t, &mockSender{})
	m.pending = 1

	updated, _ := m.Update(replyMsg{text: "Hi there"})
	m = updated.(Model)

	if len(m.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(m.messages))
	}
	if m.messages[0].Sender != models.SenderBot || m.messages[0].Text != "Hi there" {
		t.Errorf("unexpected message: %+v", m.messages[0])
	}
	if m.pending != 0 {
		t.Errorf("pending = %d, want 0", m.pending)
	}
}

func TestErrorAppendsFixedBotMessage(t *testing.T) {
	m := readyModel(t, &mockSender{})
	m.pending = 1

	updated, _ := m.Update(errMsg{err: errors.New("connection refused")})
	m = updated.(Model)

	if len(m.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(m.messages))
	}
	if m.messages[0].Sender != models.SenderBot {
		t.Errorf("error message sender = %v, want bot", m.messages[0].Sender)
	}
	if m.messages[0].Text != "Error connecting to server." {
		t.Errorf("error message text = %q", m.messages[0].Text)
	}
}

func TestConcurrentSendsKeepUserOrder(t *testing.T) {
	m := readyModel(t, &mockSender{reply: "ok"})

	m.textarea.SetValue("first")
	m, _ = pressEnter(t, m)
	m.textarea.SetValue("second")
	m, _ = pressEnter(t, m)

	if m.pending != 2 {
		t.Fatalf("pending = %d, want 2", m.pending)
	}
	if m.messages[0].Text != "first" || m.messages[1].Text != "second" {
		t.Errorf("user messages out of order: %+v", m.messages)
	}

	// Replies land in arrival order, regardless of which send they answer.
	updated, _ := m.Update(errMsg{err: errors.New("late failure")})
	m = updated.(Model)
	updated, _ = m.Update(replyMsg{text: "answer"})
	m = updated.(Model)

	if len(m.messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(m.messages))
	}
	if m.messages[2].Text != "Error connecting to server." || m.messages[3].Text != "answer" {
		t.Errorf("bot messages out of arrival order: %+v", m.messages[2:])
	}
	if m.pending != 0 {
		t.Errorf("pending = %d, want 0", m.pending)
	}
}

func TestSendCommand(t *testing.T) {
	sender := &mockSender{reply: "Hi there"}
	m := readyModel(t, sender)

	msg := m.send("hello")()
	reply, ok := msg.(replyMsg)
	if !ok {
		t.Fatalf("got %T, want replyMsg", msg)
	}
	if reply.text != "Hi there" {
		t.Errorf("reply = %q", reply.text)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "hello" {
		t.Errorf("sender got %v", sender.sent)
	}
}

func TestSendCommandError(t *testing.T) {
	m := readyModel(t, &mockSender{err: errors.New("boom")})

	msg := m.send("hello")()
	if _, ok := msg.(errMsg); !ok {
		t.Fatalf("got %T, want errMsg", msg)
	}
}

func TestViewportScrollsToBottom(t *testing.T) {
	m := readyModel(t, &mockSender{})

	for i := 0; i < 40; i++ {
		m.appendBot("a reasonably long line of content to fill the viewport")
	}

	if !m.viewport.AtBottom() {
		t.Error("viewport not at bottom after appends")
	}
}

func TestQuitCommands(t *testing.T) {
	for _, input := range []string{"exit", "quit", "/exit", "/quit"} {
		m := readyModel(t, &mockSender{})
		m.textarea.SetValue(input)

		m, cmd := pressEnter(t, m)

		if len(m.messages) != 0 {
			t.Errorf("quit command %q rendered messages", input)
		}
		if cmd == nil {
			t.Errorf("quit command %q produced no command", input)
		}
	}
}

func TestViewContainsStatusShortcuts(t *testing.T) {
	m := readyModel(t, &mockSender{})

	view := m.View()
	if !strings.Contains(view, "Send") || !strings.Contains(view, "Quit") {
		t.Error("status bar shortcuts missing from view")
	}
}
