package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VickGidi/Victory-furniture-bot/internal/models"
	"github.com/VickGidi/Victory-furniture-bot/internal/render"
)

// connectionErrText is the single user-visible text for every request or parse failure. No
// distinction between error kinds is surfaced.
const connectionErrText = "Error connecting to server."

// Message types for the TUI
type (
	replyMsg struct {
		text string
	}
	errMsg struct {
		err error
	}
)

// Sender posts one chat message and returns the reply. It is satisfied by client.Client.
type Sender interface {
	Send(ctx context.Context, message string) (string, error)
}

// Model represents the chat panel state: an append-only message list in a viewport above a
// textarea input. The input stays live while requests are in flight; each send runs its own
// request and replies append in arrival order.
type Model struct {
	sender Sender

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages []models.Message
	pending  int
	ready    bool
	plain    bool

	// Dimensions
	width  int
	height int
}

// NewModel creates a chat panel model over the given sender. With plain set, bot replies skip
// markdown rendering.
func NewModel(sender Sender, plain bool) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		sender:   sender,
		textarea: ta,
		spinner:  s,
		messages: []models.Message{},
		plain:    plain,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		inputHeight := 3
		statusHeight := 1

		vpHeight := m.height - headerHeight - inputHeight - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 2

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			return m.submit()
		}

	case replyMsg:
		m.pending--
		m.appendBot(msg.text)

	case errMsg:
		m.pending--
		m.appendBot(connectionErrText)

	case spinner.TickMsg:
		if m.pending > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// The textarea stays live while requests are in flight; sends are independent.
	if _, ok := msg.(tea.KeyMsg); ok {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs the send operation: trim, guard empty input, append the user message, clear the
// field, then issue the request. The user message renders before the request is made.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
		return m, tea.Quit
	}

	m.messages = append(m.messages, models.Message{
		Text:      input,
		Sender:    models.SenderUser,
		Timestamp: time.Now(),
	})
	m.updateViewport()
	m.viewport.GotoBottom()

	m.textarea.Reset()
	m.pending++

	return m, tea.Batch(
		m.send(input),
		m.spinner.Tick,
	)
}

func (m *Model) appendBot(text string) {
	m.messages = append(m.messages, models.Message{
		Text:      text,
		Sender:    models.SenderBot,
		Timestamp: time.Now(),
	})
	m.updateViewport()
	m.viewport.GotoBottom()
}

// send creates a command that posts the message. Each command is independent: concurrent sends
// are not sequenced, and replies arrive in whatever order the server answers.
func (m Model) send(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.sender.Send(context.Background(), text)
		if err != nil {
			return errMsg{err: err}
		}
		return replyMsg{text: reply}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 2

	header := lipgloss.JoinHorizontal(
		lipgloss.Center,
		titleStyle.Render("Victory Furniture"),
		hintStyle.Render("  •  "),
		hintStyle.Render("ask about products, categories, or branches"),
	)
	sections = append(sections, header, "")

	sections = append(sections, m.viewport.View())

	inputContent := m.textarea.View()
	if m.pending > 0 {
		inputContent = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", inputContent)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatusBar() string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return strings.Join(items, "  │  ")
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 4

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Sender == models.SenderUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Text)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := botLabelStyle.Render("✦ Victory")
			text := msg.Text
			if text == connectionErrText {
				text = errorTextStyle.Render(text)
			} else if !m.plain {
				rendered := render.Terminal(text, bubbleWidth)
				text = strings.TrimRight(rendered, "\n")
			}
			bubble := botBubbleStyle.Width(bubbleWidth).Render(text)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// Run starts the chat panel in the alternate screen.
func Run(sender Sender, plain bool) error {
	p := tea.NewProgram(
		NewModel(sender, plain),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
