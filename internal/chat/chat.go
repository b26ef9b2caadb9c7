package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tvanier/garmin-coach/internal/llm"
)

// message types

type streamChunkMsg struct {
	text string
}

type streamDoneMsg struct {
	reply string
	err   error
}

// model

type model struct {
	ctx        context.Context
	session    *llm.Chat
	input      textinput.Model
	transcript viewport.Model
	entries    []string // rendered transcript entries
	partial    string   // reply currently being streamed
	stream     chan tea.Msg
	streaming  bool
	lastReply  string
	status     string
	streamErr  error
	width      int
	height     int
	ready      bool
	quitting   bool
}

func initialModel(ctx context.Context, session *llm.Chat) model {
	ti := textinput.New()
	ti.Placeholder = "Ask about your runs..."
	ti.Focus()
	ti.Prompt = "You: "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 1024

	return model{
		ctx:        ctx,
		session:    session,
		input:      ti,
		transcript: viewport.New(0, 0),
		status:     "Connected. Ask away.",
	}
}

// Run starts the interactive chat TUI and blocks until the user quits or a
// remote failure ends the session.
func Run(ctx context.Context, session *llm.Chat) error {
	p := tea.NewProgram(initialModel(ctx, session), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		// An external interrupt cancels ctx and kills the program; report
		// the cancellation so the caller can exit cleanly.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("chat: %w", err)
	}
	fm := finalModel.(model)
	return fm.streamErr
}

// Init starts the cursor blink.
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// Resize in place so the scroll position survives terminal resizes.
		m.transcript.Width = m.panelWidth()
		m.transcript.Height = m.panelHeight()
		m.setTranscript()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Send):
			if m.streaming {
				return m, nil
			}
			message := strings.TrimSpace(m.input.Value())
			if message == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.entries = append(m.entries, styleUserLabel.Render("You: ")+message)
			return m.startStream(message)

		case key.Matches(msg, keys.CopyAnswer):
			if m.lastReply == "" {
				return m, nil
			}
			if err := clipboard.WriteAll(m.lastReply); err != nil {
				m.status = "Clipboard unavailable"
			} else {
				m.status = "Copied last answer to clipboard"
			}
			return m, nil

		case key.Matches(msg, keys.ScrollUp):
			m.transcript.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.ScrollDn):
			m.transcript.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.transcript.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.transcript.LineDown(m.panelHeight())
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case streamChunkMsg:
		m.partial += msg.text
		m.refreshTranscript()
		return m, waitForStream(m.stream)

	case streamDoneMsg:
		m.streaming = false
		m.partial = ""
		m.stream = nil
		if msg.err != nil {
			// Remote failures are fatal to the session, not retried.
			m.streamErr = fmt.Errorf("chat: %w", msg.err)
			m.quitting = true
			return m, tea.Quit
		}
		m.lastReply = msg.reply
		m.entries = append(m.entries, styleCoachLabel.Render("Coach: ")+msg.reply)
		m.status = "Connected. Ask away."
		m.refreshTranscript()
		return m, nil
	}

	return m, nil
}

// View renders the transcript panel, input row, and status bar.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	panel := stylePanelBorder.
		Width(m.panelWidth()).
		Height(m.panelHeight()).
		Render(m.transcript.View())

	return lipgloss.JoinVertical(lipgloss.Left, panel, m.input.View(), m.statusBar())
}

// helper methods

func (m model) startStream(message string) (model, tea.Cmd) {
	ch := make(chan tea.Msg, 16)
	m.stream = ch
	m.streaming = true
	m.partial = ""
	m.status = "Thinking..."
	m.refreshTranscript()

	session := m.session
	ctx := m.ctx
	go func() {
		reply, err := session.Send(ctx, message, func(chunk string) {
			ch <- streamChunkMsg{text: chunk}
		})
		ch <- streamDoneMsg{reply: reply, err: err}
		close(ch)
	}()
	return m, waitForStream(ch)
}

// waitForStream delivers the next streamed message to the update loop.
func waitForStream(ch chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return <-ch
	}
}

// setTranscript re-wraps the transcript for the current viewport width
// without moving the scroll position.
func (m *model) setTranscript() {
	entries := m.entries
	if m.streaming {
		entries = append(entries, styleCoachLabel.Render("Coach: ")+m.partial)
	}
	wrap := lipgloss.NewStyle().Width(m.transcript.Width)
	content := wrap.Render(strings.Join(entries, "\n\n"))
	m.transcript.SetContent(content)
}

func (m *model) refreshTranscript() {
	m.setTranscript()
	m.transcript.GotoBottom()
}

func (m model) panelWidth() int {
	if m.width <= 0 {
		return 80
	}
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (2)
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) statusBar() string {
	parts := []string{
		m.status,
		"C-y copy answer",
		"C-u/C-d scroll",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
