// Package tui provides the interactive chat session for the matchengine CLI.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driving"
)

// Styles for the chat transcript.
var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	matchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// replyMsg carries an assistant response back into the update loop.
type replyMsg struct {
	resp *domain.AssistantResponse
	err  error
}

// Model is the interactive chat session.
type Model struct {
	ctx       context.Context
	assistant driving.Assistant
	userID    string

	input    textinput.Model
	spinner  spinner.Model
	lines    []string
	waiting  bool
	quitting bool
}

// New creates a chat session model. ctx bounds every assistant call the
// session makes; cancelling it abandons any in-flight provider request.
func New(ctx context.Context, assistant driving.Assistant, userID string) *Model {
	input := textinput.New()
	input.Placeholder = "Describe what you need, e.g. \"I need a React developer\""
	input.Focus()
	input.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:       ctx,
		assistant: assistant,
		userID:    userID,
		input:     input,
		spinner:   sp,
	}
}

// Run starts the interactive chat session and blocks until it exits. When
// the session ends, any provider call still in flight is cancelled.
func Run(assistant driving.Assistant, userID string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := tea.NewProgram(New(ctx, assistant, userID)).Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			message := strings.TrimSpace(m.input.Value())
			if message == "" {
				return m, nil
			}
			m.lines = append(m.lines, userStyle.Render("you: ")+message)
			m.input.Reset()
			m.waiting = true
			return m, tea.Batch(m.spinner.Tick, m.send(message))
		}

	case replyMsg:
		m.waiting = false
		m.lines = append(m.lines, m.renderReply(msg)...)
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.waiting {
		b.WriteString(m.spinner.View())
		b.WriteString(" thinking...\n")
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: send • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// send dispatches the message to the assistant off the update loop.
func (m *Model) send(message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.assistant.Chat(m.ctx, m.userID, message)
		return replyMsg{resp: resp, err: err}
	}
}

// renderReply formats one assistant reply (or failure) for the transcript.
func (m *Model) renderReply(msg replyMsg) []string {
	if errors.Is(msg.err, domain.ErrNoProvidersAvailable) {
		return []string{assistantStyle.Render("assistant: ") + domain.UnavailableMessage}
	}
	if msg.err != nil {
		return []string{errorStyle.Render("error: " + msg.err.Error())}
	}

	resp := msg.resp
	lines := []string{assistantStyle.Render("assistant: ") + resp.Content}

	for i, match := range resp.Matches {
		lines = append(lines, matchStyle.Render(fmt.Sprintf(
			"  %d. freelancer #%d (score %d) %s",
			i+1, match.FreelancerID, match.Score, strings.Join(match.Reasons, "; "))))
	}

	meta := resp.Metadata
	if meta.Provider != "" {
		tag := fmt.Sprintf("[%s/%s]", meta.Provider, meta.Model)
		if meta.Fallback {
			tag = fmt.Sprintf("[%s/%s fallback]", meta.Provider, meta.Model)
		}
		lines = append(lines, metaStyle.Render("  "+tag))
	}
	return lines
}
