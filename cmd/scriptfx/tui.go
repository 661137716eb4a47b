package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/scriptfx/either"
	"github.com/mgomes/scriptfx/internal/auth"
	"github.com/mgomes/scriptfx/script"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	labelStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

const (
	emailField = iota
	passwordField
	fieldCount
)

// attempt is one submitted login and its outcome.
type attempt struct {
	email  string
	output string
	isErr  bool
}

// loginResultMsg carries the outcome of an Authenticate run back into Update.
type loginResultMsg attempt

type authenticateFunc func(auth.Credentials) loginResultMsg

type loginModel struct {
	inputs       [fieldCount]textinput.Model
	focus        int
	authenticate authenticateFunc
	attempts     []attempt
	pending      bool
	width        int
	height       int
	quitting     bool
	initialized  bool
}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "log in"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

func newLoginModel(authenticate authenticateFunc) loginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "email    "
	email.PromptStyle = labelStyle
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "password "
	password.PromptStyle = labelStyle
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	return loginModel{
		inputs:       [fieldCount]textinput.Model{email, password},
		focus:        emailField,
		authenticate: authenticate,
	}
}

// authenticator runs Authenticate against a's store on a's engine.
func authenticator(a *app) authenticateFunc {
	return func(creds auth.Credentials) loginResultMsg {
		out, err := script.Exec(context.Background(), a.engine, auth.Authenticate(creds), a.env)
		if err != nil {
			return loginResultMsg{email: creds.Email, output: err.Error(), isErr: true}
		}
		return either.Fold(out,
			func(f auth.Failure) loginResultMsg {
				return loginResultMsg{email: creds.Email, output: auth.Describe(f), isErr: true}
			},
			func(s auth.Session) loginResultMsg {
				return loginResultMsg{email: creds.Email, output: fmt.Sprintf("signed in as %s, token %s", s.User.Email, s.Token)}
			},
		)
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-14, 10)
		}
		m.initialized = true
		return m, nil

	case loginResultMsg:
		m.pending = false
		m.attempts = append(m.attempts, attempt(msg))
		if !msg.isErr {
			m.inputs[passwordField].SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.attempts = nil
			return m, nil

		case key.Matches(msg, keys.Next):
			return m.setFocus((m.focus + 1) % fieldCount), nil

		case key.Matches(msg, keys.Prev):
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil

		case key.Matches(msg, keys.Submit):
			if m.focus == emailField {
				return m.setFocus(passwordField), nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) setFocus(field int) loginModel {
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	m.focus = field
	return m
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.pending || m.authenticate == nil {
		return m, nil
	}
	creds := auth.Credentials{
		Email:    strings.TrimSpace(m.inputs[emailField].Value()),
		Password: m.inputs[passwordField].Value(),
	}
	m.pending = true
	run := m.authenticate
	return m, func() tea.Msg { return run(creds) }
}

func (m loginModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("scriptfx login") + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(max(m.width-2, 0), 60))) + "\n\n")

	form := make([]string, 0, fieldCount)
	for _, in := range m.inputs {
		form = append(form, in.View())
	}
	b.WriteString(borderStyle.Render(strings.Join(form, "\n")) + "\n\n")

	if m.pending {
		b.WriteString(mutedStyle.Render("  authenticating...") + "\n\n")
	}

	available := m.height - 12
	start := 0
	if available > 0 && len(m.attempts) > available {
		start = len(m.attempts) - available
	}
	for _, a := range m.attempts[start:] {
		b.WriteString(mutedStyle.Render("  › ") + a.email + "\n")
		if a.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+a.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+a.output) + "\n")
		}
	}
	if len(m.attempts) > 0 {
		b.WriteString("\n")
	}

	footer := helpKeyStyle.Render("tab") + helpDescStyle.Render(" next field  ") +
		helpKeyStyle.Render("enter") + helpDescStyle.Render(" log in  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("esc") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func runTUI(a *app) error {
	p := tea.NewProgram(newLoginModel(authenticator(a)), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
