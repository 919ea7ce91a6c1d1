package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
)

const loginModalWidth = 44

// LoginModal asks for admin credentials
type LoginModal struct {
	visible  bool
	busy     bool
	errText  string
	email    textinput.Model
	password textinput.Model
	focus    int // 0 email, 1 password
}

// NewLoginModal creates the modal
func NewLoginModal() LoginModal {
	email := textinput.New()
	email.Placeholder = "admin@example.com"
	email.Prompt = "Email    "
	email.CharLimit = 254
	email.Width = loginModalWidth - 10

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = loginModalWidth - 10

	for _, ti := range []*textinput.Model{&email, &password} {
		ti.PromptStyle = styles.DimStyle
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
	}
	return LoginModal{email: email, password: password}
}

// Show opens the modal with empty fields
func (m *LoginModal) Show() tea.Cmd {
	m.visible = true
	m.busy = false
	m.errText = ""
	m.email.SetValue("")
	m.password.SetValue("")
	m.focus = 0
	m.password.Blur()
	return m.email.Focus()
}

// Hide closes the modal and forgets the password
func (m *LoginModal) Hide() {
	m.visible = false
	m.busy = false
	m.password.SetValue("")
	m.email.Blur()
	m.password.Blur()
}

// SetBusy marks the credentials as submitted
func (m *LoginModal) SetBusy(busy bool) { m.busy = busy }

// SetError shows a failure under the fields
func (m *LoginModal) SetError(text string) {
	m.errText = text
	m.busy = false
	m.password.SetValue("")
}

// IsVisible returns whether the modal is shown
func (m LoginModal) IsVisible() bool { return m.visible }

// Credentials returns the entered email and password
func (m LoginModal) Credentials() (string, string) {
	return m.email.Value(), m.password.Value()
}

// Update handles input, returns (modal, cmd, submitted)
func (m LoginModal) Update(msg tea.Msg) (LoginModal, tea.Cmd, bool) {
	if !m.visible || m.busy {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Hide()
			return m, nil, false
		case "tab", "shift+tab", "up", "down":
			return m, m.toggleFocus(), false
		case "enter":
			if m.focus == 0 {
				return m, m.toggleFocus(), false
			}
			if m.email.Value() == "" || m.password.Value() == "" {
				return m, nil, false
			}
			return m, nil, true
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd, false
}

func (m *LoginModal) toggleFocus() tea.Cmd {
	if m.focus == 0 {
		m.focus = 1
		m.email.Blur()
		return m.password.Focus()
	}
	m.focus = 0
	m.password.Blur()
	return m.email.Focus()
}

// View renders the modal
func (m LoginModal) View() string {
	if !m.visible {
		return ""
	}
	line := lipgloss.NewStyle().Width(loginModalWidth).Background(styles.SlateDark)

	rows := []string{
		line.Foreground(styles.White).Bold(true).Render("Admin Login"),
		line.Render(""),
		line.Render(m.email.View()),
		line.Render(m.password.View()),
		line.Render(""),
	}
	switch {
	case m.busy:
		rows = append(rows, line.Foreground(styles.Marquee).Render("Signing in..."))
	case m.errText != "":
		rows = append(rows, line.Foreground(styles.Red).Render(m.errText))
	default:
		rows = append(rows, line.Foreground(styles.DimGray).Render("tab switch · enter submit · esc cancel"))
	}
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
