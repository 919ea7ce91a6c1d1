package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
)

const inputModalWidth = 60

// InputModal is a single-line text input modal
type InputModal struct {
	visible bool
	busy    bool
	title   string
	hint    string
	errText string
	input   textinput.Model
}

// NewInputModal creates a new input modal
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.CharLimit = 300
	ti.Width = inputModalWidth - 2
	ti.Prompt = "> "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{input: ti}
}

// Show displays the modal with a title and placeholder
func (m *InputModal) Show(title, placeholder, hint string) tea.Cmd {
	m.visible = true
	m.busy = false
	m.title = title
	m.hint = hint
	m.errText = ""
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	return m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.busy = false
	m.input.Blur()
}

// SetBusy marks a submitted value as being processed
func (m *InputModal) SetBusy(busy bool) {
	m.busy = busy
}

// SetError shows a validation message under the input
func (m *InputModal) SetError(text string) {
	m.errText = text
	m.busy = false
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible || m.busy {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if m.input.Value() == "" {
				return m, nil, false
			}
			m.errText = ""
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}
	line := lipgloss.NewStyle().Width(inputModalWidth).Background(styles.SlateDark)

	rows := []string{
		line.Foreground(styles.White).Bold(true).Render(m.title),
		line.Render(""),
		line.Render(m.input.View()),
	}
	switch {
	case m.busy:
		rows = append(rows, line.Render(""), line.Foreground(styles.Marquee).Render("Searching..."))
	case m.errText != "":
		rows = append(rows, line.Render(""), line.Foreground(styles.Red).Render(m.errText))
	case m.hint != "":
		rows = append(rows, line.Render(""), line.Foreground(styles.DimGray).Render(m.hint))
	}

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
