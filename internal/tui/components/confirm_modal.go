package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
)

// ConfirmModal shows a yes/no question
type ConfirmModal struct {
	visible bool
	prompt  string
}

// Show displays a prompt
func (m *ConfirmModal) Show(prompt string) {
	m.visible = true
	m.prompt = prompt
}

// Hide closes the modal
func (m *ConfirmModal) Hide() {
	m.visible = false
	m.prompt = ""
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool { return m.visible }

// View renders the modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}
	body := lipgloss.NewStyle().Width(48).Foreground(styles.White).Render(m.prompt)
	choices := styles.HelpKeyStyle.Render("[Y]") + styles.HelpDescStyle.Render(" Yes      ") +
		styles.HelpKeyStyle.Render("[N]") + styles.HelpDescStyle.Render(" No")
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Center, body, "", choices))
}
