package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
)

// RenderTabs renders the category tabs with the active one highlighted
func RenderTabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == active {
			parts[i] = styles.ActiveTabStyle.Render(label)
		} else {
			parts[i] = styles.TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderChips renders the genre bar, cut to width
func RenderChips(labels []string, active, width int) string {
	var b strings.Builder
	used := 0
	for i, label := range labels {
		style := styles.ChipStyle
		if i == active {
			style = styles.ActiveChipStyle
		}
		chip := style.Render(label)
		w := lipgloss.Width(chip)
		if width > 0 && used+w > width {
			break
		}
		b.WriteString(chip)
		used += w
	}
	return b.String()
}
