package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rsekulic/videoteka-v1/internal/catalog"
	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
)

// RenderToasts stacks the visible toasts, newest last
func RenderToasts(toasts []catalog.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	rows := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := styles.ToastSuccessStyle
		switch t.Severity {
		case domain.SeverityInfo:
			style = styles.ToastInfoStyle
		case domain.SeverityError:
			style = styles.ToastErrorStyle
		}
		rows = append(rows, style.Render(styles.Truncate(t.Text, max(width-4, 10))))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}
