package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rsekulic/videoteka-v1/internal/catalog"
	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/tui/components"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	toasts := components.RenderToasts(m.Toasts.Active(time.Now()), m.Width)

	contentHeight := m.Height - lipgloss.Height(header) - ChromeHeight
	if toasts != "" {
		contentHeight -= lipgloss.Height(toasts)
	}
	contentHeight = max(contentHeight, 5)

	listWidth := max(m.Width*ListColumnPercent/100, MinColumnWidth)
	inspectorWidth := max(m.Width-listWidth, MinColumnWidth)

	m.List.SetSize(listWidth, contentHeight)
	m.List.SetFocused(m.State == StateBrowsing && !m.detailOpen)
	m.Inspector.SetSize(inspectorWidth, contentHeight)

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.List.View(), m.Inspector.View())

	sections := []string{header, content}
	if toasts != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(m.Width, lipgloss.Right, toasts))
	}
	sections = append(sections, footer)
	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if modal := m.activeModal(); modal != "" {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "))
	}
	return screen
}

// activeModal returns the rendered modal for the current state, if any
func (m Model) activeModal() string {
	switch m.State {
	case StateConfirm:
		return m.ConfirmModal.View()
	case StateAdding:
		return m.AddModal.View()
	case StateLogin:
		return m.LoginModal.View()
	}
	return ""
}

// renderHeader renders the title bar, tabs, genre chips and search line
func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("Videoteka")

	badge := styles.DemoBadgeStyle.Render("Viewing Local Samples")
	if !m.Svc.DemoMode() {
		badge = styles.LiveBadgeStyle.Render("Live Records")
	}

	top := title + " " + badge
	if m.Svc.Admin() {
		top += " " + m.renderAdminPanel()
	}

	tabs := components.RenderTabs(categoryLabels(), m.categoryIdx)
	chips := components.RenderChips(catalog.Genres, m.genreIdx, m.Width)

	var search string
	switch {
	case m.State == StateSearching:
		search = m.Search.View()
	case m.Filter.Query != "":
		search = styles.FilterPromptStyle.Render("/ ") + styles.FilterStyle.Render(m.Filter.Query)
	default:
		search = styles.DimStyle.Render("/ search")
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, tabs, chips, search)
}

// renderAdminPanel shows collection stats and the maintenance hints
func (m Model) renderAdminPanel() string {
	stats := m.Svc.Stats()
	parts := []string{
		styles.AdminBadgeStyle.Render("Admin"),
		styles.DimStyle.Render(fmt.Sprintf("%d titles · %d favorites", stats.Total, stats.Favorites)),
	}

	switch {
	case m.Svc.Bootstrapping():
		parts = append(parts, components.RenderSpinner(m.SpinnerFrame)+" "+styles.DimStyle.Render("Bootstrapping..."))
	case m.Svc.DemoMode():
		parts = append(parts, styles.AccentStyle.Render("B")+styles.DimStyle.Render(" bootstrap"))
	default:
		parts = append(parts, styles.AccentStyle.Render("W")+styles.DimStyle.Render(" wipe"))
	}
	return strings.Join(parts, " ")
}

// renderFooter renders the status line
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Syncing || m.Pending > 0:
		text := "Working..."
		if m.Syncing {
			text = "Syncing catalog..."
		}
		left = components.RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render(text)
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var center string
	if _, ok := m.currentItem(); ok {
		center = styles.AccentStyle.Render("f") + styles.DimStyle.Render(" favorite  ") +
			styles.AccentStyle.Render("d") + styles.DimStyle.Render(" delete")
	}

	loginHint := " login"
	if m.Svc.Admin() {
		loginHint = " logout"
	}
	right := styles.AccentStyle.Render("L") + styles.DimStyle.Render(loginHint+"  ") +
		styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSE                          COLLECTION
  j/k        Up/down               a      Add a title
  l/Enter    Open details          f      Toggle favorite
  h/Esc      Back                  d/x    Delete
  J/K        Scroll details        u      Refresh metadata
  g/G        First/last item       r      Reload catalog

FILTER                          ADMIN
  Tab        Next category         L      Login / logout
  [ ]        Previous/next genre   B      Bootstrap database
  /          Search                W      Wipe database
  c          Clear filters
                                   ?      This help
                                   q      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

func categoryLabels() []string {
	labels := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		labels[i] = string(c)
	}
	return labels
}
