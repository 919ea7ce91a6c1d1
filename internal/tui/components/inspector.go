package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/nav"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector displays the details of one item
type Inspector struct {
	item       *domain.Item
	pinned     bool // Opened with enter rather than following the cursor
	width      int
	height     int
	offset     int
	maxVisible int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetItem sets the item to display. Scrolling resets when the item changes.
func (i *Inspector) SetItem(item *domain.Item, pinned bool) {
	if item == nil || i.item == nil || item.ID != i.item.ID {
		i.offset = 0
	}
	i.item = item
	i.pinned = pinned
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Title line and the blank line below it
	i.maxVisible = max(height-InspectorBorderHeight-InspectorScrollIndicators-2, 1)
}

// HasItem reports whether an item is shown
func (i Inspector) HasItem() bool {
	return i.item != nil
}

// ScrollDown scrolls the body one line
func (i *Inspector) ScrollDown() { i.offset++ }

// ScrollUp scrolls the body back one line
func (i *Inspector) ScrollUp() {
	if i.offset > 0 {
		i.offset--
	}
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder
	if i.pinned {
		style = styles.ActiveBorder
	}

	contentWidth := max(i.width-3, 10)
	content := i.render(contentWidth)

	title := "Details"
	if i.item != nil {
		title = "Details · " + nav.Path(*i.item)
	}
	titleLine := styles.AccentStyle.Render(styles.Truncate(title, contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(i.maxVisible-len(headerLines)-len(footerLines), 1)
	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(i.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if len(headerLines) > 0 {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if len(footerLines) > 0 {
		parts = append(parts, footerLines...)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) render(width int) inspectorContent {
	if i.item == nil {
		return inspectorContent{body: styles.DimStyle.Render("No item selected")}
	}
	item := *i.item
	return inspectorContent{
		header: renderHeader(item, width),
		body:   renderBody(item, width),
		footer: renderFooter(item, width),
	}
}

func renderHeader(item domain.Item, width int) string {
	var lines []string

	title := styles.TitleStyle.Render(styles.Truncate(item.Title, width-2))
	if item.Favorite {
		title += " " + styles.FavoriteStyle.Render(styles.FavoriteChar)
	}
	lines = append(lines, title)

	meta := []string{item.Year, string(item.Kind)}
	if sub := item.Subtitle(); sub != "" {
		meta = append(meta, sub)
	}
	lines = append(lines, styles.SubtitleStyle.Render(strings.Join(nonEmpty(meta), " · ")))

	if genres := item.GenreLine(); genres != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(genres, width)))
	}
	if item.CriticScore != "" || item.AudienceScore != "" {
		lines = append(lines, fmt.Sprintf("%s %s   %s %s",
			styles.DimStyle.Render("Critics"), scoreOrNA(item.CriticScore),
			styles.DimStyle.Render("Audience"), scoreOrNA(item.AudienceScore)))
	}
	return strings.Join(lines, "\n")
}

func renderBody(item domain.Item, width int) string {
	var b strings.Builder
	if item.Description != "" {
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(item.Description, width)))
		b.WriteString("\n\n")
	}
	if item.Director != "" {
		label := "Director"
		if item.IsSeries() {
			label = "Creator"
		}
		b.WriteString(styles.DimStyle.Render(label+": ") + item.Director + "\n")
	}
	if len(item.Cast) > 0 {
		b.WriteString(styles.DimStyle.Render("Cast: "))
		b.WriteString(wordWrap(strings.Join(item.Cast, ", "), max(width-6, 10)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderFooter(item domain.Item, width int) string {
	var lines []string
	if item.TrailerURL != "" {
		lines = append(lines, styles.DimStyle.Render("Trailer ")+styles.Truncate(item.TrailerURL, width-8))
	}
	if item.Poster != "" {
		lines = append(lines, styles.DimStyle.Render("Poster  ")+styles.Truncate(item.Poster, width-8))
	}
	if !item.CreatedAt.IsZero() {
		lines = append(lines, styles.DimStyle.Render("Added   "+item.CreatedAt.Local().Format("2006-01-02")))
	}
	return strings.Join(lines, "\n")
}

func scoreOrNA(score string) string {
	if score == "" || score == domain.ScoreUnavailable {
		return styles.DimStyle.Render(domain.ScoreUnavailable)
	}
	return lipgloss.NewStyle().Foreground(styles.Marquee).Bold(true).Render(score)
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text at word boundaries
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)
		if lineLen > 0 && lineLen+wordLen+1 > width {
			result.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}
		result.WriteString(word)
		lineLen += wordLen
	}
	return result.String()
}
