package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
)

// Layout constants for the list
const (
	BorderWidth  = 2
	BorderHeight = 2

	// "↑ more" and "↓ more" each take a line
	ScrollIndicatorLines = 2
)

// ItemList is a scrollable list of catalog items
type ItemList struct {
	items []domain.Item

	cursor     int
	offset     int
	maxVisible int

	width   int
	height  int
	focused bool

	title        string
	loading      bool
	spinnerFrame int
}

// NewItemList creates an empty list
func NewItemList(title string) *ItemList {
	return &ItemList{title: title, focused: true}
}

// Update moves the cursor
func (l *ItemList) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !l.focused || len(l.items) == 0 {
		return nil
	}
	count := len(l.items)

	switch {
	case key.Matches(keyMsg, ListKeys.Down):
		if l.cursor < count-1 {
			l.cursor++
		}
	case key.Matches(keyMsg, ListKeys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(keyMsg, ListKeys.Home):
		l.cursor = 0
	case key.Matches(keyMsg, ListKeys.End):
		l.cursor = count - 1
	case key.Matches(keyMsg, ListKeys.HalfDown):
		l.cursor = min(l.cursor+max(1, l.maxVisible/2), count-1)
	case key.Matches(keyMsg, ListKeys.HalfUp):
		l.cursor = max(l.cursor-max(1, l.maxVisible/2), 0)
	}
	l.ensureVisible()
	return nil
}

// SetItems replaces the rows. The cursor stays on the same item when it is still present.
func (l *ItemList) SetItems(items []domain.Item) {
	var currentID string
	if sel := l.SelectedItem(); sel != nil {
		currentID = sel.ID
	}
	l.items = items
	l.cursor = 0
	if currentID != "" {
		l.SelectID(currentID)
	}
	if l.cursor >= len(items) {
		l.cursor = max(len(items)-1, 0)
	}
	l.ensureVisible()
}

// SelectID moves the cursor to an item
func (l *ItemList) SelectID(id string) bool {
	for i := range l.items {
		if l.items[i].ID == id {
			l.cursor = i
			l.ensureVisible()
			return true
		}
	}
	return false
}

// SelectedItem returns the item under the cursor
func (l *ItemList) SelectedItem() *domain.Item {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return nil
	}
	return &l.items[l.cursor]
}

// Len returns the number of rows
func (l *ItemList) Len() int { return len(l.items) }

func (l *ItemList) SetTitle(title string)   { l.title = title }
func (l *ItemList) SetFocused(focused bool) { l.focused = focused }
func (l *ItemList) SetLoading(loading bool) { l.loading = loading }
func (l *ItemList) SetSpinnerFrame(f int)   { l.spinnerFrame = f }

// SetSize updates the dimensions
func (l *ItemList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.maxVisible = max(height-BorderHeight-ScrollIndicatorLines-1, 1)
	l.ensureVisible()
}

func (l *ItemList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// View renders the list inside a border
func (l *ItemList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent())
}

func (l *ItemList) renderContent() string {
	itemWidth := max(l.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	if l.loading && len(l.items) == 0 {
		spinner := styles.SpinnerFrames[l.spinnerFrame%len(styles.SpinnerFrames)]
		return titleLine + "\n \n" + styles.DimStyle.Render(spinner+" Loading...")
	}
	if len(l.items) == 0 {
		return titleLine + "\n \n" + styles.DimStyle.Render("No titles match these filters")
	}

	end := min(l.offset+l.maxVisible, len(l.items))
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, renderItemRow(l.items[i], i == l.cursor, itemWidth))
	}

	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < len(l.items) {
		footer = styles.DimStyle.Render("↓ more")
	}
	return titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func renderItemRow(item domain.Item, selected bool, width int) string {
	marker, markerFg := styles.NotFavoriteChar, styles.DimGray
	if item.Favorite {
		marker, markerFg = styles.FavoriteChar, styles.Rose
	}

	kind := "M"
	if item.IsSeries() {
		kind = "S"
	}
	kindFg := styles.DimGray

	title := item.Title
	if item.Year != "" {
		title = fmt.Sprintf("%s (%s)", item.Title, item.Year)
	}
	// marker, space, kind, space and the row margins
	title = styles.Truncate(title, max(width-6, 5))

	return styles.RenderListRow([]styles.RowPart{
		{Text: marker, Foreground: &markerFg},
		{Text: " " + kind, Foreground: &kindFg},
		{Text: " " + title},
	}, selected, width)
}

// RenderSpinner renders one spinner frame
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
