package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsekulic/videoteka-v1/internal/catalog"
	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/nav"
	"github.com/rsekulic/videoteka-v1/internal/tui/components"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateAdding
	StateLogin
	StateConfirm
	StateHelp
)

// Layout proportions
const (
	ListColumnPercent = 40
	MinColumnWidth    = 20

	// Title, tabs, genres, search
	HeaderHeight = 4
	// Footer line
	ChromeHeight = 1

	tickInterval = 100 * time.Millisecond
	statusDelay  = 4 * time.Second
)

// Options configures the model
type Options struct {
	// OpenPath is a deep link opened after the first sync
	OpenPath string
	Logger   *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Svc       *catalog.Service
	Toasts    *catalog.ToastQueue
	Confirmer *PromptConfirmer
	logger    *slog.Logger

	// UI Components
	List         *components.ItemList
	Inspector    components.Inspector
	Search       textinput.Model
	AddModal     components.InputModal
	LoginModal   components.LoginModal
	ConfirmModal components.ConfirmModal
	confirmReply chan<- bool
	resumeState  ApplicationState

	// Filtering and navigation
	Filter      catalog.Filter
	categoryIdx int
	genreIdx    int
	History     nav.History
	detailOpen  bool
	openPath    string
	synced      bool

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Syncing      bool
	Pending      int
	SpinnerFrame int
}

// NewModel creates a new application model
func NewModel(svc *catalog.Service, toasts *catalog.ToastQueue, confirmer *PromptConfirmer, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "Search titles..."
	search.Prompt = "/ "
	search.PromptStyle = styles.FilterPromptStyle
	search.TextStyle = styles.FilterStyle
	search.CharLimit = 100

	m := Model{
		State:      StateBrowsing,
		Svc:        svc,
		Toasts:     toasts,
		Confirmer:  confirmer,
		logger:     logger,
		List:       components.NewItemList(""),
		Inspector:  components.NewInspector(),
		Search:     search,
		AddModal:   components.NewInputModal(),
		LoginModal: components.NewLoginModal(),
		openPath:   opts.OpenPath,
		Syncing:    true,
	}
	m.List.SetLoading(true)
	m.refresh()
	return m
}

// Init starts the first sync and the background loops
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		SyncCmd(m.Svc),
		WaitForConfirmCmd(m.Confirmer),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case SyncedMsg:
		m.Syncing = false
		m.List.SetLoading(false)
		m.refresh()
		var cmd tea.Cmd
		if msg.Err != nil {
			cmd = m.setStatus("Remote store unavailable, showing local data", true)
		}
		if !m.synced {
			m.synced = true
			if m.openPath != "" {
				cmd = tea.Batch(cmd, m.openDeepLink(m.openPath))
			}
		}
		return m, cmd

	case AddedMsg:
		m.Pending--
		if errors.Is(msg.Err, domain.ErrNotFound) {
			m.AddModal.SetError(catalog.LookupFailedMessage)
			return m, nil
		}
		m.AddModal.Hide()
		m.State = StateBrowsing
		m.refresh()
		m.List.SelectID(msg.Item.ID)
		m.syncInspector()
		return m, nil

	case ActionDoneMsg:
		m.Pending--
		m.refresh()
		cmd := m.handleActionError(msg)
		return m, cmd

	case SignedInMsg:
		if msg.Err != nil {
			text := msg.Err.Error()
			if errors.Is(msg.Err, domain.ErrAuthFailed) {
				text = "Invalid email or password."
			}
			m.LoginModal.SetError(text)
			return m, nil
		}
		m.LoginModal.Hide()
		m.State = StateBrowsing
		return m, nil

	case SignedOutMsg:
		if msg.Err != nil {
			cmd := m.setStatus("Logout failed: "+msg.Err.Error(), true)
			return m, cmd
		}
		return m, nil

	case ConfirmRequestMsg:
		m.resumeState = m.State
		m.State = StateConfirm
		m.confirmReply = msg.reply
		m.ConfirmModal.Show(msg.Prompt)
		return m, WaitForConfirmCmd(m.Confirmer)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Forward cursor blink and similar messages to the focused input
	var cmd tea.Cmd
	switch m.State {
	case StateSearching:
		m.Search, cmd = m.Search.Update(msg)
	case StateAdding:
		m.AddModal, cmd, _ = m.AddModal.Update(msg)
	case StateLogin:
		m.LoginModal, cmd, _ = m.LoginModal.Update(msg)
	}
	return m, cmd
}

// handleActionError turns action failures the catalog did not already announce into a status line
func (m *Model) handleActionError(msg ActionDoneMsg) tea.Cmd {
	if msg.Action == ActionDelete && m.detailOpen {
		if _, ok := m.Svc.Selected(); !ok {
			m.back()
		}
	}
	err := msg.Err
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrCancelled):
		return m.setStatus("Cancelled", false)
	case errors.Is(err, domain.ErrBusy):
		return m.setStatus("Bootstrap already running", true)
	case errors.Is(err, domain.ErrLiveMode):
		return m.setStatus("The database already has records", true)
	case errors.Is(err, domain.ErrDemoMode):
		return m.setStatus("Nothing to wipe while viewing local samples", true)
	case errors.Is(err, domain.ErrAuthRequired) && (msg.Action == ActionBootstrap || msg.Action == ActionWipe):
		return m.setStatus("Login required", true)
	case errors.Is(err, domain.ErrItemNotFound):
		return m.setStatus("Item no longer exists", true)
	}
	m.logger.Debug("action failed", "action", msg.Action, "id", msg.ItemID, "error", err)
	return nil
}

// refresh recomputes the visible rows from the catalog and the filter
func (m *Model) refresh() {
	items := catalog.View(m.Svc.Items(), m.Filter)
	m.List.SetItems(items)

	category := m.Filter.Category
	if category == "" {
		category = domain.CategoryAll
	}
	title := string(category)
	if m.Filter.Genre != "" && m.Filter.Genre != catalog.GenreAll {
		title += " · " + m.Filter.Genre
	}
	m.List.SetTitle(fmt.Sprintf("%s (%d)", title, len(items)))
	m.syncInspector()
}

// syncInspector shows the opened item, or the one under the cursor
func (m *Model) syncInspector() {
	if m.detailOpen {
		if item, ok := m.Svc.Selected(); ok {
			m.Inspector.SetItem(&item, true)
			return
		}
		m.detailOpen = false
	}
	if sel := m.List.SelectedItem(); sel != nil {
		item := sel.Clone()
		m.Inspector.SetItem(&item, false)
		return
	}
	m.Inspector.SetItem(nil, false)
}

// currentItem is the item actions apply to
func (m *Model) currentItem() (domain.Item, bool) {
	if m.detailOpen {
		if item, ok := m.Svc.Selected(); ok {
			return item, true
		}
	}
	if sel := m.List.SelectedItem(); sel != nil {
		return sel.Clone(), true
	}
	return domain.Item{}, false
}

func (m *Model) open(item domain.Item) {
	if !m.Svc.Select(item.ID) {
		return
	}
	m.History.Push(item)
	m.detailOpen = true
	m.List.SelectID(item.ID)
	m.syncInspector()
	m.logger.Debug("opened item", "path", nav.Path(item))
}

// back pops the detail history; an empty history closes the detail view
func (m *Model) back() {
	slug, ok := m.History.Back()
	if ok {
		if item, found := nav.Resolve(m.Svc.Items(), slug); found && m.Svc.Select(item.ID) {
			m.List.SelectID(item.ID)
			m.syncInspector()
			return
		}
	}
	m.Svc.ClearSelection()
	m.detailOpen = false
	m.syncInspector()
}

func (m *Model) openDeepLink(path string) tea.Cmd {
	item, ok := nav.Resolve(m.Svc.Items(), path)
	if !ok {
		return m.setStatus("No title matches "+path, true)
	}
	m.open(item)
	return nil
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDelay)
}
