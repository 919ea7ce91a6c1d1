package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsekulic/videoteka-v1/internal/catalog"
	"github.com/rsekulic/videoteka-v1/internal/domain"
)

// handleKeyMsg routes a key press by application state
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateConfirm:
		return m.handleConfirmKey(msg)
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	case StateAdding:
		return m.handleAddKey(msg)
	case StateLogin:
		return m.handleLoginKey(msg)
	case StateSearching:
		return m.handleSearchKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer bool
	switch {
	case key.Matches(msg, Keys.Confirm):
		answer = true
	case key.Matches(msg, Keys.Deny):
		answer = false
	default:
		return m, nil
	}
	if m.confirmReply != nil {
		m.confirmReply <- answer
		m.confirmReply = nil
	}
	m.ConfirmModal.Hide()
	m.State = m.resumeState
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modal, cmd, submitted := m.AddModal.Update(msg)
	m.AddModal = modal
	if !m.AddModal.IsVisible() {
		m.State = StateBrowsing
		return m, cmd
	}
	if submitted {
		m.AddModal.SetBusy(true)
		m.Pending++
		return m, AddCmd(m.Svc, m.AddModal.Value())
	}
	return m, cmd
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modal, cmd, submitted := m.LoginModal.Update(msg)
	m.LoginModal = modal
	if !m.LoginModal.IsVisible() {
		m.State = StateBrowsing
		return m, cmd
	}
	if submitted {
		m.LoginModal.SetBusy(true)
		email, password := m.LoginModal.Credentials()
		return m, SignInCmd(m.Svc, email, password)
	}
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Search.SetValue("")
		m.Search.Blur()
		m.Filter.Query = ""
		m.State = StateBrowsing
		m.refresh()
		return m, nil
	case "enter", "down", "up":
		m.Search.Blur()
		m.State = StateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	m.Filter.Query = m.Search.Value()
	m.refresh()
	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.State = StateSearching
		cmd := m.Search.Focus()
		return m, cmd

	case key.Matches(msg, Keys.NextCategory), key.Matches(msg, Keys.PrevCategory):
		step := 1
		if key.Matches(msg, Keys.PrevCategory) {
			step = -1
		}
		m.categoryIdx = cycle(m.categoryIdx, step, len(domain.Categories))
		m.Filter.Category = domain.Categories[m.categoryIdx]
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.NextGenre), key.Matches(msg, Keys.PrevGenre):
		step := 1
		if key.Matches(msg, Keys.PrevGenre) {
			step = -1
		}
		m.genreIdx = cycle(m.genreIdx, step, len(catalog.Genres))
		m.Filter.Genre = catalog.Genres[m.genreIdx]
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.ClearFilters):
		m.Filter.Reset()
		m.categoryIdx, m.genreIdx = 0, 0
		m.Search.SetValue("")
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if sel := m.List.SelectedItem(); sel != nil {
			m.open(sel.Clone())
		}
		return m, nil

	case key.Matches(msg, Keys.Back):
		if m.detailOpen {
			m.back()
		}
		return m, nil

	case key.Matches(msg, Keys.ScrollDown):
		m.Inspector.ScrollDown()
		return m, nil

	case key.Matches(msg, Keys.ScrollUp):
		m.Inspector.ScrollUp()
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		return m.withCurrent(func(item domain.Item) tea.Cmd {
			return ToggleFavoriteCmd(m.Svc, item.ID)
		})

	case key.Matches(msg, Keys.Delete):
		return m.withCurrent(func(item domain.Item) tea.Cmd {
			return DeleteCmd(m.Svc, item.ID)
		})

	case key.Matches(msg, Keys.RefreshMeta):
		return m.withCurrent(func(item domain.Item) tea.Cmd {
			return RefreshMetadataCmd(m.Svc, item.ID)
		})

	case key.Matches(msg, Keys.Add):
		m.State = StateAdding
		cmd := m.AddModal.Show(
			"Add a title",
			"Title, TMDB link or Rotten Tomatoes link",
			"enter search · esc cancel",
		)
		return m, cmd

	case key.Matches(msg, Keys.Refresh):
		m.Syncing = true
		return m, SyncCmd(m.Svc)

	case key.Matches(msg, Keys.Bootstrap):
		m.Pending++
		return m, BootstrapCmd(m.Svc)

	case key.Matches(msg, Keys.Wipe):
		m.Pending++
		return m, WipeCmd(m.Svc)

	case key.Matches(msg, Keys.Login):
		if m.Svc.Admin() {
			return m, SignOutCmd(m.Svc)
		}
		m.State = StateLogin
		cmd := m.LoginModal.Show()
		return m, cmd
	}

	cmd := m.List.Update(msg)
	if !m.detailOpen {
		m.syncInspector()
	}
	return m, cmd
}

// withCurrent runs an action on the current item and counts it as pending
func (m Model) withCurrent(action func(item domain.Item) tea.Cmd) (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if !ok {
		return m, nil
	}
	m.Pending++
	return m, action(item)
}

func cycle(idx, step, n int) int {
	if n == 0 {
		return 0
	}
	return ((idx+step)%n + n) % n
}
