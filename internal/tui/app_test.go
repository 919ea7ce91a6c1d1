package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsekulic/videoteka-v1/internal/catalog"
	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/remote"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	offline := remote.NewOffline(errors.New("offline"))
	toasts := catalog.NewToastQueue(3 * time.Second)
	svc := catalog.NewService(catalog.Deps{
		Store:    offline,
		Session:  offline,
		Notifier: toasts,
	})
	t.Cleanup(svc.Close)

	m := NewModel(svc, toasts, NewPromptConfirmer(), Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestModel_StartsWithSamples(t *testing.T) {
	m := newTestModel(t)

	if got := m.List.Len(); got != len(catalog.Samples()) {
		t.Errorf("List.Len() = %d, want %d", got, len(catalog.Samples()))
	}
	if !m.Svc.DemoMode() {
		t.Error("expected demo mode before the first sync")
	}
	if m.View() == "" {
		t.Error("View() returned empty output")
	}
}

func TestModel_CategoryAndGenreCycling(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Filter.Category != domain.CategoryMovies {
		t.Fatalf("Category = %q, want %q", m.Filter.Category, domain.CategoryMovies)
	}
	if got := m.List.Len(); got != 4 {
		t.Errorf("movies = %d, want 4", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Filter.Category != domain.CategoryFavorites {
		t.Errorf("Category = %q, want wrap to %q", m.Filter.Category, domain.CategoryFavorites)
	}

	m = press(t, m, runes("c"), runes("]"))
	if m.Filter.Genre != "Sci-Fi" {
		t.Fatalf("Genre = %q, want Sci-Fi", m.Filter.Genre)
	}
	if got := m.List.Len(); got != 4 {
		t.Errorf("sci-fi titles = %d, want 4", got)
	}
}

func TestModel_SearchFiltersAndEscapeClears(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("/"))
	if m.State != StateSearching {
		t.Fatalf("State = %v, want StateSearching", m.State)
	}
	m = press(t, m, runes("d"), runes("a"), runes("r"), runes("k"))
	if m.Filter.Query != "dark" {
		t.Fatalf("Query = %q, want %q", m.Filter.Query, "dark")
	}
	if got := m.List.Len(); got != 1 {
		t.Errorf("matches = %d, want 1", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State != StateBrowsing || m.Filter.Query != "" {
		t.Errorf("after esc: state=%v query=%q", m.State, m.Filter.Query)
	}
	if got := m.List.Len(); got != len(catalog.Samples()) {
		t.Errorf("List.Len() = %d after clearing", got)
	}
}

func TestModel_OpenAndBack(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.detailOpen {
		t.Fatal("expected the detail view to open")
	}
	if _, ok := m.Svc.Selected(); !ok {
		t.Error("expected a selected item")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.detailOpen {
		t.Error("expected back to close the detail view")
	}
	if _, ok := m.Svc.Selected(); ok {
		t.Error("expected the selection to be cleared")
	}
}

func TestModel_DeepLinkAfterFirstSync(t *testing.T) {
	offline := remote.NewOffline(errors.New("offline"))
	svc := catalog.NewService(catalog.Deps{Store: offline, Session: offline})
	t.Cleanup(svc.Close)

	m := NewModel(svc, catalog.NewToastQueue(3*time.Second), NewPromptConfirmer(), Options{OpenPath: "/severance"})
	updated, _ := m.Update(SyncedMsg{Err: errors.New("offline")})
	m = updated.(Model)

	item, ok := m.Svc.Selected()
	if !ok || item.Title != "Severance" {
		t.Errorf("Selected() = %q, %v; want Severance", item.Title, ok)
	}
}

func TestPromptConfirmer_RoundTrip(t *testing.T) {
	m := newTestModel(t)

	answer := make(chan bool, 1)
	go func() {
		answer <- m.Confirmer.Confirm(context.Background(), "Proceed?")
	}()

	msg := WaitForConfirmCmd(m.Confirmer)()
	req, ok := msg.(ConfirmRequestMsg)
	if !ok {
		t.Fatalf("got %T, want ConfirmRequestMsg", msg)
	}
	if req.Prompt != "Proceed?" {
		t.Errorf("Prompt = %q", req.Prompt)
	}

	updated, _ := m.Update(req)
	m = updated.(Model)
	if m.State != StateConfirm {
		t.Fatalf("State = %v, want StateConfirm", m.State)
	}

	m = press(t, m, runes("y"))
	if m.State != StateBrowsing {
		t.Errorf("State = %v, want StateBrowsing", m.State)
	}
	select {
	case got := <-answer:
		if !got {
			t.Error("Confirm() = false, want true")
		}
	case <-time.After(time.Second):
		t.Fatal("Confirm did not return")
	}
}

func TestPromptConfirmer_CancelledContext(t *testing.T) {
	c := NewPromptConfirmer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if c.Confirm(ctx, "Proceed?") {
		t.Error("Confirm() = true on a cancelled context")
	}
}

func TestCycle(t *testing.T) {
	tests := []struct {
		idx, step, n, want int
	}{
		{0, 1, 4, 1},
		{3, 1, 4, 0},
		{0, -1, 4, 3},
		{2, -1, 4, 1},
		{0, 1, 0, 0},
	}
	for _, tt := range tests {
		if got := cycle(tt.idx, tt.step, tt.n); got != tt.want {
			t.Errorf("cycle(%d, %d, %d) = %d, want %d", tt.idx, tt.step, tt.n, got, tt.want)
		}
	}
}
