package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsekulic/videoteka-v1/internal/catalog"
)

const (
	actionTimeout = 30 * time.Second
	lookupTimeout = 60 * time.Second
	// Actions that wait for a confirmation get time for the user to answer
	confirmTimeout = 5 * time.Minute
)

// Command factories for async operations

// SyncCmd loads the collection from the remote store
func SyncCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return SyncedMsg{Err: svc.Refresh(ctx)}
	}
}

// AddCmd looks up metadata for input and adds the result
func AddCmd(svc *catalog.Service, input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		item, err := svc.AddFromLookup(ctx, input)
		return AddedMsg{Item: item, Err: err}
	}
}

// ToggleFavoriteCmd flips the favorite flag of an item
func ToggleFavoriteCmd(svc *catalog.Service, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		_, err := svc.ToggleFavorite(ctx, id)
		return ActionDoneMsg{Action: ActionFavorite, ItemID: id, Err: err}
	}
}

// RefreshMetadataCmd looks an item up again and applies the changes
func RefreshMetadataCmd(svc *catalog.Service, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		return ActionDoneMsg{Action: ActionRefresh, ItemID: id, Err: svc.RefreshMetadata(ctx, id)}
	}
}

// DeleteCmd removes an item after confirmation
func DeleteCmd(svc *catalog.Service, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
		defer cancel()
		return ActionDoneMsg{Action: ActionDelete, ItemID: id, Err: svc.Delete(ctx, id)}
	}
}

// BootstrapCmd seeds the remote store with the sample set
func BootstrapCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		return ActionDoneMsg{Action: ActionBootstrap, Err: svc.Bootstrap(ctx)}
	}
}

// WipeCmd clears the remote store after confirmation
func WipeCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
		defer cancel()
		return ActionDoneMsg{Action: ActionWipe, Err: svc.Wipe(ctx)}
	}
}

// SignInCmd starts an admin session
func SignInCmd(svc *catalog.Service, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return SignedInMsg{Err: svc.SignIn(ctx, email, password)}
	}
}

// SignOutCmd ends the admin session
func SignOutCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return SignedOutMsg{Err: svc.SignOut(ctx)}
	}
}

// TickCmd returns a command that ticks after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
