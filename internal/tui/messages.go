package tui

import "github.com/rsekulic/videoteka-v1/internal/domain"

// Message types for the TUI

// SyncedMsg signals that a sync with the remote store finished
type SyncedMsg struct {
	Err error
}

// AddedMsg signals the end of an add from the lookup modal
type AddedMsg struct {
	Item domain.Item
	Err  error
}

// Action names a user action whose result comes back as a message
type Action string

const (
	ActionFavorite  Action = "favorite"
	ActionDelete    Action = "delete"
	ActionRefresh   Action = "refresh metadata"
	ActionBootstrap Action = "bootstrap"
	ActionWipe      Action = "wipe"
)

// ActionDoneMsg signals that an action finished
type ActionDoneMsg struct {
	Action Action
	ItemID string
	Err    error
}

// SignedInMsg signals the end of a sign in attempt
type SignedInMsg struct {
	Err error
}

// SignedOutMsg signals the end of a sign out
type SignedOutMsg struct {
	Err error
}

// ConfirmRequestMsg asks the user a yes/no question on behalf of a running action
type ConfirmRequestMsg struct {
	Prompt string
	reply  chan<- bool
}

// TickMsg drives the spinner and toast expiry
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
