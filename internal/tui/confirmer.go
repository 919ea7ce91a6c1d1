package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsekulic/videoteka-v1/internal/domain"
)

type confirmRequest struct {
	prompt string
	reply  chan bool
}

// PromptConfirmer adapts domain.Confirmer to a channel for Bubble Tea.
// Confirm blocks the calling command until the user answers in the UI.
type PromptConfirmer struct {
	requests chan confirmRequest
}

var _ domain.Confirmer = (*PromptConfirmer)(nil)

// NewPromptConfirmer creates a new channel-based confirmer.
func NewPromptConfirmer() *PromptConfirmer {
	return &PromptConfirmer{requests: make(chan confirmRequest)}
}

// Confirm asks the UI and waits for the answer. A cancelled context counts as no.
func (c *PromptConfirmer) Confirm(ctx context.Context, prompt string) bool {
	req := confirmRequest{prompt: prompt, reply: make(chan bool, 1)}
	select {
	case c.requests <- req:
	case <-ctx.Done():
		return false
	}
	select {
	case ok := <-req.reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

// WaitForConfirmCmd waits for the next confirmation request
func WaitForConfirmCmd(c *PromptConfirmer) tea.Cmd {
	return func() tea.Msg {
		req := <-c.requests
		return ConfirmRequestMsg{Prompt: req.prompt, reply: req.reply}
	}
}
