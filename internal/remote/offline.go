package remote

import (
	"context"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

// Offline is a Backend whose every call fails as unreachable
type Offline struct {
	cause error
}

// NewOffline returns an Offline backend reporting cause
func NewOffline(cause error) *Offline {
	if cause == nil {
		cause = domain.ErrStoreUnreachable
	}
	return &Offline{cause: cause}
}

func (o *Offline) ListItems(context.Context) ([]domain.Item, error) { return nil, o.cause }

func (o *Offline) InsertItems(context.Context, []domain.Item) ([]domain.Item, error) {
	return nil, o.cause
}

func (o *Offline) UpdateItem(context.Context, string, domain.ItemPatch) error { return o.cause }
func (o *Offline) DeleteItem(context.Context, string) error { return o.cause }
func (o *Offline) DeleteAllExcept(context.Context, string) error { return o.cause }
func (o *Offline) SignIn(context.Context, string, string) error { return o.cause }
func (o *Offline) SignOut(context.Context) error { return nil }
func (o *Offline) Authenticated() bool { return false }
func (o *Offline) OnAuthStateChange(func(bool)) func() { return func() {} }
func (o *Offline) Close() error { return nil }
