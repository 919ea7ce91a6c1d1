package domain

import "context"

// RemoteStore is the shared table of catalog rows
type RemoteStore interface {
	// ListItems returns every row, newest first
	ListItems(ctx context.Context) ([]Item, error)

	// InsertItems stores rows and returns them as stored, with identifiers assigned
	InsertItems(ctx context.Context, items []Item) ([]Item, error)

	// UpdateItem writes the changed columns of one row
	UpdateItem(ctx context.Context, id string, patch ItemPatch) error

	// DeleteItem removes one row
	DeleteItem(ctx context.Context, id string) error

	// DeleteAllExcept removes every row whose id differs from keep
	DeleteAllExcept(ctx context.Context, keep string) error
}

// Session is the admin authentication state of the remote store
type Session interface {
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	Authenticated() bool

	// OnAuthStateChange registers fn for every change of the authentication state.
	// The returned function unsubscribes.
	OnAuthStateChange(fn func(authenticated bool)) (unsubscribe func())
}

// Cache persists the collection between runs
type Cache interface {
	LoadItems() ([]Item, bool)
	SaveItems(items []Item) error
	Clear() error
	Close() error
}

// MetadataLookup turns a title or link into a candidate item without an identifier
type MetadataLookup interface {
	Lookup(ctx context.Context, input string) (*Item, error)
}

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Severity classifies a notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// Notifier surfaces short-lived messages to the user
type Notifier interface {
	Notify(text string, severity Severity)
}
