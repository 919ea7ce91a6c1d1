package catalog

import (
	"context"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

// Mutation names a user action that changes an existing item
type Mutation string

const (
	MutationToggleFavorite Mutation = "toggle-favorite"
	MutationUpdate         Mutation = "update"
	MutationDelete         Mutation = "delete"
)

// Policy is how a mutation is mirrored to the remote store
type Policy struct {
	RequiresSession bool // Checked before the remote call; the store enforces it otherwise
	Rollback        bool // Undo the local change when the remote call fails
	Confirm         bool // Ask the user before applying anything
}

// Policies is the reconciliation table. Local-only changes (demo mode or a
// non-canonical identifier) stop before any of these rules apply.
var Policies = map[Mutation]Policy{
	MutationToggleFavorite: {RequiresSession: true, Rollback: true},
	MutationUpdate:         {},
	MutationDelete:         {Confirm: true},
}

// plan is a mutation already applied locally, with what remains to be done remotely
type plan struct {
	mutation  Mutation
	id        string
	before    domain.Item // Snapshot taken before the local change
	index     int         // Position of the item before the local change
	version   uint64      // Item version produced by the local change
	localOnly bool
	remote    func(ctx context.Context) error
}

// Policy returns the rules of the planned mutation
func (p *plan) policy() Policy {
	return Policies[p.mutation]
}

// LocalOnly reports whether an item change must never reach the remote store
func LocalOnly(demo bool, id string) bool {
	return demo || !domain.IsCanonicalID(id)
}
