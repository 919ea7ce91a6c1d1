package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rsekulic/videoteka-v1/internal/domain"
)

type fakeStore struct {
	mu      sync.Mutex
	rows    []domain.Item
	calls   []string
	patches []domain.ItemPatch
	kept    []string

	listErr   error
	insertErr error
	deleteErr error
	// updateHook runs for every update; its error fails the call
	updateHook func(call int) error
	insertHook func()
}

func (f *fakeStore) record(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return len(f.calls)
}

func (f *fakeStore) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *fakeStore) writes() int {
	return f.callCount("insert") + f.callCount("update") + f.callCount("delete")
}

func (f *fakeStore) ListItems(context.Context) ([]domain.Item, error) {
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.CloneItems(f.rows), nil
}

func (f *fakeStore) InsertItems(_ context.Context, items []domain.Item) ([]domain.Item, error) {
	f.record("insert")
	if f.insertHook != nil {
		f.insertHook()
	}
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.ID != "" {
			return nil, fmt.Errorf("insert with id %q", it.ID)
		}
		row := it.Clone()
		row.ID = uuid.NewString()
		out = append(out, row)
	}
	f.rows = append(domain.CloneItems(out), f.rows...)
	return out, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, id string, patch domain.ItemPatch) error {
	n := f.callCount("update") + 1
	f.record("update:" + id)
	if f.updateHook != nil {
		if err := f.updateHook(n); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patch)
	for i := range f.rows {
		if f.rows[i].ID == id {
			patch.Apply(&f.rows[i])
		}
	}
	return nil
}

func (f *fakeStore) DeleteItem(_ context.Context, id string) error {
	f.record("delete:" + id)
	return f.deleteErr
}

func (f *fakeStore) DeleteAllExcept(_ context.Context, keep string) error {
	f.record("delete-all")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kept = append(f.kept, keep)
	var rows []domain.Item
	for _, r := range f.rows {
		if r.ID == keep {
			rows = append(rows, r)
		}
	}
	f.rows = rows
	return nil
}

type fakeSession struct {
	mu     sync.Mutex
	authed bool
	subs   map[int]func(bool)
	next   int
}

func (f *fakeSession) set(authed bool) {
	f.mu.Lock()
	f.authed = authed
	subs := make([]func(bool), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()
	for _, fn := range subs {
		fn(authed)
	}
}

func (f *fakeSession) SignIn(_ context.Context, _, password string) error {
	if password != "secret" {
		return domain.ErrAuthFailed
	}
	f.set(true)
	return nil
}

func (f *fakeSession) SignOut(context.Context) error {
	f.set(false)
	return nil
}

func (f *fakeSession) Authenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authed
}

func (f *fakeSession) OnAuthStateChange(fn func(bool)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs == nil {
		f.subs = make(map[int]func(bool))
	}
	id := f.next
	f.next++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (f *fakeConfirmer) Confirm(_ context.Context, prompt string) bool {
	f.prompts = append(f.prompts, prompt)
	return f.answer
}

type recordedToast struct {
	text     string
	severity domain.Severity
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []recordedToast
}

func (r *recordingNotifier) Notify(text string, severity domain.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, recordedToast{text, severity})
}

func (r *recordingNotifier) last() recordedToast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return recordedToast{}
	}
	return r.toasts[len(r.toasts)-1]
}

type fakeLookup struct {
	result *domain.Item
	inputs []string
}

func (f *fakeLookup) Lookup(_ context.Context, input string) (*domain.Item, error) {
	f.inputs = append(f.inputs, input)
	if f.result == nil {
		return nil, domain.ErrNotFound
	}
	c := f.result.Clone()
	return &c, nil
}
