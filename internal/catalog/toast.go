package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rsekulic/videoteka-v1/internal/domain"
)

const (
	minToastDelay = 3 * time.Second
	maxToastDelay = 4 * time.Second
)

// Toast is a short-lived notification
type Toast struct {
	ID        string
	Text      string
	Severity  domain.Severity
	CreatedAt time.Time
}

// ToastQueue holds the visible notifications. Safe for concurrent use.
type ToastQueue struct {
	mu     sync.Mutex
	toasts []Toast
	delay  time.Duration
	now    func() time.Time
}

var _ domain.Notifier = (*ToastQueue)(nil)

// NewToastQueue creates a queue whose toasts expire after delay, clamped to 3-4 seconds
func NewToastQueue(delay time.Duration) *ToastQueue {
	return &ToastQueue{delay: min(max(delay, minToastDelay), maxToastDelay), now: time.Now}
}

// Delay returns the expiry delay
func (q *ToastQueue) Delay() time.Duration {
	return q.delay
}

// Notify appends a toast. An empty severity means success.
func (q *ToastQueue) Notify(text string, severity domain.Severity) {
	if severity == "" {
		severity = domain.SeveritySuccess
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.toasts = append(q.toasts, Toast{
		ID:        uuid.NewString(),
		Text:      text,
		Severity:  severity,
		CreatedAt: q.now(),
	})
}

// Active prunes expired toasts and returns the rest, oldest first
func (q *ToastQueue) Active(now time.Time) []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if now.Sub(t.CreatedAt) < q.delay {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
	return append([]Toast(nil), kept...)
}

// Dismiss removes one toast before it expires
func (q *ToastQueue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}
