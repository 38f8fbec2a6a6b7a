// Package toast keeps the transient notifications raised by user actions.
package toast

import "time"

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Kind is the outcome a toast reports.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Toast is a single notification.
type Toast struct {
	ID      int
	Message string
	Kind    Kind
	Expires time.Time
}

// Queue holds the visible toasts, oldest first. It is not safe
// for concurrent use.
type Queue struct {
	ttl    time.Duration
	now    func() time.Time
	lastID int
	toasts []Toast
}

// Option configures a Queue.
type Option func(*Queue)

// WithTTL overrides DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(q *Queue) { q.ttl = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

func NewQueue(opts ...Option) *Queue {
	q := &Queue{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Show adds a toast and returns it.
func (q *Queue) Show(message string, kind Kind) Toast {
	q.lastID++
	t := Toast{ID: q.lastID, Message: message, Kind: kind, Expires: q.now().Add(q.ttl)}
	q.toasts = append(q.toasts, t)
	return t
}

// Dismiss removes the toast with the given id, as a click on it does.
// It returns false if no such toast is visible.
func (q *Queue) Dismiss(id int) bool {
	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Active drops the expired toasts and returns a copy of the others.
func (q *Queue) Active() []Toast {
	now := q.now()
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if now.Before(t.Expires) {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
	return append([]Toast(nil), kept...)
}
