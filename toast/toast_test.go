package toast

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestQueue(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	q := NewQueue(WithClock(clock.now))

	a := q.Show("SVG copied", Success)
	clock.t = clock.t.Add(time.Second)
	b := q.Show("Copy failed", Error)
	if a.ID == b.ID || b.ID <= a.ID {
		t.Fatalf("ids are not increasing: %d, %d", a.ID, b.ID)
	}
	if got := q.Active(); len(got) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(got))
	}

	clock.t = clock.t.Add(2 * time.Second) // a is 3s old
	got := q.Active()
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("expected only the second toast, got %v", got)
	}

	if !q.Dismiss(b.ID) {
		t.Error("can't dismiss visible toast")
	}
	if q.Dismiss(b.ID) {
		t.Error("dismissed twice")
	}
	if len(q.Active()) != 0 {
		t.Error("expected no toast")
	}
}

func TestWithTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	q := NewQueue(WithClock(clock.now), WithTTL(time.Minute))
	q.Show("x", Success)
	clock.t = clock.t.Add(30 * time.Second)
	if len(q.Active()) != 1 {
		t.Error("toast expired too early")
	}
}
