// Package theme holds the light/dark preference, persisted
// under a fixed key of a small key-value storage.
package theme

import (
	"fmt"
	"sort"
)

// StorageKey is the key the preference is stored under.
const StorageKey = "theme"

// Mode is a theme preference.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
	Auto  Mode = "auto"
)

// ParseMode accepts exactly "light", "dark" or "auto".
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case Light, Dark, Auto:
		return m, true
	}
	return "", false
}

// Resolve returns the effective theme: Auto follows the
// color scheme preference of the environment.
func Resolve(m Mode, prefersDark bool) Mode {
	switch m {
	case Light, Dark:
		return m
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// Store is the application-wide theme state. It lives for the
// whole session and needs no teardown. It is not safe for concurrent use.
type Store struct {
	storage Storage
	mode    Mode

	subs   map[int]func(Mode)
	nextID int
}

// Load initializes a Store from the persisted value, defaulting to Auto
// when nothing valid is stored.
func Load(storage Storage) (*Store, error) {
	st := &Store{storage: storage, mode: Auto, subs: map[int]func(Mode){}}
	v, ok, err := storage.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("theme: reading preference: %w", err)
	}
	if m, valid := ParseMode(v); ok && valid {
		st.mode = m
	}
	return st, nil
}

// Mode returns the current preference.
func (st *Store) Mode() Mode { return st.mode }

// Resolve is a shortcut for Resolve(st.Mode(), prefersDark).
func (st *Store) Resolve(prefersDark bool) Mode { return Resolve(st.mode, prefersDark) }

// Set persists m and notifies the subscribers.
func (st *Store) Set(m Mode) error {
	if _, ok := ParseMode(string(m)); !ok {
		return fmt.Errorf("theme: invalid mode %q", m)
	}
	if err := st.storage.Set(StorageKey, string(m)); err != nil {
		return fmt.Errorf("theme: saving preference: %w", err)
	}
	st.mode = m
	ids := make([]int, 0, len(st.subs))
	for id := range st.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		// a subscriber may have removed a later one
		if fn, ok := st.subs[id]; ok {
			fn(m)
		}
	}
	return nil
}

// Subscribe registers fn, called after every Set. The returned
// function removes the subscription.
func (st *Store) Subscribe(fn func(Mode)) (unsubscribe func()) {
	id := st.nextID
	st.nextID++
	st.subs[id] = fn
	return func() { delete(st.subs, id) }
}
