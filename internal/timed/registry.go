// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package timed

import (
	"sync"
	"time"

	"github.com/holomush/lunar/internal/binding"
)

// Owner is the runtime that holds the callback of a timed event.
type Owner interface {
	// Alive reports whether the owner can still accept calls and releases.
	Alive() bool
	// Release drops the callback stored under id.
	Release(id binding.Handle)
	// FireTimed runs the callback stored under id. obj is the native object
	// the event is attached to, or nil for global events.
	FireTimed(id binding.Handle, delay time.Duration, calls uint32, obj any)
}

// Entry is one registry record.
type Entry struct {
	Handle binding.Handle
	Owner  Owner
}

// Registry resolves timed event ids to the runtime that scheduled them.
type Registry interface {
	Add(id binding.Handle, owner Owner)
	Get(id binding.Handle) (Entry, bool)
	Remove(id binding.Handle) (Entry, bool)
	Clear()
	Len() int
}

// GlobalRegistry is the process-wide Registry. Processors driven from
// different goroutines share it, so every access takes the lock.
type GlobalRegistry struct {
	mu      sync.Mutex
	entries map[binding.Handle]Entry
}

// NewGlobalRegistry creates an empty registry. Create one at process start
// and hand it to every runtime.
func NewGlobalRegistry() *GlobalRegistry {
	return &GlobalRegistry{entries: make(map[binding.Handle]Entry)}
}

// Add records owner as the holder of id.
func (r *GlobalRegistry) Add(id binding.Handle, owner Owner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = Entry{Handle: id, Owner: owner}
}

// Get looks up id.
func (r *GlobalRegistry) Get(id binding.Handle) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

// Remove deletes id and returns what it held.
func (r *GlobalRegistry) Remove(id binding.Handle) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	return e, ok
}

// Clear drops every entry without releasing callbacks.
func (r *GlobalRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[binding.Handle]Entry)
}

// Len returns the number of entries.
func (r *GlobalRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
