// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package binding

import (
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// Handle identifies a script callback. Handles come from one process-wide
// allocator and are never reused, so a released handle can not alias a newer
// callback. Timed events use their callback handle as their id.
type Handle uint64

var lastHandle atomic.Uint64

// NextHandle allocates a fresh handle.
func NextHandle() Handle {
	return Handle(lastHandle.Add(1))
}

// Store keeps callbacks alive on the Go side on behalf of one Lua state.
// A callback stays reachable until Unref is called for its handle.
type Store struct {
	mu       sync.Mutex
	refs     map[Handle]lua.LValue
	released atomic.Uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{refs: make(map[Handle]lua.LValue)}
}

// Ref stores fn under a new handle.
func (s *Store) Ref(fn lua.LValue) Handle {
	h := NextHandle()
	s.mu.Lock()
	s.refs[h] = fn
	s.mu.Unlock()
	return h
}

// Get returns the callback stored under h.
func (s *Store) Get(h Handle) (lua.LValue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn, ok := s.refs[h]
	return fn, ok
}

// Unref releases h. It returns false when h was not held, so a double
// release is observable rather than silent.
func (s *Store) Unref(h Handle) bool {
	s.mu.Lock()
	_, ok := s.refs[h]
	delete(s.refs, h)
	s.mu.Unlock()
	if ok {
		s.released.Add(1)
	}
	return ok
}

// Len returns the number of live callbacks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.refs)
}

// Released returns how many handles have been released over the store's
// lifetime.
func (s *Store) Released() uint64 {
	return s.released.Load()
}
