// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package binding

import (
	"sync"

	lua "github.com/yuin/gopher-lua"
)

type entry struct {
	handle Handle
	// shots is the number of remaining calls; zero means unlimited.
	shots uint32
}

// Map binds keys to ordered callback lists. Callbacks fire in the order they
// were inserted.
type Map struct {
	name  string
	store *Store

	mu       sync.Mutex
	bindings map[Key][]entry
	index    map[Handle]Key
}

// NewMap creates an empty map whose callbacks live in store.
func NewMap(name string, store *Store) *Map {
	return &Map{
		name:     name,
		store:    store,
		bindings: make(map[Key][]entry),
		index:    make(map[Handle]Key),
	}
}

// Name returns the map name used in diagnostics.
func (m *Map) Name() string { return m.name }

// Insert appends fn to the callbacks of key. A positive shots value removes
// the binding after that many dispatches.
func (m *Map) Insert(key Key, fn lua.LValue, shots uint32) Handle {
	h := m.store.Ref(fn)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings[key] = append(m.bindings[key], entry{handle: h, shots: shots})
	m.index[h] = key
	return h
}

// Remove deletes the binding for h and releases its callback.
// It returns false if h is not bound in this map.
func (m *Map) Remove(h Handle) bool {
	m.mu.Lock()
	key, ok := m.index[h]
	if !ok {
		m.mu.Unlock()
		return false
	}
	delete(m.index, h)
	entries := m.bindings[key]
	for i, e := range entries {
		if e.handle == h {
			entries = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(entries) == 0 {
		delete(m.bindings, key)
	} else {
		m.bindings[key] = entries
	}
	m.mu.Unlock()

	m.store.Unref(h)
	return true
}

// Clear removes every binding of key.
func (m *Map) Clear(key Key) {
	m.mu.Lock()
	entries := m.bindings[key]
	delete(m.bindings, key)
	for _, e := range entries {
		delete(m.index, e.handle)
	}
	m.mu.Unlock()

	for _, e := range entries {
		m.store.Unref(e.handle)
	}
}

// ClearAll removes every binding in the map.
func (m *Map) ClearAll() {
	m.mu.Lock()
	handles := make([]Handle, 0, len(m.index))
	for h := range m.index {
		handles = append(handles, h)
	}
	m.bindings = make(map[Key][]entry)
	m.index = make(map[Handle]Key)
	m.mu.Unlock()

	for _, h := range handles {
		m.store.Unref(h)
	}
}

// HasBindingsFor reports whether any callback is bound to key.
func (m *Map) HasBindingsFor(key Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bindings[key]) > 0
}

// Len returns the number of bindings across all keys.
func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.index)
}

// PushRefsFor pushes the callbacks bound to key onto L in registration
// order and returns how many were pushed. Limited bindings use up one shot
// per push and are removed once exhausted; the pushed value stays valid for
// the dispatch in progress.
func (m *Map) PushRefsFor(L *lua.LState, key Key) int {
	m.mu.Lock()
	entries := m.bindings[key]
	if len(entries) == 0 {
		m.mu.Unlock()
		return 0
	}

	var expired []Handle
	kept := entries[:0]
	pushed := 0
	for _, e := range entries {
		fn, ok := m.store.Get(e.handle)
		if !ok {
			delete(m.index, e.handle)
			continue
		}
		L.Push(fn)
		pushed++
		if e.shots > 0 {
			e.shots--
			if e.shots == 0 {
				delete(m.index, e.handle)
				expired = append(expired, e.handle)
				continue
			}
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		delete(m.bindings, key)
	} else {
		m.bindings[key] = kept
	}
	m.mu.Unlock()

	for _, h := range expired {
		m.store.Unref(h)
	}
	return pushed
}
