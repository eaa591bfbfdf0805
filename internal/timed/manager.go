// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package timed

import (
	"time"

	"github.com/holomush/lunar/internal/binding"
)

// Manager owns the processors of one runtime.
type Manager struct {
	registry   Registry
	opts       []Option
	global     *Processor
	processors map[*Processor]struct{}
}

// NewManager creates a manager with an empty global processor.
func NewManager(registry Registry, opts ...Option) *Manager {
	return &Manager{
		registry:   registry,
		opts:       opts,
		global:     NewProcessor(nil, registry, opts...),
		processors: make(map[*Processor]struct{}),
	}
}

// Global returns the processor for events that belong to no object.
func (m *Manager) Global() *Processor { return m.global }

// NewProcessor creates and tracks a processor for owner.
func (m *Manager) NewProcessor(owner any) *Processor {
	p := NewProcessor(owner, m.registry, m.opts...)
	m.processors[p] = struct{}{}
	return p
}

// Remove closes p and stops tracking it.
func (m *Manager) Remove(p *Processor) {
	if _, ok := m.processors[p]; !ok {
		return
	}
	delete(m.processors, p)
	p.Close()
}

// Update advances the global processor.
func (m *Manager) Update(diff time.Duration) { m.global.Update(diff) }

// SetState changes the state of id in whichever processor holds it.
func (m *Manager) SetState(id binding.Handle, s State) bool {
	if m.global.SetState(id, s) {
		return true
	}
	for p := range m.processors {
		if p.SetState(id, s) {
			return true
		}
	}
	return false
}

// SetStates applies s to every event of every processor.
func (m *Manager) SetStates(s State) {
	m.global.SetStates(s)
	for p := range m.processors {
		p.SetStates(s)
	}
}

// Pending returns the number of queued events across all processors.
func (m *Manager) Pending() int {
	n := m.global.Pending()
	for p := range m.processors {
		n += p.Pending()
	}
	return n
}

// Close releases every pending event of every processor.
func (m *Manager) Close() {
	for p := range m.processors {
		p.Close()
	}
	m.processors = make(map[*Processor]struct{})
	m.global.Close()
}
