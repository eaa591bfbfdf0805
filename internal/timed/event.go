// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package timed schedules delayed and repeating script callbacks.
//
// Every schedulable owner gets its own Processor so its events can be
// cancelled together when the owner goes away. A Manager holds all
// processors of one runtime plus one global processor for events with no
// owner. Fired events are resolved to their runtime through a Registry,
// which allows several runtimes to coexist.
package timed

import (
	"time"

	"github.com/holomush/lunar/internal/binding"
)

// State is the lifecycle state of a timed event.
type State uint8

// Event states. Erase is terminal.
const (
	// Run fires the event normally.
	Run State = iota
	// Abort drops the event without firing when its time comes.
	Abort
	// Erase drops the event at the next update.
	Erase
)

func (s State) String() string {
	switch s {
	case Run:
		return "run"
	case Abort:
		return "abort"
	case Erase:
		return "erase"
	default:
		return "unknown"
	}
}

// Event is one scheduled callback.
type Event struct {
	ID      binding.Handle
	Min     time.Duration
	Max     time.Duration
	Delay   time.Duration
	Repeats uint32 // 0 repeats forever

	state State
	at    time.Duration
	seq   uint64
	index int
}

// State returns the current state.
func (e *Event) State() State { return e.state }

// SetState moves the event to s unless it is already erased.
func (e *Event) SetState(s State) {
	if e.state != Erase {
		e.state = s
	}
}

// eventHeap orders events by fire time, then by insertion.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	e := x.(*Event)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
