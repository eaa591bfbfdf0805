// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package timed

import (
	"container/heap"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/lunar/internal/binding"
)

// Option configures a Processor or Manager.
type Option func(*options)

type options struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// WithRand sets the random source used to pick delays inside a range.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger sets the logger for dropped and failed events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // scheduling jitter, not security
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Processor runs the timed events of one owner. It keeps its own clock that
// only advances through Update. A Processor is driven from the goroutine
// that owns its runtime and is not safe for concurrent use.
type Processor struct {
	owner    any
	registry Registry
	rng      *rand.Rand
	logger   *slog.Logger

	now    time.Duration
	seq    uint64
	events eventHeap
	index  map[binding.Handle]*Event
}

// NewProcessor creates a processor for owner, which is passed back to the
// callback when an event fires. owner is nil for global events.
func NewProcessor(owner any, registry Registry, opts ...Option) *Processor {
	o := buildOptions(opts)
	return &Processor{
		owner:    owner,
		registry: registry,
		rng:      o.rng,
		logger:   o.logger,
		index:    make(map[binding.Handle]*Event),
	}
}

// Owner returns the object this processor belongs to.
func (p *Processor) Owner() any { return p.owner }

// Schedule arms the callback id, held by rt, to fire after a delay picked
// from [minDelay, maxDelay]. repeats of zero fires until removed.
func (p *Processor) Schedule(id binding.Handle, rt Owner, minDelay, maxDelay time.Duration, repeats uint32) error {
	if minDelay < time.Millisecond || maxDelay < minDelay {
		return oops.In("timed").
			Code("INVALID_DELAY").
			With("min", minDelay).
			With("max", maxDelay).
			Errorf("delay range must satisfy 1ms <= min <= max")
	}

	p.registry.Add(id, rt)
	e := &Event{ID: id, Min: minDelay, Max: maxDelay, Repeats: repeats, state: Run}
	p.arm(e)
	p.index[id] = e
	return nil
}

func (p *Processor) pickDelay(minDelay, maxDelay time.Duration) time.Duration {
	if maxDelay <= minDelay {
		return minDelay
	}
	span := int64((maxDelay - minDelay) / time.Millisecond)
	return minDelay + time.Duration(p.rng.Int64N(span+1))*time.Millisecond
}

func (p *Processor) arm(e *Event) {
	e.Delay = p.pickDelay(e.Min, e.Max)
	e.at = p.now + e.Delay
	p.seq++
	e.seq = p.seq
	heap.Push(&p.events, e)
}

// Update advances the clock by diff and fires every event that is due.
// Repeating events are rearmed before their callback runs, so the callback
// may remove its own event.
func (p *Processor) Update(diff time.Duration) {
	p.now += diff
	p.sweep()

	for p.events.Len() > 0 && p.events[0].at <= p.now {
		e := heap.Pop(&p.events).(*Event)
		if e.state != Run {
			p.drop(e)
			continue
		}

		delay := e.Delay
		calls := e.Repeats
		last := e.Repeats == 1
		if e.Repeats > 0 {
			e.Repeats--
		}
		if !last {
			p.arm(e)
		}

		p.fire(e.ID, delay, calls)

		if last {
			p.drop(e)
		}
	}
}

// sweep drops erased events without firing them.
func (p *Processor) sweep() {
	var erased []*Event
	for _, e := range p.events {
		if e.state == Erase {
			erased = append(erased, e)
		}
	}
	for _, e := range erased {
		if e.index >= 0 {
			heap.Remove(&p.events, e.index)
		}
		p.drop(e)
	}
}

func (p *Processor) fire(id binding.Handle, delay time.Duration, calls uint32) {
	entry, ok := p.registry.Get(id)
	if !ok {
		p.logger.Debug("timed event has no registry entry", "event", uint64(id))
		return
	}
	if !entry.Owner.Alive() {
		return
	}
	entry.Owner.FireTimed(id, delay, calls, p.owner)
}

// drop forgets e and releases its callback. The registry entry is removed
// exactly once; the callback is only released while its runtime is alive.
func (p *Processor) drop(e *Event) {
	if cur, ok := p.index[e.ID]; ok && cur == e {
		delete(p.index, e.ID)
	}
	entry, ok := p.registry.Remove(e.ID)
	if ok && entry.Owner.Alive() {
		entry.Owner.Release(e.ID)
	}
}

// SetState changes the state of event id. Erase removes the event from the
// index right away; it is swept on the next Update.
func (p *Processor) SetState(id binding.Handle, s State) bool {
	e, ok := p.index[id]
	if !ok {
		return false
	}
	e.SetState(s)
	if s == Erase {
		delete(p.index, id)
	}
	return true
}

// SetStates applies s to every scheduled event.
func (p *Processor) SetStates(s State) {
	for _, e := range p.events {
		e.SetState(s)
	}
	if s == Erase {
		p.index = make(map[binding.Handle]*Event)
	}
}

// Has reports whether id is scheduled and not erased.
func (p *Processor) Has(id binding.Handle) bool {
	_, ok := p.index[id]
	return ok
}

// Pending returns the number of events in the queue, including erased
// events that have not been swept yet.
func (p *Processor) Pending() int { return p.events.Len() }

// Close releases every event without firing it.
func (p *Processor) Close() {
	events := p.events
	p.events = nil
	p.index = make(map[binding.Handle]*Event)
	for _, e := range events {
		e.index = -1
		p.drop(e)
	}
}
