// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/internal/timed"
	"github.com/holomush/lunar/pkg/errutil"
)

func stateFor(hard bool) timed.State {
	if hard {
		return timed.Erase
	}
	return timed.Abort
}

func (r *Runtime) objectProcessor(e Entity) *timed.Processor {
	if p, ok := r.objectTimers[e.GUID()]; ok {
		return p
	}
	p := r.timers.NewProcessor(e)
	r.objectTimers[e.GUID()] = p
	return p
}

// scheduleFromLua reads (fn, delay | {min, max}[, repeats]) starting at idx
// and schedules fn on p. Delays are in milliseconds.
func (r *Runtime) scheduleFromLua(L *lua.LState, p *timed.Processor, idx int) binding.Handle {
	fn := L.CheckFunction(idx)
	var minMs, maxMs int64
	switch d := L.Get(idx + 1).(type) {
	case lua.LNumber:
		minMs, maxMs = int64(d), int64(d)
	case *lua.LTable:
		minMs = int64(lua.LVAsNumber(d.RawGetInt(1)))
		maxMs = int64(lua.LVAsNumber(d.RawGetInt(2)))
	default:
		L.ArgError(idx+1, "delay must be a number or a {min, max} table")
		return 0
	}
	repeats := L.OptInt(idx+2, 1)
	if repeats < 0 {
		L.ArgError(idx+2, "repeats must not be negative")
		return 0
	}

	id := r.store.Ref(fn)
	err := p.Schedule(id, r, time.Duration(minMs)*time.Millisecond, time.Duration(maxMs)*time.Millisecond, uint32(repeats))
	if err != nil {
		r.store.Unref(id)
		errutil.LogWarn(r.logger, "timed event rejected", err)
		L.ArgError(idx+1, err.Error())
		return 0
	}
	pendingTimedEvents.WithLabelValues(r.name).Set(float64(r.timers.Pending()))
	return id
}

// UpdateTimers advances the global timed events by diff. OnWorldUpdate calls
// it before dispatching; hosts that never raise world updates call it
// directly.
func (r *Runtime) UpdateTimers(diff time.Duration) {
	if !r.alive {
		return
	}
	r.timers.Update(diff)
	pendingTimedEvents.WithLabelValues(r.name).Set(float64(r.timers.Pending()))
}

// UpdateObjectEvents advances the timed events attached to obj.
func (r *Runtime) UpdateObjectEvents(obj Entity, diff time.Duration) {
	if !r.alive {
		return
	}
	if p, ok := r.objectTimers[obj.GUID()]; ok {
		p.Update(diff)
	}
}

// RemoveObjectEvents cancels every timed event attached to obj. The logout,
// remove-from-world and delete hooks call it; hosts call it for any other
// way an object goes away.
func (r *Runtime) RemoveObjectEvents(obj Entity) {
	if obj == nil {
		return
	}
	p, ok := r.objectTimers[obj.GUID()]
	if !ok {
		return
	}
	delete(r.objectTimers, obj.GUID())
	r.timers.Remove(p)
	pendingTimedEvents.WithLabelValues(r.name).Set(float64(r.timers.Pending()))
}
