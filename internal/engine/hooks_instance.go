// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/hooks"
)

// instanceEvent consults the handlers bound to the map id first and then
// those bound to this one instance.
func (r *Runtime) instanceEvent(e hooks.InstanceEvent, m Map) target {
	kind := uint32(e)
	return pair(
		r.maps.mapEvents, binding.EntryKey(kind, m.MapID()),
		r.maps.instance, binding.EntryKey(kind, m.InstanceID()),
	)
}

// instanceArgs prepends the instance data table and the map to vals.
func (r *Runtime) instanceArgs(m Map, vals ...any) []any {
	return append([]any{r.instanceTable(m.InstanceID()), m}, vals...)
}

func (r *Runtime) fireInstance(e hooks.InstanceEvent, m Map, vals ...any) {
	t := r.instanceEvent(e, m)
	if !r.alive || !t.active() {
		return
	}
	r.fire(t, r.instanceArgs(m, vals...)...)
}

// OnInstanceInitialize is raised when an instance script starts.
func (r *Runtime) OnInstanceInitialize(m Map) {
	r.fireInstance(hooks.InstanceOnInitialize, m)
}

// OnInstanceLoad is raised after saved instance state has been loaded.
func (r *Runtime) OnInstanceLoad(m Map) {
	r.fireInstance(hooks.InstanceOnLoad, m)
}

// OnInstanceUpdate is raised on every tick of the instance.
func (r *Runtime) OnInstanceUpdate(m Map, diff uint32) {
	r.fireInstance(hooks.InstanceOnUpdate, m, diff)
}

// OnInstancePlayerEnter is raised when p enters the instance.
func (r *Runtime) OnInstancePlayerEnter(m Map, p Player) {
	r.fireInstance(hooks.InstanceOnPlayerEnter, m, p)
}

// OnInstanceCreatureCreate is raised when c is created in the instance.
func (r *Runtime) OnInstanceCreatureCreate(m Map, c Creature) {
	r.fireInstance(hooks.InstanceOnCreatureCreate, m, c)
}

// OnInstanceGameObjectCreate is raised when g is created in the instance.
func (r *Runtime) OnInstanceGameObjectCreate(m Map, g GameObject) {
	r.fireInstance(hooks.InstanceOnGameObjectCreate, m, g)
}

// OnCheckEncounterInProgress reports whether a script considers a boss
// encounter in progress.
func (r *Runtime) OnCheckEncounterInProgress(m Map) bool {
	t := r.instanceEvent(hooks.InstanceOnCheckEncounter, m)
	if !r.alive || !t.active() {
		return false
	}
	return r.fireBool(t, false, r.instanceArgs(m)...)
}
