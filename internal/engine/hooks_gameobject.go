// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/hooks"
)

func (r *Runtime) gameObjectEvent(e hooks.GameObjectEvent, g GameObject) target {
	return single(r.maps.gameObject, binding.EntryKey(uint32(e), g.Entry()))
}

// OnGameObjectDummyEffect is raised when a dummy spell effect hits g.
func (r *Runtime) OnGameObjectDummyEffect(caster Entity, spellID uint32, effIndex uint8, g GameObject) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnDummyEffect, g), caster, spellID, effIndex, g)
}

// UpdateGameObjectAI is raised on every tick of g.
func (r *Runtime) UpdateGameObjectAI(g GameObject, diff uint32) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnAIUpdate, g), g, diff)
}

// OnGameObjectQuestAccept is raised when a player accepts a quest from g.
func (r *Runtime) OnGameObjectQuestAccept(p Player, g GameObject, quest Object) bool {
	return r.fireBool(r.gameObjectEvent(hooks.GameObjectOnQuestAccept, g), false, p, g, quest)
}

// OnGameObjectQuestReward is raised when a player turns in a quest at g.
func (r *Runtime) OnGameObjectQuestReward(p Player, g GameObject, quest Object, opt uint32) bool {
	return r.fireBool(r.gameObjectEvent(hooks.GameObjectOnQuestReward, g), false, p, g, quest, opt)
}

// OnGameObjectDialogStatus is raised when a player asks for g's quest
// marker.
func (r *Runtime) OnGameObjectDialogStatus(p Player, g GameObject) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnDialogStatus, g), p, g)
}

// OnGameObjectDestroyed is raised when a destructible object is destroyed.
func (r *Runtime) OnGameObjectDestroyed(g GameObject, attacker Entity) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnDestroyed, g), g, attacker)
}

// OnGameObjectDamaged is raised when a destructible object takes damage.
func (r *Runtime) OnGameObjectDamaged(g GameObject, attacker Entity) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnDamaged, g), g, attacker)
}

// OnLootStateChanged is raised when g's loot state changes.
func (r *Runtime) OnLootStateChanged(g GameObject, state uint32) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnLootStateChange, g), g, state)
}

// OnGameObjectStateChanged is raised when g's state changes.
func (r *Runtime) OnGameObjectStateChanged(g GameObject, state uint32) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnGOStateChanged, g), g, state)
}

// OnGameObjectSpawn is raised when g spawns.
func (r *Runtime) OnGameObjectSpawn(g GameObject) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnSpawn, g), g)
}

// OnGameObjectAdd is raised when g is added to a map.
func (r *Runtime) OnGameObjectAdd(g GameObject) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnAdd, g), g)
}

// OnGameObjectRemove is raised when g leaves its map. Its timed events are
// cancelled afterwards.
func (r *Runtime) OnGameObjectRemove(g GameObject) {
	r.fire(r.gameObjectEvent(hooks.GameObjectOnRemove, g), g)
	r.RemoveObjectEvents(g)
}

// OnGameObjectUse reports whether a script handled p using g.
func (r *Runtime) OnGameObjectUse(p Player, g GameObject) bool {
	return r.fireBool(r.gameObjectEvent(hooks.GameObjectOnUse, g), false, g, p)
}
