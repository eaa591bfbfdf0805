// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/hooks"
)

func gossipEvent(m *binding.Map, e hooks.GossipEvent, entry uint32) target {
	return single(m, binding.EntryKey(uint32(e), entry))
}

// OnGossipHello is raised when p opens c's gossip menu. It reports whether
// scripts handled the menu: false when none listens or a handler returned
// false, true otherwise.
func (r *Runtime) OnGossipHello(p Player, c Creature) bool {
	return r.fireBoolOr(gossipEvent(r.maps.creatureGossip, hooks.GossipOnHello, c.Entry()), false, true, p, c)
}

// OnGossipSelect is raised when p picks an option of c's menu.
func (r *Runtime) OnGossipSelect(p Player, c Creature, sender, action uint32) bool {
	return r.fireBoolOr(gossipEvent(r.maps.creatureGossip, hooks.GossipOnSelect, c.Entry()), false, true, p, c, sender, action)
}

// OnGossipSelectCode is OnGossipSelect for options that prompt for text.
func (r *Runtime) OnGossipSelectCode(p Player, c Creature, sender, action uint32, code string) bool {
	return r.fireBoolOr(gossipEvent(r.maps.creatureGossip, hooks.GossipOnSelect, c.Entry()), false, true, p, c, sender, action, code)
}

// OnGameObjectGossipHello is raised when p opens g's gossip menu.
func (r *Runtime) OnGameObjectGossipHello(p Player, g GameObject) bool {
	return r.fireBoolOr(gossipEvent(r.maps.gameObjectGossip, hooks.GossipOnHello, g.Entry()), false, true, p, g)
}

// OnGameObjectGossipSelect is raised when p picks an option of g's menu.
func (r *Runtime) OnGameObjectGossipSelect(p Player, g GameObject, sender, action uint32) bool {
	return r.fireBoolOr(gossipEvent(r.maps.gameObjectGossip, hooks.GossipOnSelect, g.Entry()), false, true, p, g, sender, action)
}

// OnGameObjectGossipSelectCode is OnGameObjectGossipSelect with a text code.
func (r *Runtime) OnGameObjectGossipSelectCode(p Player, g GameObject, sender, action uint32, code string) bool {
	return r.fireBoolOr(gossipEvent(r.maps.gameObjectGossip, hooks.GossipOnSelect, g.Entry()), false, true, p, g, sender, action, code)
}

// OnItemUse is raised when p uses item. Returns false when a script
// claimed the use.
func (r *Runtime) OnItemUse(p Player, item Item) bool {
	return r.fireBool(gossipEvent(r.maps.itemGossip, hooks.GossipOnHello, item.Entry()), true, p, item)
}

// OnItemGossipSelect is raised when p picks an option of item's menu. code
// is empty for plain options.
func (r *Runtime) OnItemGossipSelect(p Player, item Item, sender, action uint32, code string) {
	r.fire(gossipEvent(r.maps.itemGossip, hooks.GossipOnSelect, item.Entry()), p, item, sender, action, optString(code))
}

// OnPlayerGossipSelect is raised when p picks an option of a menu a script
// sent from menuID.
func (r *Runtime) OnPlayerGossipSelect(p Player, menuID, sender, action uint32, code string) {
	r.fire(gossipEvent(r.maps.playerGossip, hooks.GossipOnSelect, menuID), p, p, sender, action, optString(code))
}

// optString maps an empty string to nil.
func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
