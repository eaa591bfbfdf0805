// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/oklog/ulid/v2"
	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/hooks"
)

// APIVersion is the version of the script API reported to
// lunar.require_version.
const APIVersion = "1.0.0"

var apiVersion = semver.MustParse(APIVersion)

// registerAPI installs the global lunar table.
func (r *Runtime) registerAPI() {
	L := r.L
	mod := L.NewTable()

	globals := []struct {
		name string
		m    *binding.Map
		fam  *hooks.Family
	}{
		{"register_server_event", r.maps.server, hooks.Server},
		{"register_player_event", r.maps.player, hooks.Player},
		{"register_guild_event", r.maps.guild, hooks.Guild},
		{"register_group_event", r.maps.group, hooks.Group},
		{"register_vehicle_event", r.maps.vehicle, hooks.Vehicle},
		{"register_ticket_event", r.maps.ticket, hooks.Ticket},
		{"register_bg_event", r.maps.bg, hooks.BG},
	}
	for _, g := range globals {
		L.SetField(mod, g.name, L.NewFunction(registerGlobal(g.m, g.fam)))
	}

	entries := []struct {
		name string
		m    *binding.Map
		fam  *hooks.Family
	}{
		{"register_creature_event", r.maps.creature, hooks.Creature},
		{"register_gameobject_event", r.maps.gameObject, hooks.GameObject},
		{"register_spell_event", r.maps.spell, hooks.Spell},
		{"register_creature_gossip_event", r.maps.creatureGossip, hooks.Gossip},
		{"register_gameobject_gossip_event", r.maps.gameObjectGossip, hooks.Gossip},
		{"register_item_gossip_event", r.maps.itemGossip, hooks.Gossip},
		{"register_player_gossip_event", r.maps.playerGossip, hooks.Gossip},
		{"register_map_event", r.maps.mapEvents, hooks.Instance},
		{"register_instance_event", r.maps.instance, hooks.Instance},
	}
	for _, e := range entries {
		L.SetField(mod, e.name, L.NewFunction(registerEntry(e.m, e.fam)))
	}

	L.SetField(mod, "register_unique_creature_event", L.NewFunction(r.registerUniqueCreature))
	L.SetField(mod, "unregister", L.NewFunction(r.unregister))

	L.SetField(mod, "create_event", L.NewFunction(r.createEvent))
	L.SetField(mod, "remove_event", L.NewFunction(r.removeEvent))
	L.SetField(mod, "remove_events", L.NewFunction(r.removeEvents))

	L.SetField(mod, "log", L.NewFunction(r.logFn))
	L.SetField(mod, "new_request_id", L.NewFunction(newRequestID))
	L.SetField(mod, "require_version", L.NewFunction(requireVersion))
	L.SetField(mod, "version", lua.LString(APIVersion))
	L.SetField(mod, "runtime", lua.LString(r.name))

	L.SetField(mod, "kv_get", L.NewFunction(r.kvGet))
	L.SetField(mod, "kv_set", L.NewFunction(r.kvSet))
	L.SetField(mod, "kv_delete", L.NewFunction(r.kvDelete))
	L.SetField(mod, "kv_keys", L.NewFunction(r.kvKeys))

	L.SetField(mod, "get_instance_data", L.NewFunction(r.getInstanceData))

	events := L.NewTable()
	for _, fam := range hooks.Families() {
		kinds := L.NewTable()
		for _, k := range fam.Kinds() {
			L.SetField(kinds, fam.KindName(k), lua.LNumber(k))
		}
		L.SetField(events, fam.Name(), kinds)
	}
	L.SetField(mod, "events", events)

	L.SetGlobal("lunar", mod)
}

func checkKind(L *lua.LState, idx int, fam *hooks.Family) uint32 {
	kind := uint32(L.CheckInt(idx))
	if !fam.Valid(kind) {
		L.ArgError(idx, "unknown "+fam.Name()+" event "+lua.LNumber(kind).String())
	}
	return kind
}

func optShots(L *lua.LState, idx int) uint32 {
	shots := L.OptInt(idx, 0)
	if shots < 0 {
		L.ArgError(idx, "shots must not be negative")
	}
	return uint32(shots)
}

// lunar.register_<family>_event(kind, fn[, shots]) -> handle
func registerGlobal(m *binding.Map, fam *hooks.Family) lua.LGFunction {
	return func(L *lua.LState) int {
		kind := checkKind(L, 1, fam)
		fn := L.CheckFunction(2)
		shots := optShots(L, 3)
		h := m.Insert(binding.GlobalKey(kind), fn, shots)
		L.Push(lua.LNumber(h))
		return 1
	}
}

// lunar.register_<family>_event(entry, kind, fn[, shots]) -> handle
func registerEntry(m *binding.Map, fam *hooks.Family) lua.LGFunction {
	return func(L *lua.LState) int {
		entry := uint32(L.CheckInt(1))
		kind := checkKind(L, 2, fam)
		fn := L.CheckFunction(3)
		shots := optShots(L, 4)
		h := m.Insert(binding.EntryKey(kind, entry), fn, shots)
		L.Push(lua.LNumber(h))
		return 1
	}
}

// lunar.register_unique_creature_event(guid, instance_id, kind, fn[, shots]) -> handle
func (r *Runtime) registerUniqueCreature(L *lua.LState) int {
	guid, err := binding.ParseGUID(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if guid.IsZero() {
		L.ArgError(1, "guid must not be zero")
		return 0
	}
	instance := uint32(L.CheckInt(2))
	kind := checkKind(L, 3, hooks.Creature)
	fn := L.CheckFunction(4)
	shots := optShots(L, 5)
	h := r.maps.creatureUnique.Insert(binding.UniqueKey(kind, guid, instance), fn, shots)
	L.Push(lua.LNumber(h))
	return 1
}

// lunar.unregister(handle) -> bool
func (r *Runtime) unregister(L *lua.LState) int {
	h := binding.Handle(L.CheckInt64(1))
	for _, m := range r.maps.all() {
		if m.Remove(h) {
			L.Push(lua.LTrue)
			return 1
		}
	}
	L.Push(lua.LFalse)
	return 1
}

// lunar.create_event(fn, delay | {min, max}[, repeats]) -> id
func (r *Runtime) createEvent(L *lua.LState) int {
	L.Push(lua.LNumber(r.scheduleFromLua(L, r.timers.Global(), 1)))
	return 1
}

// lunar.remove_event(id[, all[, hard]]) -> bool
func (r *Runtime) removeEvent(L *lua.LState) int {
	id := binding.Handle(L.CheckInt64(1))
	all := L.OptBool(2, false)
	state := stateFor(L.OptBool(3, false))
	var found bool
	if all {
		found = r.timers.SetState(id, state)
	} else {
		found = r.timers.Global().SetState(id, state)
	}
	L.Push(lua.LBool(found))
	return 1
}

// lunar.remove_events([all[, hard]])
func (r *Runtime) removeEvents(L *lua.LState) int {
	all := L.OptBool(1, false)
	state := stateFor(L.OptBool(2, false))
	if all {
		r.timers.SetStates(state)
	} else {
		r.timers.Global().SetStates(state)
	}
	return 0
}

// lunar.log(level, message)
func (r *Runtime) logFn(L *lua.LState) int {
	level := L.CheckString(1)
	message := L.CheckString(2)

	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		L.ArgError(1, "level must be one of debug, info, warn, error")
		return 0
	}
	r.logger.Log(r.ctx, lvl, message, "source", "script")
	return 0
}

// lunar.new_request_id() -> string
func newRequestID(L *lua.LState) int {
	L.Push(lua.LString(ulid.Make().String()))
	return 1
}

// lunar.require_version(constraint) -> bool
func requireVersion(L *lua.LState) int {
	c, err := semver.NewConstraint(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LBool(c.Check(apiVersion)))
	return 1
}

func (r *Runtime) kvNamespace(L *lua.LState, idx int) string {
	return L.OptString(idx, r.namespace)
}

// lunar.kv_get(key[, namespace]) -> value|nil, err|nil
func (r *Runtime) kvGet(L *lua.LState) int {
	key := L.CheckString(1)
	ns := r.kvNamespace(L, 2)
	if r.kv == nil {
		L.Push(lua.LNil)
		L.Push(lua.LString("kv store not available"))
		return 2
	}
	value, err := r.kv.Get(r.ctx, ns, key)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	if value == nil {
		L.Push(lua.LNil)
		L.Push(lua.LNil)
		return 2
	}
	L.Push(lua.LString(string(value)))
	L.Push(lua.LNil)
	return 2
}

// lunar.kv_set(key, value[, namespace]) -> err|nil
func (r *Runtime) kvSet(L *lua.LState) int {
	key := L.CheckString(1)
	value := L.CheckString(2)
	ns := r.kvNamespace(L, 3)
	if r.kv == nil {
		L.Push(lua.LString("kv store not available"))
		return 1
	}
	if err := r.kv.Set(r.ctx, ns, key, []byte(value)); err != nil {
		L.Push(lua.LString(err.Error()))
		return 1
	}
	return 0
}

// lunar.kv_delete(key[, namespace]) -> err|nil
func (r *Runtime) kvDelete(L *lua.LState) int {
	key := L.CheckString(1)
	ns := r.kvNamespace(L, 2)
	if r.kv == nil {
		L.Push(lua.LString("kv store not available"))
		return 1
	}
	if err := r.kv.Delete(r.ctx, ns, key); err != nil {
		L.Push(lua.LString(err.Error()))
		return 1
	}
	return 0
}

// lunar.kv_keys([namespace]) -> {key, ...}|nil, err|nil
func (r *Runtime) kvKeys(L *lua.LState) int {
	ns := r.kvNamespace(L, 1)
	if r.kv == nil {
		L.Push(lua.LNil)
		L.Push(lua.LString("kv store not available"))
		return 2
	}
	keys, err := r.kv.Keys(r.ctx, ns)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	tbl := L.CreateTable(len(keys), 0)
	for _, k := range keys {
		tbl.Append(lua.LString(k))
	}
	L.Push(tbl)
	L.Push(lua.LNil)
	return 2
}

// lunar.get_instance_data(map) -> table
func (r *Runtime) getInstanceData(L *lua.LState) int {
	obj := checkObject(L, 1)
	p, ok := obj.(Placed)
	if !ok {
		L.ArgError(1, obj.TypeName()+" is not placed on a map")
		return 0
	}
	L.Push(r.instanceTable(p.InstanceID()))
	return 1
}

func (r *Runtime) instanceTable(instanceID uint32) *lua.LTable {
	t, ok := r.instanceData[instanceID]
	if !ok {
		t = r.L.NewTable()
		r.instanceData[instanceID] = t
	}
	return t
}
