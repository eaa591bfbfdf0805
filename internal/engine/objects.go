// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/lunar/internal/binding"
)

// Object is any native value handed to scripts by identity. The engine never
// looks inside an Object beyond the optional capabilities below.
type Object interface {
	TypeName() string
}

// Entity is an Object with a world identity.
type Entity interface {
	Object
	GUID() binding.GUID
	Entry() uint32
}

// Placed is implemented by objects that live on a map.
type Placed interface {
	MapID() uint32
	InstanceID() uint32
}

// Named is implemented by objects with a display name.
type Named interface {
	Name() string
}

// Creature is a non-player unit.
type Creature interface {
	Entity
	Placed
}

// GameObject is a world object such as a door or a chest.
type GameObject interface {
	Entity
	Placed
}

// Player is a player character.
type Player interface {
	Entity
}

// Item is an item instance.
type Item interface {
	Entity
}

// Map is a map or one instance of it.
type Map interface {
	Object
	Placed
}

// Spell is one cast of a spell.
type Spell interface {
	Object
	SpellID() uint32
}

const objectTypeName = "lunar.object"

// objectRef is the userdata payload of a pushed object. It goes invalid once
// the outermost dispatch that pushed it returns.
type objectRef struct {
	obj   Object
	valid bool
}

func (r *Runtime) registerObjectType() {
	L := r.L
	mt := L.NewTypeMetatable(objectTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"get_guid":        r.objGUID,
		"get_entry":       r.objEntry,
		"get_type_name":   r.objTypeName,
		"get_name":        r.objName,
		"get_map_id":      r.objMapID,
		"get_instance_id": r.objInstanceID,
		"is_valid":        objIsValid,
		"register_event":  r.objRegisterEvent,
		"remove_event":    r.objRemoveEvent,
		"remove_events":   r.objRemoveEvents,
	}))
	L.SetField(mt, "__eq", L.NewFunction(objEq))
	L.SetField(mt, "__tostring", L.NewFunction(objToString))
}

func (r *Runtime) pushObject(obj Object) lua.LValue {
	ref := &objectRef{obj: obj, valid: true}
	ud := r.L.NewUserData()
	ud.Value = ref
	r.L.SetMetatable(ud, r.L.GetTypeMetatable(objectTypeName))
	r.pushed = append(r.pushed, ref)
	return ud
}

// invalidateObjects marks every object pushed since the last call invalid.
func (r *Runtime) invalidateObjects() {
	for i, ref := range r.pushed {
		ref.valid = false
		r.pushed[i] = nil
	}
	r.pushed = r.pushed[:0]
}

func toRef(L *lua.LState, idx int) (*objectRef, bool) {
	ud, ok := L.Get(idx).(*lua.LUserData)
	if !ok {
		return nil, false
	}
	ref, ok := ud.Value.(*objectRef)
	return ref, ok
}

func checkObject(L *lua.LState, idx int) Object {
	ref, ok := toRef(L, idx)
	if !ok {
		L.ArgError(idx, "object expected")
		return nil
	}
	if !ref.valid {
		L.RaiseError("%s object is no longer valid", ref.obj.TypeName())
		return nil
	}
	return ref.obj
}

func checkEntity(L *lua.LState, idx int) Entity {
	obj := checkObject(L, idx)
	e, ok := obj.(Entity)
	if !ok {
		L.ArgError(idx, obj.TypeName()+" has no world identity")
		return nil
	}
	return e
}

func (r *Runtime) objGUID(L *lua.LState) int {
	if e, ok := checkObject(L, 1).(Entity); ok {
		L.Push(lua.LString(e.GUID().String()))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func (r *Runtime) objEntry(L *lua.LState) int {
	if e, ok := checkObject(L, 1).(Entity); ok {
		L.Push(lua.LNumber(e.Entry()))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func (r *Runtime) objTypeName(L *lua.LState) int {
	L.Push(lua.LString(checkObject(L, 1).TypeName()))
	return 1
}

func (r *Runtime) objName(L *lua.LState) int {
	if n, ok := checkObject(L, 1).(Named); ok {
		L.Push(lua.LString(n.Name()))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func (r *Runtime) objMapID(L *lua.LState) int {
	if p, ok := checkObject(L, 1).(Placed); ok {
		L.Push(lua.LNumber(p.MapID()))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func (r *Runtime) objInstanceID(L *lua.LState) int {
	if p, ok := checkObject(L, 1).(Placed); ok {
		L.Push(lua.LNumber(p.InstanceID()))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func objIsValid(L *lua.LState) int {
	ref, ok := toRef(L, 1)
	L.Push(lua.LBool(ok && ref.valid))
	return 1
}

// obj:register_event(fn, delay | {min, max}[, repeats]) -> id
func (r *Runtime) objRegisterEvent(L *lua.LState) int {
	e := checkEntity(L, 1)
	p := r.objectProcessor(e)
	L.Push(lua.LNumber(r.scheduleFromLua(L, p, 2)))
	return 1
}

// obj:remove_event(id[, hard])
func (r *Runtime) objRemoveEvent(L *lua.LState) int {
	e := checkEntity(L, 1)
	id := binding.Handle(L.CheckInt64(2))
	if p, ok := r.objectTimers[e.GUID()]; ok {
		p.SetState(id, stateFor(L.OptBool(3, false)))
	}
	return 0
}

// obj:remove_events([hard])
func (r *Runtime) objRemoveEvents(L *lua.LState) int {
	e := checkEntity(L, 1)
	if p, ok := r.objectTimers[e.GUID()]; ok {
		p.SetStates(stateFor(L.OptBool(2, false)))
	}
	return 0
}

// objEq compares two objects by world identity when both have one.
func objEq(L *lua.LState) int {
	a, okA := toRef(L, 1)
	b, okB := toRef(L, 2)
	if !okA || !okB {
		L.Push(lua.LFalse)
		return 1
	}
	ea, okA := a.obj.(Entity)
	eb, okB := b.obj.(Entity)
	if okA && okB {
		L.Push(lua.LBool(ea.GUID() == eb.GUID()))
		return 1
	}
	L.Push(lua.LBool(a == b))
	return 1
}

func objToString(L *lua.LState) int {
	ref, ok := toRef(L, 1)
	if !ok {
		L.Push(lua.LString("lunar.object"))
		return 1
	}
	name := ref.obj.TypeName()
	if e, ok := ref.obj.(Entity); ok {
		name = fmt.Sprintf("%s: %s (entry %d)", name, e.GUID(), e.Entry())
	}
	if !ref.valid {
		name += " [invalid]"
	}
	L.Push(lua.LString(name))
	return 1
}
