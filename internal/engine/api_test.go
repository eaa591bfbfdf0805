// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

type memKV struct {
	data map[string]string
	err  error
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(_ context.Context, namespace, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.data[namespace+"/"+key]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

func (m *memKV) Set(_ context.Context, namespace, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.data[namespace+"/"+key] = string(value)
	return nil
}

func (m *memKV) Delete(_ context.Context, namespace, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, namespace+"/"+key)
	return nil
}

func (m *memKV) Keys(_ context.Context, namespace string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var keys []string
	for k := range m.data {
		if key, ok := strings.CutPrefix(k, namespace+"/"); ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func TestRegister_UnknownKindRaises(t *testing.T) {
	r := newTestRuntime(t, ``)

	err := r.L.DoString(`lunar.register_player_event(9999, function() end)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown PLAYER event 9999")

	err = r.L.DoString(`lunar.register_player_event(E_MISSING, function() end)`)
	require.Error(t, err)

	err = r.L.DoString(`lunar.register_creature_event(1, 5, function() end, -1)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shots")
}

func TestRegisterUniqueCreature_RejectsZeroGUID(t *testing.T) {
	r := newTestRuntime(t, ``)

	err := r.L.DoString(`lunar.register_unique_creature_event("0", 1, lunar.events.CREATURE.ON_SPAWN, function() end)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guid must not be zero")

	err = r.L.DoString(`lunar.register_unique_creature_event("zz", 1, lunar.events.CREATURE.ON_SPAWN, function() end)`)
	require.Error(t, err)
	assert.Equal(t, 0, r.Bindings())
}

func TestRegister_ShotsExpire(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_player_event(E.PLAYER.ON_LOGIN, function() table.insert(calls, "once") end, 1)
lunar.register_player_event(E.PLAYER.ON_LOGIN, function() table.insert(calls, "twice") end, 2)
`)
	for range 3 {
		r.OnLogin(newPlayer(1))
	}
	assert.Equal(t, []string{"once", "twice", "twice"}, recorded(t, r))
	assert.Equal(t, 0, r.Bindings())
}

func TestUnregister(t *testing.T) {
	r := newTestRuntime(t, `
handle = lunar.register_player_event(E.PLAYER.ON_LOGIN, function() table.insert(calls, "login") end)
first = lunar.unregister(handle)
second = lunar.unregister(handle)
`)
	r.OnLogin(newPlayer(1))

	assert.Equal(t, lua.LTrue, r.L.GetGlobal("first"))
	assert.Equal(t, lua.LFalse, r.L.GetGlobal("second"))
	assert.Empty(t, recorded(t, r))
}

func TestUnregister_InsideHandler(t *testing.T) {
	r := newTestRuntime(t, `
local h
h = lunar.register_player_event(E.PLAYER.ON_LOGIN, function()
	table.insert(calls, "self")
	lunar.unregister(h)
end)
lunar.register_player_event(E.PLAYER.ON_LOGIN, function() table.insert(calls, "other") end)
`)
	r.OnLogin(newPlayer(1))
	r.OnLogin(newPlayer(1))

	assert.Equal(t, []string{"self", "other", "other"}, recorded(t, r))
}

func TestRequireVersion(t *testing.T) {
	r := newTestRuntime(t, `
table.insert(calls, tostring(lunar.require_version("^1.0")))
table.insert(calls, tostring(lunar.require_version(">= 2.0.0")))
table.insert(calls, lunar.version)
`)
	assert.Equal(t, []string{"true", "false", APIVersion}, recorded(t, r))

	err := r.L.DoString(`lunar.require_version("not a constraint")`)
	require.Error(t, err)
}

func TestNewRequestID(t *testing.T) {
	r := newTestRuntime(t, `
a = lunar.new_request_id()
b = lunar.new_request_id()
`)
	a := r.L.GetGlobal("a").String()
	b := r.L.GetGlobal("b").String()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestLog_RejectsUnknownLevel(t *testing.T) {
	r := newTestRuntime(t, `lunar.log("info", "hello from a script")`)

	err := r.L.DoString(`lunar.log("loud", "nope")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level must be one of")
}

func TestKV_RoundTrip(t *testing.T) {
	kv := newMemKV()
	r := newTestRuntime(t, `
assert(lunar.kv_set("greeting", "hello") == nil)
assert(lunar.kv_set("greeting", "hola", "spanish") == nil)
local v, err = lunar.kv_get("greeting")
table.insert(calls, v)
v = lunar.kv_get("greeting", "spanish")
table.insert(calls, v)
lunar.kv_delete("greeting")
v, err = lunar.kv_get("greeting")
table.insert(calls, tostring(v))
table.insert(calls, tostring(err))
`, func(o *Options) {
		o.KV = kv
		o.Namespace = "scripts"
	})

	assert.Equal(t, []string{"hello", "hola", "nil", "nil"}, recorded(t, r))
	assert.Equal(t, map[string]string{"spanish/greeting": "hola"}, kv.data)
}

func TestKV_KeysListsNamespace(t *testing.T) {
	kv := newMemKV()
	r := newTestRuntime(t, `
lunar.kv_set("b", "2")
lunar.kv_set("a", "1")
lunar.kv_set("c", "3", "other")
for _, k in ipairs(lunar.kv_keys()) do table.insert(calls, k) end
for _, k in ipairs(lunar.kv_keys("other")) do table.insert(calls, "other:"..k) end
local empty, err = lunar.kv_keys("missing")
table.insert(calls, #empty)
table.insert(calls, tostring(err))
`, func(o *Options) {
		o.KV = kv
		o.Namespace = "scripts"
	})

	assert.Equal(t, []string{"a", "b", "other:c", "0", "nil"}, recorded(t, r))
}

func TestKV_ErrorsAreReturnedAsStrings(t *testing.T) {
	kv := newMemKV()
	kv.err = errors.New("database unavailable")
	r := newTestRuntime(t, `
local v, err = lunar.kv_get("k")
table.insert(calls, tostring(v))
table.insert(calls, err)
table.insert(calls, lunar.kv_set("k", "v"))
local keys
keys, err = lunar.kv_keys()
table.insert(calls, tostring(keys))
table.insert(calls, err)
`, func(o *Options) { o.KV = kv })

	assert.Equal(t, []string{"nil", "database unavailable", "database unavailable", "nil", "database unavailable"}, recorded(t, r))
}

func TestKV_NotConfigured(t *testing.T) {
	r := newTestRuntime(t, `
local _, err = lunar.kv_get("k")
table.insert(calls, err)
table.insert(calls, lunar.kv_delete("k"))
local _, keysErr = lunar.kv_keys()
table.insert(calls, keysErr)
`)
	assert.Equal(t, []string{"kv store not available", "kv store not available", "kv store not available"}, recorded(t, r))
}

func TestGetInstanceData_RequiresPlacedObject(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_server_event(E.SERVER.MAP_ON_PLAYER_ENTER, function(_, map, player)
	lunar.get_instance_data(map).visits = (lunar.get_instance_data(map).visits or 0) + 1
	local ok = pcall(lunar.get_instance_data, player)
	table.insert(calls, tostring(ok))
end)
`)
	m := &fakeMap{mapID: 1, instanceID: 8}
	r.OnMapPlayerEnter(m, newPlayer(1))
	r.OnMapPlayerEnter(m, newPlayer(2))

	assert.Equal(t, []string{"false", "false"}, recorded(t, r))
	assert.Equal(t, lua.LNumber(2), r.instanceTable(8).RawGetString("visits"))
}

func TestEventsTable(t *testing.T) {
	r := newTestRuntime(t, `
table.insert(calls, E.SERVER.WORLD_ON_UPDATE)
table.insert(calls, E.PLAYER.ON_COMMAND)
table.insert(calls, E.CREATURE.ON_SPAWN)
table.insert(calls, E.GOSSIP.ON_SELECT)
table.insert(calls, lunar.runtime)
`)
	assert.Equal(t, []string{"13", "42", "5", "2", r.Name()}, recorded(t, r))
}
