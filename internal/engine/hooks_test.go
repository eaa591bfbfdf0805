// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/lunar/internal/binding"
)

func TestOnChat_BlockAndRewrite(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_player_event(E.PLAYER.ON_CHAT, function(_, p, msg)
	if msg == "spam" then return false end
	return nil, msg:upper()
end)
lunar.register_player_event(E.PLAYER.ON_WHISPER, function(_, p, msg, type, lang, receiver)
	table.insert(calls, receiver:get_name())
end)
`)
	p := newPlayer(1)

	msg, ok := r.OnChat(p, 1, 0, "hello")
	assert.True(t, ok)
	assert.Equal(t, "HELLO", msg)

	_, ok = r.OnChat(p, 1, 0, "spam")
	assert.False(t, ok)

	msg, ok = r.OnWhisper(p, 7, 0, "psst", newPlayer(2))
	assert.True(t, ok)
	assert.Equal(t, "psst", msg)
	assert.Equal(t, []string{"player-2"}, recorded(t, r))
}

func TestOnChat_AddonMessagesRouteToAddonEvent(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_server_event(E.SERVER.ADDON_ON_MESSAGE, function(_, sender, type, prefix, body, target)
	table.insert(calls, prefix)
	table.insert(calls, tostring(body))
	table.insert(calls, tostring(target))
	return prefix ~= "BLOCK"
end)
lunar.register_player_event(E.PLAYER.ON_CHAT, function() table.insert(calls, "chat") end)
`)
	p := newPlayer(1)

	_, ok := r.OnChat(p, 1, LangAddon, "DBM\tpull 10")
	assert.True(t, ok)
	_, ok = r.OnChannelChat(p, 1, LangAddon, "BLOCK", 5)
	assert.False(t, ok)

	assert.Equal(t, []string{"DBM", "pull 10", "nil", "BLOCK", "nil", "5"}, recorded(t, r))
}

func TestOnCommand_ReloadIsIntercepted(t *testing.T) {
	var reloads []int
	r := newTestRuntime(t, `
lunar.register_player_event(E.PLAYER.ON_COMMAND, function(_, p, text)
	table.insert(calls, text)
	return text ~= "blocked"
end)
`, func(o *Options) {
		o.Reload = func(mapID int) { reloads = append(reloads, mapID) }
	})
	p := newPlayer(1)

	assert.False(t, r.OnCommand(nil, false, "Reload Lunar", nil))
	assert.False(t, r.OnCommand(p, true, "reload lunar 571", nil))
	assert.True(t, r.OnCommand(p, false, "reload lunar", nil))
	assert.False(t, r.OnCommand(p, false, "blocked", nil))

	assert.Equal(t, []int{ReloadAll, 571}, reloads)
	assert.Equal(t, []string{"reload lunar", "blocked"}, recorded(t, r))
}

func TestOnCanUseItem_LastNumberWins(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_player_event(E.PLAYER.ON_CAN_USE_ITEM, function() return 12 end)
lunar.register_player_event(E.PLAYER.ON_CAN_USE_ITEM, function() end)
lunar.register_player_event(E.PLAYER.ON_CAN_USE_ITEM, function(_, _, entry) return entry end)
`)
	assert.Equal(t, uint32(6948), r.OnCanUseItem(newPlayer(1), 6948))
}

func TestOnReputationChange_MinusOneVetoes(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_player_event(E.PLAYER.ON_REPUTATION_CHANGE, function(_, _, faction, standing)
	if faction == 69 then return -1 end
	return standing + 100
end)
`)
	p := newPlayer(1)

	standing, ok := r.OnReputationChange(p, 72, 250, true)
	assert.True(t, ok)
	assert.Equal(t, int32(350), standing)

	standing, ok = r.OnReputationChange(p, 69, 250, true)
	assert.False(t, ok)
	assert.Equal(t, int32(-1), standing)
}

func TestOnGiveXP_VictimMayBeNil(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_player_event(E.PLAYER.ON_GIVE_XP, function(_, _, amount, victim)
	table.insert(calls, tostring(victim))
	return amount / 2
end)
`)
	assert.Equal(t, uint32(50), r.OnGiveXP(newPlayer(1), 100, nil, 0))
	assert.Equal(t, []string{"nil"}, recorded(t, r))
}

func TestOnBeforeUpdateSkill_RewritesValue(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_player_event(E.PLAYER.ON_BEFORE_UPDATE_SKILL, function(_, _, skill, value, max)
	return max
end)
`)
	assert.Equal(t, uint32(300), r.OnBeforeUpdateSkill(newPlayer(1), 171, 120, 300, 1))
}

func TestDamageTaken_HandledAndRewritten(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_creature_event(100, E.CREATURE.ON_DAMAGE_TAKEN, function(_, me, attacker, damage)
	return false, damage - 10
end)
lunar.register_unique_creature_event("2A", 1, E.CREATURE.ON_DAMAGE_TAKEN, function(_, me, attacker, damage)
	table.insert(calls, damage)
	return true
end)
`)
	c := &fakeCreature{guid: binding.NewGUID(42), entry: 100, instanceID: 1}

	damage, handled := r.DamageTaken(c, newPlayer(1), 50)

	assert.True(t, handled)
	assert.Equal(t, uint32(40), damage)
	assert.Equal(t, []string{"40"}, recorded(t, r))
}

func TestCorpseRemoved_RewritesRespawnDelay(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_creature_event(100, E.CREATURE.ON_CORPSE_REMOVED, function(_, me, delay)
	return true, delay * 2
end)
`)
	delay, handled := r.CorpseRemoved(&fakeCreature{guid: binding.NewGUID(1), entry: 100}, 300)
	assert.True(t, handled)
	assert.Equal(t, uint32(600), delay)
}

func TestOutParameters_LaterHandlersSeeConvertedValue(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_creature_event(100, E.CREATURE.ON_DAMAGE_TAKEN, function(_, me, attacker, damage)
	return false, damage + 0.5
end)
lunar.register_creature_event(100, E.CREATURE.ON_DAMAGE_TAKEN, function(_, me, attacker, damage)
	table.insert(calls, damage)
end)
lunar.register_guild_event(E.GUILD.ON_MONEY_WITHDRAW, function()
	return -1
end)
lunar.register_guild_event(E.GUILD.ON_MONEY_WITHDRAW, function(_, guild, player, amount)
	table.insert(calls, amount)
end)
`)
	c := &fakeCreature{guid: binding.NewGUID(42), entry: 100}

	damage, handled := r.DamageTaken(c, newPlayer(1), 10)
	amount := r.OnMemberWithdrawMoney(nil, newPlayer(1), 100, false)

	assert.False(t, handled)
	assert.Equal(t, uint32(10), damage)
	assert.Equal(t, uint32(4294967295), amount)
	assert.Equal(t, []string{"10", "4294967295"}, recorded(t, r))
}

func TestCorpseRemoved_TruncatesFractionalDelay(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_creature_event(100, E.CREATURE.ON_CORPSE_REMOVED, function(_, me, delay)
	return false, delay / 4
end)
lunar.register_creature_event(100, E.CREATURE.ON_CORPSE_REMOVED, function(_, me, delay)
	table.insert(calls, delay)
end)
`)
	delay, _ := r.CorpseRemoved(&fakeCreature{guid: binding.NewGUID(1), entry: 100}, 301)
	assert.Equal(t, uint32(75), delay)
	assert.Equal(t, []string{"75"}, recorded(t, r))
}

func TestGameObjectUse_HandlerClaims(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_gameobject_event(181, E.GAMEOBJECT.ON_USE, function(_, go, player)
	table.insert(calls, go:get_type_name().." "..player:get_type_name())
	return true
end)
`)
	g := &fakeGameObject{fakeCreature{guid: binding.NewGUID(9), entry: 181}}

	assert.True(t, r.OnGameObjectUse(newPlayer(1), g))
	assert.False(t, r.OnGameObjectUse(newPlayer(1), &fakeGameObject{fakeCreature{entry: 182}}))
	assert.Equal(t, []string{"GameObject Player"}, recorded(t, r))
}

func TestGuildMoney_ThreadsAmount(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_guild_event(E.GUILD.ON_MONEY_WITHDRAW, function(_, guild, player, amount, isRepair)
	if isRepair then return 0 end
	return amount - 1
end)
`)
	assert.Equal(t, uint32(99), r.OnMemberWithdrawMoney(nil, newPlayer(1), 100, false))
	assert.Equal(t, uint32(0), r.OnMemberWithdrawMoney(nil, newPlayer(1), 100, true))
	assert.Equal(t, uint32(100), r.OnMemberDepositMoney(nil, newPlayer(1), 100))
}

func TestSpellEvents_KeyedBySpellID(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_spell_event(133, E.SPELL.ON_CAST, function(_, caster, spell, skip)
	table.insert(calls, caster:get_name().." "..tostring(skip))
end)
`)
	r.OnSpellCast(newPlayer(1), &fakeSpell{id: 133}, true)
	r.OnSpellCast(newPlayer(1), &fakeSpell{id: 116}, true)

	assert.Equal(t, []string{"player-1 true"}, recorded(t, r))
}

func TestInstanceEvents_ShareDataTable(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_map_event(571, E.INSTANCE.ON_INITIALIZE, function(_, data, map)
	data.boss = "alive"
	table.insert(calls, "map "..map:get_map_id())
end)
lunar.register_instance_event(3, E.INSTANCE.ON_INITIALIZE, function(_, data, map)
	table.insert(calls, "instance "..map:get_instance_id().." "..data.boss)
end)
lunar.register_map_event(571, E.INSTANCE.ON_CHECK_ENCOUNTER_IN_PROGRESS, function(_, data)
	return data.boss == "alive"
end)
`)
	m := &fakeMap{mapID: 571, instanceID: 3}

	r.OnInstanceInitialize(m)
	assert.True(t, r.OnCheckEncounterInProgress(m))
	assert.False(t, r.OnCheckEncounterInProgress(&fakeMap{mapID: 1, instanceID: 0}))
	assert.Equal(t, []string{"map 571", "instance 3 alive"}, recorded(t, r))

	r.OnMapDestroy(m)
	assert.Equal(t, lua.LNil, r.instanceTable(3).RawGetString("boss"))
}

func TestGossip_Defaults(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_creature_gossip_event(1, E.GOSSIP.ON_HELLO, function() end)
lunar.register_creature_gossip_event(2, E.GOSSIP.ON_HELLO, function() return false end)
lunar.register_item_gossip_event(5, E.GOSSIP.ON_HELLO, function() return false end)
lunar.register_player_gossip_event(9, E.GOSSIP.ON_SELECT, function(_, p, sender, s, action, code)
	table.insert(calls, sender:get_name().." "..s.." "..action.." "..tostring(code))
end)
`)
	p := newPlayer(1)

	assert.False(t, r.OnGossipHello(p, &fakeCreature{entry: 3}))
	assert.True(t, r.OnGossipHello(p, &fakeCreature{entry: 1}))
	assert.False(t, r.OnGossipHello(p, &fakeCreature{entry: 2}))
	assert.True(t, r.OnItemUse(p, &fakeItem{entry: 4}))
	assert.False(t, r.OnItemUse(p, &fakeItem{entry: 5}))

	r.OnPlayerGossipSelect(p, 9, 1, 2, "")
	assert.Equal(t, []string{"player-1 1 2 nil"}, recorded(t, r))
}

func TestAuction_SkippedWithoutOwner(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_server_event(E.SERVER.AUCTION_ON_ADD, function(_, id, owner, item, expire, buyout)
	table.insert(calls, id.." "..owner:get_name().." "..item:get_entry().." "..buyout)
end)
`)
	r.OnAuctionAdd(Auction{ID: 1, Item: &fakeItem{entry: 2}})
	r.OnAuctionAdd(Auction{ID: 2, Owner: newPlayer(3), Item: &fakeItem{entry: 4}, Buyout: 500})

	assert.Equal(t, []string{"2 player-3 4 500"}, recorded(t, r))
}

func TestWorldUpdate_TicksTimersBeforeHandlers(t *testing.T) {
	r := newTestRuntime(t, `
lunar.create_event(function() table.insert(calls, "timer") end, 100)
lunar.register_server_event(E.SERVER.WORLD_ON_UPDATE, function(_, diff)
	table.insert(calls, "update "..diff)
end)
`)
	r.OnWorldUpdate(100 * time.Millisecond)

	require.Equal(t, []string{"timer", "update 100"}, recorded(t, r))
}

func TestCreatureRemove_CancelsObjectEvents(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_creature_event(100, E.CREATURE.ON_SPAWN, function(_, c)
	c:register_event(function() table.insert(calls, "tick") end, 100, 0)
end)
`)
	c := &fakeCreature{guid: binding.NewGUID(5), entry: 100}
	refs := r.store.Len()

	r.JustRespawned(c)
	r.UpdateObjectEvents(c, 100*time.Millisecond)
	assert.Equal(t, refs+1, r.store.Len())

	r.OnRemoveFromWorld(c)
	r.UpdateObjectEvents(c, 100*time.Millisecond)

	assert.Equal(t, []string{"tick"}, recorded(t, r))
	assert.Equal(t, refs, r.store.Len())
	assert.Equal(t, 0, r.PendingTimedEvents())
}

func TestLogout_CancelsPlayerEvents(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_player_event(E.PLAYER.ON_LOGIN, function(_, p)
	p:register_event(function() table.insert(calls, "tick") end, 100, 0)
end)
`)
	p := newPlayer(7)
	refs := r.store.Len()

	r.OnLogin(p)
	require.Equal(t, 1, r.PendingTimedEvents())
	r.OnLogout(p)
	r.UpdateObjectEvents(p, 100*time.Millisecond)

	assert.Empty(t, recorded(t, r))
	assert.Equal(t, 0, r.PendingTimedEvents())
	assert.Equal(t, refs, r.store.Len())
	assert.NotPanics(t, func() { r.OnLogout(nil) })
}

func TestDeleteHooks_CancelObjectEvents(t *testing.T) {
	r := newTestRuntime(t, `
lunar.register_creature_event(100, E.CREATURE.ON_SPAWN, function(_, c)
	c:register_event(function() table.insert(calls, "creature") end, 100, 0)
end)
lunar.register_gameobject_event(181, E.GAMEOBJECT.ON_SPAWN, function(_, g)
	g:register_event(function() table.insert(calls, "gameobject") end, 100, 0)
end)
`)
	c := &fakeCreature{guid: binding.NewGUID(5), entry: 100}
	g := &fakeGameObject{fakeCreature{guid: binding.NewGUID(6), entry: 181}}

	r.JustRespawned(c)
	r.OnGameObjectSpawn(g)
	require.Equal(t, 2, r.PendingTimedEvents())

	r.OnDeleteCreature(c)
	r.OnDeleteGameObject(g)
	r.UpdateObjectEvents(c, 100*time.Millisecond)
	r.UpdateObjectEvents(g, 100*time.Millisecond)

	assert.Empty(t, recorded(t, r))
	assert.Equal(t, 0, r.PendingTimedEvents())
}
