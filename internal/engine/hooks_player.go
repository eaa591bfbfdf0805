// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/hooks"
)

// LangAddon is the chat language id of addon messages.
const LangAddon uint32 = 0xFFFFFFFF

// reloadCommand is intercepted before scripts see it.
const reloadCommand = "reload lunar"

func (r *Runtime) playerEvent(e hooks.PlayerEvent) target {
	return single(r.maps.player, binding.GlobalKey(uint32(e)))
}

// OnLearnTalents is raised when a player learns a talent rank.
func (r *Runtime) OnLearnTalents(p Player, talentID, talentRank, spellID uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnLearnTalents), p, talentID, talentRank, spellID)
}

// OnCommand lets scripts handle a chat command. p is nil for the console.
// Administrators and the console may run "reload lunar [map]", which is
// handled here. Returns false when the command was consumed.
func (r *Runtime) OnCommand(p Player, admin bool, text string, handler Object) bool {
	if p == nil || admin {
		lower := strings.ToLower(text)
		if strings.HasPrefix(lower, reloadCommand) {
			mapID := ReloadAll
			if arg := strings.TrimSpace(lower[len(reloadCommand):]); arg != "" {
				if n, err := strconv.Atoi(arg); err == nil {
					mapID = n
				}
			}
			if r.reload != nil {
				r.reload(mapID)
			}
			return false
		}
	}
	return r.fireBool(r.playerEvent(hooks.PlayerOnCommand), true, p, text, handler)
}

// OnLootItem is raised when a player loots an item.
func (r *Runtime) OnLootItem(p Player, item Item, count uint32, source binding.GUID) {
	r.fire(r.playerEvent(hooks.PlayerOnLootItem), p, item, count, source)
}

// OnLootMoney is raised when a player loots money.
func (r *Runtime) OnLootMoney(p Player, amount uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnLootMoney), p, amount)
}

// OnFirstLogin is raised on a character's first login.
func (r *Runtime) OnFirstLogin(p Player) {
	r.fire(r.playerEvent(hooks.PlayerOnFirstLogin), p)
}

// OnRepop is raised when a dead player releases their spirit.
func (r *Runtime) OnRepop(p Player) {
	r.fire(r.playerEvent(hooks.PlayerOnRepop), p)
}

// OnResurrect is raised when a player is resurrected.
func (r *Runtime) OnResurrect(p Player) {
	r.fire(r.playerEvent(hooks.PlayerOnResurrect), p)
}

// OnQuestAbandon is raised when a player abandons a quest.
func (r *Runtime) OnQuestAbandon(p Player, questID uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnQuestAbandon), p, questID)
}

// OnEquip is raised when a player equips an item.
func (r *Runtime) OnEquip(p Player, item Item, bag, slot uint8) {
	r.fire(r.playerEvent(hooks.PlayerOnEquip), p, item, bag, slot)
}

// OnCanUseItem returns the inventory result code for using itemEntry. Each
// numeric return replaces the result; the last one wins. 0 allows use.
func (r *Runtime) OnCanUseItem(p Player, itemEntry uint32) uint32 {
	var result uint32
	d := r.start(r.playerEvent(hooks.PlayerOnCanUseItem), p, itemEntry)
	if d == nil {
		return result
	}
	d.callEach(1, func(res []lua.LValue) {
		if n, ok := toNumber(res[0]); ok {
			result = toUint32(n)
		}
	})
	d.cleanUp()
	return result
}

// OnPlayerEnterCombat is raised when a player enters combat.
func (r *Runtime) OnPlayerEnterCombat(p Player, enemy Entity) {
	r.fire(r.playerEvent(hooks.PlayerOnEnterCombat), p, enemy)
}

// OnPlayerLeaveCombat is raised when a player leaves combat.
func (r *Runtime) OnPlayerLeaveCombat(p Player) {
	r.fire(r.playerEvent(hooks.PlayerOnLeaveCombat), p)
}

// OnPVPKill is raised when a player kills another player.
func (r *Runtime) OnPVPKill(killer, killed Player) {
	r.fire(r.playerEvent(hooks.PlayerOnKillPlayer), killer, killed)
}

// OnCreatureKill is raised when a player kills a creature.
func (r *Runtime) OnCreatureKill(killer Player, killed Creature) {
	r.fire(r.playerEvent(hooks.PlayerOnKillCreature), killer, killed)
}

// OnPlayerKilledByCreature is raised when a creature kills a player.
func (r *Runtime) OnPlayerKilledByCreature(killer Creature, killed Player) {
	r.fire(r.playerEvent(hooks.PlayerOnKilledByCreature), killer, killed)
}

// OnLevelChanged is raised after a level change.
func (r *Runtime) OnLevelChanged(p Player, oldLevel uint8) {
	r.fire(r.playerEvent(hooks.PlayerOnLevelChange), p, oldLevel)
}

// OnFreeTalentPointsChanged is raised when unspent talent points change.
func (r *Runtime) OnFreeTalentPointsChanged(p Player, points uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnTalentsChange), p, points)
}

// OnTalentsReset is raised when a player resets talents.
func (r *Runtime) OnTalentsReset(p Player, noCost bool) {
	r.fire(r.playerEvent(hooks.PlayerOnTalentsReset), p, noCost)
}

// OnMoneyChanged lets scripts rewrite a money change. Each numeric return
// replaces the amount seen by later handlers; the final amount is returned.
func (r *Runtime) OnMoneyChanged(p Player, amount int32) int32 {
	d := r.start(r.playerEvent(hooks.PlayerOnMoneyChange), p, amount)
	if d == nil {
		return amount
	}
	d.callEach(1, func(res []lua.LValue) {
		if n, ok := toNumber(res[0]); ok {
			amount = int32(int64(n))
			d.replaceArgument(1, lua.LNumber(amount))
		}
	})
	d.cleanUp()
	return amount
}

// OnGiveXP lets scripts rewrite an experience gain. victim may be nil.
func (r *Runtime) OnGiveXP(p Player, amount uint32, victim Entity, source uint8) uint32 {
	d := r.start(r.playerEvent(hooks.PlayerOnGiveXP), p, amount, victim, source)
	if d == nil {
		return amount
	}
	d.callEach(1, func(res []lua.LValue) {
		if n, ok := toNumber(res[0]); ok {
			amount = toUint32(n)
			d.replaceArgument(1, lua.LNumber(amount))
		}
	})
	d.cleanUp()
	return amount
}

// OnReputationChange lets scripts rewrite a standing change. A handler
// returning -1 vetoes the change; the final standing and whether the change
// may proceed are returned.
func (r *Runtime) OnReputationChange(p Player, factionID uint32, standing int32, incremental bool) (int32, bool) {
	d := r.start(r.playerEvent(hooks.PlayerOnReputationChange), p, factionID, standing, incremental)
	if d == nil {
		return standing, true
	}
	allowed := true
	d.callEach(1, func(res []lua.LValue) {
		if n, ok := toNumber(res[0]); ok {
			standing = int32(int64(n))
			if standing == -1 {
				allowed = false
			}
			d.replaceArgument(2, lua.LNumber(standing))
		}
	})
	d.cleanUp()
	return standing, allowed
}

// OnDuelRequest is raised when challenger asks target to duel.
func (r *Runtime) OnDuelRequest(target, challenger Player) {
	r.fire(r.playerEvent(hooks.PlayerOnDuelRequest), target, challenger)
}

// OnDuelStart is raised when a duel begins.
func (r *Runtime) OnDuelStart(starter, challenger Player) {
	r.fire(r.playerEvent(hooks.PlayerOnDuelStart), starter, challenger)
}

// OnDuelEnd is raised when a duel ends.
func (r *Runtime) OnDuelEnd(winner, loser Player, completion uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnDuelEnd), winner, loser, completion)
}

// OnEmote is raised when a player performs an emote.
func (r *Runtime) OnEmote(p Player, emote uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnEmote), p, emote)
}

// OnTextEmote is raised when a player performs a text emote.
func (r *Runtime) OnTextEmote(p Player, textEmote, emoteNum uint32, target binding.GUID) {
	r.fire(r.playerEvent(hooks.PlayerOnTextEmote), p, textEmote, emoteNum, target)
}

// OnPlayerSpellCast is raised when a player casts a spell.
func (r *Runtime) OnPlayerSpellCast(p Player, spell Spell, skipCheck bool) {
	r.fire(r.playerEvent(hooks.PlayerOnSpellCast), p, spell, skipCheck)
}

// OnLogin is raised when a player enters the world.
func (r *Runtime) OnLogin(p Player) {
	r.fire(r.playerEvent(hooks.PlayerOnLogin), p)
}

// OnLogout is raised when a player leaves the world. The player's own
// timed events are cancelled afterwards.
func (r *Runtime) OnLogout(p Player) {
	r.fire(r.playerEvent(hooks.PlayerOnLogout), p)
	r.RemoveObjectEvents(p)
}

// OnCharacterCreate is raised when a character is created.
func (r *Runtime) OnCharacterCreate(p Player) {
	r.fire(r.playerEvent(hooks.PlayerOnCharacterCreate), p)
}

// OnCharacterDelete is raised when a character is deleted.
func (r *Runtime) OnCharacterDelete(guidLow uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnCharacterDelete), guidLow)
}

// OnSave is raised when a player is saved.
func (r *Runtime) OnSave(p Player) {
	r.fire(r.playerEvent(hooks.PlayerOnSave), p)
}

// OnBindToInstance is raised when a player is bound to an instance.
func (r *Runtime) OnBindToInstance(p Player, difficulty, mapID uint32, permanent bool) {
	r.fire(r.playerEvent(hooks.PlayerOnBindToInstance), p, difficulty, mapID, permanent)
}

// OnUpdateArea is raised when a player changes area.
func (r *Runtime) OnUpdateArea(p Player, oldArea, newArea uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnUpdateArea), p, oldArea, newArea)
}

// OnUpdateZone is raised when a player changes zone.
func (r *Runtime) OnUpdateZone(p Player, newZone, newArea uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnUpdateZone), p, newZone, newArea)
}

// OnMapChanged is raised when a player changes map.
func (r *Runtime) OnMapChanged(p Player) {
	r.fire(r.playerEvent(hooks.PlayerOnMapChange), p)
}

// OnChat lets scripts block or rewrite a say/yell/emote message. Addon
// messages are routed to OnAddonMessage instead.
func (r *Runtime) OnChat(p Player, msgType, lang uint32, msg string) (string, bool) {
	if lang == LangAddon {
		return msg, r.OnAddonMessage(p, msgType, msg, nil)
	}
	return r.fireChat(hooks.PlayerOnChat, p, msgType, lang, msg)
}

// OnGroupChat is OnChat for group messages.
func (r *Runtime) OnGroupChat(p Player, msgType, lang uint32, msg string, group Object) (string, bool) {
	if lang == LangAddon {
		return msg, r.OnAddonMessage(p, msgType, msg, group)
	}
	return r.fireChat(hooks.PlayerOnGroupChat, p, msgType, lang, msg, group)
}

// OnGuildChat is OnChat for guild messages.
func (r *Runtime) OnGuildChat(p Player, msgType, lang uint32, msg string, guild Object) (string, bool) {
	if lang == LangAddon {
		return msg, r.OnAddonMessage(p, msgType, msg, guild)
	}
	return r.fireChat(hooks.PlayerOnGuildChat, p, msgType, lang, msg, guild)
}

// OnChannelChat is OnChat for channel messages. channelID is negative for
// custom channels.
func (r *Runtime) OnChannelChat(p Player, msgType, lang uint32, msg string, channelID int32) (string, bool) {
	if lang == LangAddon {
		return msg, r.OnAddonMessage(p, msgType, msg, channelID)
	}
	return r.fireChat(hooks.PlayerOnChannelChat, p, msgType, lang, msg, channelID)
}

// OnWhisper is OnChat for whispers.
func (r *Runtime) OnWhisper(p Player, msgType, lang uint32, msg string, receiver Player) (string, bool) {
	if lang == LangAddon {
		return msg, r.OnAddonMessage(p, msgType, msg, receiver)
	}
	return r.fireChat(hooks.PlayerOnWhisper, p, msgType, lang, msg, receiver)
}

// fireChat calls handlers with (player, msg, type, lang[, extra]). A handler
// returning false blocks the message; a second string return replaces it.
func (r *Runtime) fireChat(e hooks.PlayerEvent, p Player, msgType, lang uint32, msg string, extra ...any) (string, bool) {
	vals := append([]any{p, msg, msgType, lang}, extra...)
	d := r.start(r.playerEvent(e), vals...)
	if d == nil {
		return msg, true
	}
	allowed := true
	d.callEach(2, func(res []lua.LValue) {
		if b, ok := res[0].(lua.LBool); ok && !bool(b) {
			allowed = false
		}
		switch s := res[1].(type) {
		case lua.LString:
			msg = string(s)
		case lua.LNumber:
			msg = s.String()
		}
	})
	d.cleanUp()
	return msg, allowed
}

// OnPetAddedToWorld is raised when a player's pet spawns.
func (r *Runtime) OnPetAddedToWorld(p Player, pet Creature) {
	r.fire(r.playerEvent(hooks.PlayerOnPetAddedToWorld), p, pet)
}

// OnLearnSpell is raised when a player learns a spell.
func (r *Runtime) OnLearnSpell(p Player, spellID uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnLearnSpell), p, spellID)
}

// OnAchievementComplete is raised when a player completes an achievement.
func (r *Runtime) OnAchievementComplete(p Player, achievement Object) {
	r.fire(r.playerEvent(hooks.PlayerOnAchievement), p, achievement)
}

// OnFFAPvPChange is raised when a player's free-for-all PvP flag changes.
func (r *Runtime) OnFFAPvPChange(p Player, hasFFAPvP bool) {
	r.fire(r.playerEvent(hooks.PlayerOnFFAPvPChange), p, hasFFAPvP)
}

// OnCanInitTrade reports whether p may open a trade with target.
func (r *Runtime) OnCanInitTrade(p, target Player) bool {
	return r.fireBool(r.playerEvent(hooks.PlayerOnCanInitTrade), true, p, target)
}

// OnCanSendMail reports whether p may send the described mail.
func (r *Runtime) OnCanSendMail(p Player, receiver, mailbox binding.GUID, subject, body string, money, cod uint32, item Item) bool {
	return r.fireBool(r.playerEvent(hooks.PlayerOnCanSendMail), true, p, receiver, mailbox, subject, body, money, cod, item)
}

// OnCanJoinLFG reports whether p may queue for dungeons. The dungeon set is
// passed to scripts as one array argument.
func (r *Runtime) OnCanJoinLFG(p Player, roles uint8, dungeons []uint32, comment string) bool {
	return r.fireBool(r.playerEvent(hooks.PlayerOnCanJoinLFG), true, p, roles, dungeons, comment)
}

// OnQuestRewardItem is raised when a quest reward item is given.
func (r *Runtime) OnQuestRewardItem(p Player, item Item, count uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnQuestRewardItem), p, item, count)
}

// OnCreateItem is raised when a player crafts an item.
func (r *Runtime) OnCreateItem(p Player, item Item, count uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnCreateItem), p, item, count)
}

// OnStoreNewItem is raised when a new item is stored in a player's bags.
func (r *Runtime) OnStoreNewItem(p Player, item Item, count uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnStoreNewItem), p, item, count)
}

// OnCompleteQuest is raised when a player completes a quest.
func (r *Runtime) OnCompleteQuest(p Player, quest Object) {
	r.fire(r.playerEvent(hooks.PlayerOnCompleteQuest), p, quest)
}

// OnCanGroupInvite reports whether p may invite memberName.
func (r *Runtime) OnCanGroupInvite(p Player, memberName string) bool {
	return r.fireBool(r.playerEvent(hooks.PlayerOnCanGroupInvite), true, p, memberName)
}

// OnGroupRollRewardItem is raised when a group roll awards an item.
func (r *Runtime) OnGroupRollRewardItem(p Player, item Item, count, vote uint32, roll Object) {
	r.fire(r.playerEvent(hooks.PlayerOnGroupRollReward), p, item, count, vote, roll)
}

// OnBGDesertion is raised when a player deserts a battleground.
func (r *Runtime) OnBGDesertion(p Player, desertion uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnBGDesertion), p, desertion)
}

// OnPetKill is raised when a player's pet kills a creature.
func (r *Runtime) OnPetKill(p Player, killed Creature) {
	r.fire(r.playerEvent(hooks.PlayerOnPetKill), p, killed)
}

// OnCanUpdateSkill reports whether skillID may gain points.
func (r *Runtime) OnCanUpdateSkill(p Player, skillID uint32) bool {
	return r.fireBool(r.playerEvent(hooks.PlayerOnCanUpdateSkill), true, p, skillID)
}

// OnBeforeUpdateSkill lets scripts rewrite a skill value before it is set.
func (r *Runtime) OnBeforeUpdateSkill(p Player, skillID, value, maxValue, step uint32) uint32 {
	d := r.start(r.playerEvent(hooks.PlayerOnBeforeUpdateSkill), p, skillID, value, maxValue, step)
	if d == nil {
		return value
	}
	d.callEach(1, func(res []lua.LValue) {
		if n, ok := toNumber(res[0]); ok {
			value = toUint32(n)
			d.replaceArgument(2, lua.LNumber(value))
		}
	})
	d.cleanUp()
	return value
}

// OnUpdateSkill is raised after a skill value changed.
func (r *Runtime) OnUpdateSkill(p Player, skillID, value, maxValue, step, newValue uint32) {
	r.fire(r.playerEvent(hooks.PlayerOnUpdateSkill), p, skillID, value, maxValue, step, newValue)
}

// OnCanResurrect reports whether p may be resurrected.
func (r *Runtime) OnCanResurrect(p Player) bool {
	return r.fireBool(r.playerEvent(hooks.PlayerOnCanResurrect), true, p)
}
