// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/hooks"
)

// creatureEvent consults the entry table first and then the handlers bound
// to this one creature.
func (r *Runtime) creatureEvent(e hooks.CreatureEvent, c Creature) target {
	kind := uint32(e)
	return pair(
		r.maps.creature, binding.EntryKey(kind, c.Entry()),
		r.maps.creatureUnique, binding.UniqueKey(kind, c.GUID(), c.InstanceID()),
	)
}

// creatureBool runs a creature predicate. A handler returning true reports
// the event as handled.
func (r *Runtime) creatureBool(e hooks.CreatureEvent, c Creature, vals ...any) bool {
	return r.fireBool(r.creatureEvent(e, c), false, append([]any{c}, vals...)...)
}

// OnDummyEffect is raised when a dummy spell effect hits the creature.
func (r *Runtime) OnDummyEffect(caster Entity, spellID uint32, effIndex uint8, c Creature) {
	r.fire(r.creatureEvent(hooks.CreatureOnDummyEffect, c), caster, spellID, effIndex, c)
}

// OnQuestAccept is raised when a player accepts a quest from the creature.
func (r *Runtime) OnQuestAccept(p Player, c Creature, quest Object) bool {
	return r.fireBool(r.creatureEvent(hooks.CreatureOnQuestAccept, c), false, p, c, quest)
}

// OnQuestReward is raised when a player turns in a quest at the creature.
func (r *Runtime) OnQuestReward(p Player, c Creature, quest Object, opt uint32) bool {
	return r.fireBool(r.creatureEvent(hooks.CreatureOnQuestReward, c), false, p, c, quest, opt)
}

// OnDialogStatus is raised when a player asks for the creature's quest
// marker.
func (r *Runtime) OnDialogStatus(p Player, c Creature) {
	r.fire(r.creatureEvent(hooks.CreatureOnDialogStatus, c), p, c)
}

// OnAddToWorld is raised when the creature is added to a map.
func (r *Runtime) OnAddToWorld(c Creature) {
	r.fire(r.creatureEvent(hooks.CreatureOnAdd, c), c)
}

// OnRemoveFromWorld is raised when the creature leaves its map. The
// creature's own timed events are cancelled afterwards.
func (r *Runtime) OnRemoveFromWorld(c Creature) {
	r.fire(r.creatureEvent(hooks.CreatureOnRemove, c), c)
	r.RemoveObjectEvents(c)
}

// OnSummoned is raised on the creature after summoner created it.
func (r *Runtime) OnSummoned(c Creature, summoner Entity) bool {
	return r.creatureBool(hooks.CreatureOnSummoned, c, summoner)
}

// UpdateAI is raised on every AI tick of the creature.
func (r *Runtime) UpdateAI(c Creature, diff uint32) bool {
	return r.creatureBool(hooks.CreatureOnAIUpdate, c, diff)
}

// EnterCombat is raised when the creature starts fighting target.
func (r *Runtime) EnterCombat(c Creature, target Entity) bool {
	return r.creatureBool(hooks.CreatureOnEnterCombat, c, target)
}

// DamageTaken lets scripts rewrite damage dealt to the creature. A handler
// returning true as its first result marks the damage as handled; a number
// as its second replaces the damage seen by later handlers.
func (r *Runtime) DamageTaken(c Creature, attacker Entity, damage uint32) (uint32, bool) {
	d := r.start(r.creatureEvent(hooks.CreatureOnDamageTaken, c), c, attacker, damage)
	if d == nil {
		return damage, false
	}
	handled := false
	d.callEach(2, func(res []lua.LValue) {
		if b, ok := res[0].(lua.LBool); ok && bool(b) {
			handled = true
		}
		if n, ok := toNumber(res[1]); ok {
			damage = toUint32(n)
			d.replaceArgument(2, lua.LNumber(damage))
		}
	})
	d.cleanUp()
	return damage, handled
}

// JustDied is raised when the creature dies.
func (r *Runtime) JustDied(c Creature, killer Entity) bool {
	return r.creatureBool(hooks.CreatureOnDied, c, killer)
}

// KilledUnit is raised when the creature kills victim.
func (r *Runtime) KilledUnit(c Creature, victim Entity) bool {
	return r.creatureBool(hooks.CreatureOnTargetDied, c, victim)
}

// JustSummoned is raised when the creature summons another creature.
func (r *Runtime) JustSummoned(c, summon Creature) bool {
	return r.creatureBool(hooks.CreatureOnJustSummoned, c, summon)
}

// SummonedCreatureDespawn is raised when a creature it summoned despawns.
func (r *Runtime) SummonedCreatureDespawn(c, summon Creature) bool {
	return r.creatureBool(hooks.CreatureOnSummonedDespawn, c, summon)
}

// MovementInform is raised when the creature reaches a movement point.
func (r *Runtime) MovementInform(c Creature, moveType, id uint32) bool {
	return r.creatureBool(hooks.CreatureOnReachWP, c, moveType, id)
}

// AttackStart is raised before the creature attacks target.
func (r *Runtime) AttackStart(c Creature, target Entity) bool {
	return r.creatureBool(hooks.CreatureOnPreCombat, c, target)
}

// EnterEvadeMode is raised when the creature leaves combat.
func (r *Runtime) EnterEvadeMode(c Creature) bool {
	return r.creatureBool(hooks.CreatureOnLeaveCombat, c)
}

// JustRespawned is raised when the creature spawns or respawns.
func (r *Runtime) JustRespawned(c Creature) bool {
	return r.creatureBool(hooks.CreatureOnSpawn, c)
}

// JustReachedHome is raised when the creature is back at its home point.
func (r *Runtime) JustReachedHome(c Creature) bool {
	return r.creatureBool(hooks.CreatureOnReachHome, c)
}

// ReceiveEmote is raised when a player emotes at the creature.
func (r *Runtime) ReceiveEmote(c Creature, p Player, emoteID uint32) bool {
	return r.creatureBool(hooks.CreatureOnReceiveEmote, c, p, emoteID)
}

// CorpseRemoved lets scripts rewrite the respawn delay, in seconds, once
// the corpse despawns. A handler returning true marks the event handled.
func (r *Runtime) CorpseRemoved(c Creature, respawnDelay uint32) (uint32, bool) {
	d := r.start(r.creatureEvent(hooks.CreatureOnCorpseRemoved, c), c, respawnDelay)
	if d == nil {
		return respawnDelay, false
	}
	handled := false
	d.callEach(2, func(res []lua.LValue) {
		if b, ok := res[0].(lua.LBool); ok && bool(b) {
			handled = true
		}
		if n, ok := toNumber(res[1]); ok {
			respawnDelay = toUint32(n)
			d.replaceArgument(1, lua.LNumber(respawnDelay))
		}
	})
	d.cleanUp()
	return respawnDelay, handled
}

// MoveInLineOfSight is raised when who comes into the creature's view.
func (r *Runtime) MoveInLineOfSight(c Creature, who Entity) bool {
	return r.creatureBool(hooks.CreatureOnMoveInLOS, c, who)
}

// SpellHit is raised when the creature is hit by a spell.
func (r *Runtime) SpellHit(c Creature, caster Entity, spellID uint32) bool {
	return r.creatureBool(hooks.CreatureOnHitBySpell, c, caster, spellID)
}

// SpellHitTarget is raised when a spell cast by the creature hits target.
func (r *Runtime) SpellHitTarget(c Creature, target Entity, spellID uint32) bool {
	return r.creatureBool(hooks.CreatureOnSpellHitTarget, c, target, spellID)
}

// SummonedCreatureDies is raised when a creature it summoned is killed.
func (r *Runtime) SummonedCreatureDies(c, summon Creature, killer Entity) bool {
	return r.creatureBool(hooks.CreatureOnSummonedDied, c, summon, killer)
}

// OwnerAttackedBy is raised on a pet when its owner is attacked.
func (r *Runtime) OwnerAttackedBy(c Creature, attacker Entity) bool {
	return r.creatureBool(hooks.CreatureOnOwnerAttacked, c, attacker)
}

// OwnerAttacked is raised on a pet when its owner attacks target.
func (r *Runtime) OwnerAttacked(c Creature, target Entity) bool {
	return r.creatureBool(hooks.CreatureOnOwnerAttackedAt, c, target)
}

// OnCreatureReset is raised when the creature's AI resets.
func (r *Runtime) OnCreatureReset(c Creature) {
	r.fire(r.creatureEvent(hooks.CreatureOnReset, c), c)
}
