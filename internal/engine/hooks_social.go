// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/hooks"
)

func (r *Runtime) guildEvent(e hooks.GuildEvent) target {
	return single(r.maps.guild, binding.GlobalKey(uint32(e)))
}

func (r *Runtime) groupEvent(e hooks.GroupEvent) target {
	return single(r.maps.group, binding.GlobalKey(uint32(e)))
}

// OnAddMember is raised when p joins guild at rank.
func (r *Runtime) OnAddMember(guild Object, p Player, rank uint32) {
	r.fire(r.guildEvent(hooks.GuildOnAddMember), guild, p, rank)
}

// OnRemoveMember is raised when p leaves guild.
func (r *Runtime) OnRemoveMember(guild Object, p Player, isDisbanding bool) {
	r.fire(r.guildEvent(hooks.GuildOnRemoveMember), guild, p, isDisbanding)
}

// OnMOTDChanged is raised when the guild message of the day changes.
func (r *Runtime) OnMOTDChanged(guild Object, motd string) {
	r.fire(r.guildEvent(hooks.GuildOnMOTDChange), guild, motd)
}

// OnInfoChanged is raised when the guild info text changes.
func (r *Runtime) OnInfoChanged(guild Object, info string) {
	r.fire(r.guildEvent(hooks.GuildOnInfoChange), guild, info)
}

// OnGuildCreate is raised when leader founds a guild.
func (r *Runtime) OnGuildCreate(guild Object, leader Player, name string) {
	r.fire(r.guildEvent(hooks.GuildOnCreate), guild, leader, name)
}

// OnGuildDisband is raised when a guild is disbanded.
func (r *Runtime) OnGuildDisband(guild Object) {
	r.fire(r.guildEvent(hooks.GuildOnDisband), guild)
}

// OnMemberWithdrawMoney lets scripts rewrite a bank withdrawal.
func (r *Runtime) OnMemberWithdrawMoney(guild Object, p Player, amount uint32, isRepair bool) uint32 {
	return r.fireGuildMoney(hooks.GuildOnMoneyWithdraw, amount, guild, p, amount, isRepair)
}

// OnMemberDepositMoney lets scripts rewrite a bank deposit.
func (r *Runtime) OnMemberDepositMoney(guild Object, p Player, amount uint32) uint32 {
	return r.fireGuildMoney(hooks.GuildOnMoneyDeposit, amount, guild, p, amount)
}

// fireGuildMoney threads the amount, the third argument, through the
// handlers.
func (r *Runtime) fireGuildMoney(e hooks.GuildEvent, amount uint32, vals ...any) uint32 {
	d := r.start(r.guildEvent(e), vals...)
	if d == nil {
		return amount
	}
	d.callEach(1, func(res []lua.LValue) {
		if n, ok := toNumber(res[0]); ok {
			amount = toUint32(n)
			d.replaceArgument(2, lua.LNumber(amount))
		}
	})
	d.cleanUp()
	return amount
}

// BankMove describes an item moved in or out of a guild bank.
type BankMove struct {
	Item          Item
	IsSrcBank     bool
	SrcContainer  uint8
	SrcSlot       uint8
	IsDestBank    bool
	DestContainer uint8
	DestSlot      uint8
}

// OnItemMove is raised when p moves an item in the guild bank.
func (r *Runtime) OnItemMove(guild Object, p Player, m BankMove) {
	r.fire(r.guildEvent(hooks.GuildOnItemMove), guild, p, m.Item,
		m.IsSrcBank, m.SrcContainer, m.SrcSlot, m.IsDestBank, m.DestContainer, m.DestSlot)
}

// OnGuildEvent is raised for guild log entries.
func (r *Runtime) OnGuildEvent(guild Object, eventType uint8, playerGUID1, playerGUID2 uint32, newRank uint8) {
	r.fire(r.guildEvent(hooks.GuildOnEvent), guild, eventType, playerGUID1, playerGUID2, newRank)
}

// OnBankEvent is raised for guild bank log entries.
func (r *Runtime) OnBankEvent(guild Object, eventType, tabID uint8, playerGUID, itemOrMoney uint32, stackCount uint16, destTabID uint8) {
	r.fire(r.guildEvent(hooks.GuildOnBankEvent), guild, eventType, tabID, playerGUID, itemOrMoney, stackCount, destTabID)
}

// OnAddMemberToGroup is raised when a member joins group.
func (r *Runtime) OnAddMemberToGroup(group Object, guid binding.GUID) {
	r.fire(r.groupEvent(hooks.GroupOnMemberAdd), group, guid)
}

// OnInviteMember is raised when a player is invited to group.
func (r *Runtime) OnInviteMember(group Object, guid binding.GUID) {
	r.fire(r.groupEvent(hooks.GroupOnMemberInvite), group, guid)
}

// OnRemoveMemberFromGroup is raised when a member leaves group.
func (r *Runtime) OnRemoveMemberFromGroup(group Object, guid binding.GUID, method uint8) {
	r.fire(r.groupEvent(hooks.GroupOnMemberRemove), group, guid, method)
}

// OnChangeLeader is raised when group leadership moves.
func (r *Runtime) OnChangeLeader(group Object, newLeader, oldLeader binding.GUID) {
	r.fire(r.groupEvent(hooks.GroupOnLeaderChange), group, newLeader, oldLeader)
}

// OnGroupDisband is raised when group is disbanded.
func (r *Runtime) OnGroupDisband(group Object) {
	r.fire(r.groupEvent(hooks.GroupOnDisband), group)
}

// OnGroupCreate is raised when a group is formed.
func (r *Runtime) OnGroupCreate(group Object, leader binding.GUID, groupType uint8) {
	r.fire(r.groupEvent(hooks.GroupOnCreate), group, leader, groupType)
}
