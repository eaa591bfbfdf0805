// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"strings"
	"time"

	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/hooks"
)

func (r *Runtime) serverEvent(e hooks.ServerEvent) target {
	return single(r.maps.server, binding.GlobalKey(uint32(e)))
}

// Auction is one auction house listing.
type Auction struct {
	ID         uint32
	Owner      Player
	Item       Item
	ExpireTime int64
	Buyout     uint32
	StartBid   uint32
	Bid        uint32
	Bidder     uint32
}

func (a Auction) values() []any {
	return []any{a.ID, a.Owner, a.Item, a.ExpireTime, a.Buyout, a.StartBid, a.Bid, a.Bidder}
}

// OnAddonMessage lets scripts observe or block an addon message. msg is
// split at the first tab into prefix and content. target is the receiving
// player, guild, group, a channel id or nil. Returns false to block.
func (r *Runtime) OnAddonMessage(sender Player, msgType uint32, msg string, target any) bool {
	prefix, content, found := strings.Cut(msg, "\t")
	var body any
	if found {
		body = content
	}
	return r.fireBool(r.serverEvent(hooks.AddonOnMessage), true, sender, msgType, prefix, body, target)
}

// OnGameEventStart is raised when a world event begins.
func (r *Runtime) OnGameEventStart(eventID uint32) {
	r.fire(r.serverEvent(hooks.GameEventStart), eventID)
}

// OnGameEventStop is raised when a world event ends.
func (r *Runtime) OnGameEventStop(eventID uint32) {
	r.fire(r.serverEvent(hooks.GameEventStop), eventID)
}

// OnLuaStateClose is raised just before the runtime closes.
func (r *Runtime) OnLuaStateClose() {
	r.fire(r.serverEvent(hooks.StateOnClose))
}

// OnLuaStateOpen is raised once all scripts have run.
func (r *Runtime) OnLuaStateOpen() {
	r.fire(r.serverEvent(hooks.StateOnOpen))
}

// OnAreaTrigger reports whether a script handled the trigger.
func (r *Runtime) OnAreaTrigger(p Player, triggerID uint32) bool {
	return r.fireBool(r.serverEvent(hooks.TriggerOnTrigger), false, p, triggerID)
}

// OnWeatherChange is raised when the weather of a zone changes.
func (r *Runtime) OnWeatherChange(zone, state uint32, grade float32) {
	r.fire(r.serverEvent(hooks.WeatherOnChange), zone, state, grade)
}

// OnAuctionAdd is raised when a listing is created.
func (r *Runtime) OnAuctionAdd(a Auction) {
	r.fireAuction(hooks.AuctionOnAdd, a)
}

// OnAuctionRemove is raised when a listing is cancelled.
func (r *Runtime) OnAuctionRemove(a Auction) {
	r.fireAuction(hooks.AuctionOnRemove, a)
}

// OnAuctionSuccessful is raised when a listing sells.
func (r *Runtime) OnAuctionSuccessful(a Auction) {
	r.fireAuction(hooks.AuctionOnSuccessful, a)
}

// OnAuctionExpire is raised when a listing times out.
func (r *Runtime) OnAuctionExpire(a Auction) {
	r.fireAuction(hooks.AuctionOnExpire, a)
}

// fireAuction skips listings whose owner or item is gone.
func (r *Runtime) fireAuction(e hooks.ServerEvent, a Auction) {
	if a.Owner == nil || a.Item == nil {
		return
	}
	r.fire(r.serverEvent(e), a.values()...)
}

// OnOpenStateChange is raised when the world opens or closes to players.
func (r *Runtime) OnOpenStateChange(open bool) {
	r.fire(r.serverEvent(hooks.WorldOnOpenStateChange), open)
}

// OnConfigLoad is raised around a configuration (re)load.
func (r *Runtime) OnConfigLoad(reload, isBefore bool) {
	r.fire(r.serverEvent(hooks.WorldOnConfigLoad), reload, isBefore)
}

// OnShutdownInit is raised when a shutdown timer starts.
func (r *Runtime) OnShutdownInit(code, mask uint32) {
	r.fire(r.serverEvent(hooks.WorldOnShutdownInit), code, mask)
}

// OnShutdownCancel is raised when a shutdown timer is cancelled.
func (r *Runtime) OnShutdownCancel() {
	r.fire(r.serverEvent(hooks.WorldOnShutdownCancel))
}

// OnWorldUpdate advances the global timed events and dispatches the world
// tick. diff is the time since the previous tick.
func (r *Runtime) OnWorldUpdate(diff time.Duration) {
	r.UpdateTimers(diff)
	r.fire(r.serverEvent(hooks.WorldOnUpdate), uint32(diff.Milliseconds()))
}

// OnStartup is raised once the world is up.
func (r *Runtime) OnStartup() {
	r.fire(r.serverEvent(hooks.WorldOnStartup))
}

// OnShutdown is raised as the world goes down.
func (r *Runtime) OnShutdown() {
	r.fire(r.serverEvent(hooks.WorldOnShutdown))
}

// OnMapCreate is raised when a map or instance is created.
func (r *Runtime) OnMapCreate(m Map) {
	r.fire(r.serverEvent(hooks.MapOnCreate), m)
}

// OnMapDestroy is raised when a map or instance is destroyed.
func (r *Runtime) OnMapDestroy(m Map) {
	r.fire(r.serverEvent(hooks.MapOnDestroy), m)
	delete(r.instanceData, m.InstanceID())
}

// OnMapPlayerEnter is raised when a player enters a map.
func (r *Runtime) OnMapPlayerEnter(m Map, p Player) {
	r.fire(r.serverEvent(hooks.MapOnPlayerEnter), m, p)
}

// OnMapPlayerLeave is raised when a player leaves a map.
func (r *Runtime) OnMapPlayerLeave(m Map, p Player) {
	r.fire(r.serverEvent(hooks.MapOnPlayerLeave), m, p)
}

// OnMapUpdate is raised on every map tick.
func (r *Runtime) OnMapUpdate(m Map, diff time.Duration) {
	r.fire(r.serverEvent(hooks.MapOnUpdate), m, uint32(diff.Milliseconds()))
}

// OnDeleteCreature is raised when a creature is deleted from the world.
// Its timed events are cancelled afterwards.
func (r *Runtime) OnDeleteCreature(c Creature) {
	r.fire(r.serverEvent(hooks.WorldOnDeleteCreature), c)
	r.RemoveObjectEvents(c)
}

// OnDeleteGameObject is raised when a game object is deleted from the world.
// Its timed events are cancelled afterwards.
func (r *Runtime) OnDeleteGameObject(g GameObject) {
	r.fire(r.serverEvent(hooks.WorldOnDeleteGameObj), g)
	r.RemoveObjectEvents(g)
}
