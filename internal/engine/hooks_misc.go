// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/hooks"
)

func (r *Runtime) vehicleEvent(e hooks.VehicleEvent) target {
	return single(r.maps.vehicle, binding.GlobalKey(uint32(e)))
}

func (r *Runtime) ticketEvent(e hooks.TicketEvent) target {
	return single(r.maps.ticket, binding.GlobalKey(uint32(e)))
}

func (r *Runtime) bgEvent(e hooks.BGEvent) target {
	return single(r.maps.bg, binding.GlobalKey(uint32(e)))
}

func (r *Runtime) spellEvent(e hooks.SpellEvent, s Spell) target {
	return single(r.maps.spell, binding.EntryKey(uint32(e), s.SpellID()))
}

// OnInstall is raised when a vehicle is set up.
func (r *Runtime) OnInstall(vehicle Object) {
	r.fire(r.vehicleEvent(hooks.VehicleOnInstall), vehicle)
}

// OnUninstall is raised when a vehicle is torn down.
func (r *Runtime) OnUninstall(vehicle Object) {
	r.fire(r.vehicleEvent(hooks.VehicleOnUninstall), vehicle)
}

// OnInstallAccessory is raised when an accessory creature is attached.
func (r *Runtime) OnInstallAccessory(vehicle Object, accessory Creature) {
	r.fire(r.vehicleEvent(hooks.VehicleOnInstallAccessory), vehicle, accessory)
}

// OnAddPassenger is raised when passenger boards seatID.
func (r *Runtime) OnAddPassenger(vehicle Object, passenger Entity, seatID int8) {
	r.fire(r.vehicleEvent(hooks.VehicleOnAddPassenger), vehicle, passenger, seatID)
}

// OnRemovePassenger is raised when passenger leaves the vehicle.
func (r *Runtime) OnRemovePassenger(vehicle Object, passenger Entity) {
	r.fire(r.vehicleEvent(hooks.VehicleOnRemovePassenger), vehicle, passenger)
}

// OnTicketCreate is raised when a GM ticket is opened.
func (r *Runtime) OnTicketCreate(ticket Object) {
	r.fire(r.ticketEvent(hooks.TicketOnCreate), ticket)
}

// OnTicketUpdateLastChange is raised when a GM ticket is edited.
func (r *Runtime) OnTicketUpdateLastChange(ticket Object) {
	r.fire(r.ticketEvent(hooks.TicketOnUpdateLastChange), ticket)
}

// OnTicketClose is raised when a GM ticket is closed.
func (r *Runtime) OnTicketClose(ticket Object) {
	r.fire(r.ticketEvent(hooks.TicketOnClose), ticket)
}

// OnTicketResolve is raised when a GM ticket is resolved.
func (r *Runtime) OnTicketResolve(ticket Object) {
	r.fire(r.ticketEvent(hooks.TicketOnResolve), ticket)
}

// OnBGStart is raised when a battleground match starts.
func (r *Runtime) OnBGStart(bg Object, bgTypeID, instanceID uint32) {
	r.fire(r.bgEvent(hooks.BGOnStart), bg, bgTypeID, instanceID)
}

// OnBGEnd is raised when a battleground match ends.
func (r *Runtime) OnBGEnd(bg Object, bgTypeID, instanceID, winner uint32) {
	r.fire(r.bgEvent(hooks.BGOnEnd), bg, bgTypeID, instanceID, winner)
}

// OnBGCreate is raised when a battleground instance is created.
func (r *Runtime) OnBGCreate(bg Object, bgTypeID, instanceID uint32) {
	r.fire(r.bgEvent(hooks.BGOnCreate), bg, bgTypeID, instanceID)
}

// OnBGDestroy is raised before a battleground instance is destroyed.
func (r *Runtime) OnBGDestroy(bg Object, bgTypeID, instanceID uint32) {
	r.fire(r.bgEvent(hooks.BGOnPreDestroy), bg, bgTypeID, instanceID)
}

// OnSpellCast is raised when caster completes s.
func (r *Runtime) OnSpellCast(caster Entity, s Spell, skipCheck bool) {
	r.fire(r.spellEvent(hooks.SpellOnCast, s), caster, s, skipCheck)
}

// OnSpellCastCancel is raised when caster's cast of s is interrupted.
func (r *Runtime) OnSpellCastCancel(caster Entity, s Spell, bySelf bool) {
	r.fire(r.spellEvent(hooks.SpellOnCastCancel, s), caster, s, bySelf)
}

// OnSpellPrepare is raised when caster starts casting s.
func (r *Runtime) OnSpellPrepare(caster Entity, s Spell) {
	r.fire(r.spellEvent(hooks.SpellOnPrepare, s), caster, s)
}
