// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package hooks enumerates the event kinds scripts can bind to.
//
// Kinds are grouped into families. Each family owns its own binding tables,
// so the same numeric kind means different things in different families.
// The numeric values are part of the script contract and must not change.
package hooks

import (
	"fmt"
	"sort"
)

// Family describes one group of event kinds.
type Family struct {
	name  string
	names map[uint32]string
}

func newFamily(name string, names map[uint32]string) *Family {
	return &Family{name: name, names: names}
}

// Name returns the family name as used in logs and in the script API.
func (f *Family) Name() string { return f.name }

// Valid reports whether kind is a known event kind in this family.
func (f *Family) Valid(kind uint32) bool {
	_, ok := f.names[kind]
	return ok
}

// KindName returns the constant name of kind, or a numeric placeholder.
func (f *Family) KindName(kind uint32) string {
	if n, ok := f.names[kind]; ok {
		return n
	}
	return fmt.Sprintf("%s_EVENT_%d", f.name, kind)
}

// Kinds returns every known kind sorted ascending.
func (f *Family) Kinds() []uint32 {
	kinds := make([]uint32, 0, len(f.names))
	for k := range f.names {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Families lists every family in registration-table order.
func Families() []*Family {
	return []*Family{
		Server, Player, Guild, Group, Vehicle, Ticket, BG,
		Creature, GameObject, Spell, Gossip, Instance,
	}
}
