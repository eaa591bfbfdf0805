// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package binding holds script callbacks keyed by the event they listen to.
package binding

import (
	"fmt"
	"strconv"

	"github.com/samber/oops"
)

// GUID is the 128-bit opaque identity of a live native object.
type GUID struct {
	Hi uint64
	Lo uint64
}

// NewGUID builds a GUID from its low 64 bits.
func NewGUID(lo uint64) GUID { return GUID{Lo: lo} }

// IsZero reports whether g is the empty identity.
func (g GUID) IsZero() bool { return g.Hi == 0 && g.Lo == 0 }

// String renders g as 32 hex digits. Scripts receive and pass GUIDs in this
// form because Lua numbers cannot hold 64 bits exactly.
func (g GUID) String() string {
	return fmt.Sprintf("%016X%016X", g.Hi, g.Lo)
}

// ParseGUID parses the hex form produced by String. Shorter strings are
// read as the low bits.
func ParseGUID(s string) (GUID, error) {
	if s == "" || len(s) > 32 {
		return GUID{}, oops.In("binding").With("guid", s).Errorf("invalid guid length %d", len(s))
	}
	var g GUID
	lo := s
	if len(s) > 16 {
		hi, err := strconv.ParseUint(s[:len(s)-16], 16, 64)
		if err != nil {
			return GUID{}, oops.In("binding").With("guid", s).Wrap(err)
		}
		g.Hi = hi
		lo = s[len(s)-16:]
	}
	v, err := strconv.ParseUint(lo, 16, 64)
	if err != nil {
		return GUID{}, oops.In("binding").With("guid", s).Wrap(err)
	}
	g.Lo = v
	return g, nil
}

// ScopeType selects how a Key narrows its event kind.
type ScopeType uint8

// Scope types.
const (
	ScopeNone ScopeType = iota
	ScopeEntry
	ScopeUnique
)

func (t ScopeType) String() string {
	switch t {
	case ScopeNone:
		return "none"
	case ScopeEntry:
		return "entry"
	case ScopeUnique:
		return "unique"
	default:
		return "scope(" + strconv.Itoa(int(t)) + ")"
	}
}

// Scope narrows an event kind to a template entry or to one live instance.
// Only the fields relevant to Type are set, so Scope values compare equal
// exactly when they describe the same scope.
type Scope struct {
	Type      ScopeType
	Entry     uint32
	GUID      GUID
	Container uint32
}

// Key identifies a dispatch point. Keys are comparable and used directly as
// map keys.
type Key struct {
	Kind  uint32
	Scope Scope
}

// GlobalKey returns a key with no scope.
func GlobalKey(kind uint32) Key {
	return Key{Kind: kind}
}

// EntryKey returns a key scoped to every instance sharing a template entry.
func EntryKey(kind, entry uint32) Key {
	return Key{Kind: kind, Scope: Scope{Type: ScopeEntry, Entry: entry}}
}

// UniqueKey returns a key scoped to one live instance inside one container.
func UniqueKey(kind uint32, guid GUID, container uint32) Key {
	return Key{Kind: kind, Scope: Scope{Type: ScopeUnique, GUID: guid, Container: container}}
}

func (k Key) String() string {
	switch k.Scope.Type {
	case ScopeEntry:
		return fmt.Sprintf("%d@entry:%d", k.Kind, k.Scope.Entry)
	case ScopeUnique:
		return fmt.Sprintf("%d@unique:%s/%d", k.Kind, k.Scope.GUID, k.Scope.Container)
	default:
		return strconv.FormatUint(uint64(k.Kind), 10)
	}
}
