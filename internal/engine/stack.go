// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"fmt"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/pkg/errutil"
	"github.com/holomush/lunar/pkg/hooks"
)

// args counts the logical arguments a call-site pushes. A table built from
// a list counts once even though it is assembled from many values.
type args struct {
	r    *Runtime
	base int
	n    int
}

func (r *Runtime) newArgs() *args {
	return &args{r: r, base: r.L.GetTop()}
}

func (a *args) push(vals ...any) *args {
	for _, v := range vals {
		a.r.L.Push(a.r.toLValue(v))
		a.n++
	}
	return a
}

// toLValue converts a native value to its script form.
func (r *Runtime) toLValue(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return x
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case int8:
		return lua.LNumber(x)
	case int16:
		return lua.LNumber(x)
	case int32:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case uint:
		return lua.LNumber(x)
	case uint8:
		return lua.LNumber(x)
	case uint16:
		return lua.LNumber(x)
	case uint32:
		return lua.LNumber(x)
	case uint64:
		return lua.LNumber(x)
	case float32:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case binding.GUID:
		return lua.LString(x.String())
	case []uint32:
		t := r.L.CreateTable(len(x), 0)
		for i, n := range x {
			t.RawSetInt(i+1, lua.LNumber(n))
		}
		return t
	case Object:
		return r.pushObject(x)
	default:
		r.logger.Warn("value has no script form", "type", typeName(v))
		return lua.LNil
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

// target names up to two binding tables consulted for one event. The second
// table is optional.
type target struct {
	m1 *binding.Map
	k1 binding.Key
	m2 *binding.Map
	k2 binding.Key
}

func single(m *binding.Map, k binding.Key) target {
	return target{m1: m, k1: k}
}

func pair(m1 *binding.Map, k1 binding.Key, m2 *binding.Map, k2 binding.Key) target {
	return target{m1: m1, k1: k1, m2: m2, k2: k2}
}

// active reports whether any handler listens on t.
func (t target) active() bool {
	if t.m1.HasBindingsFor(t.k1) {
		return true
	}
	return t.m2 != nil && t.m2.HasBindingsFor(t.k2)
}

// dispatch is the stack frame of one event. Layout above base:
// kind, args..., pending handlers...
type dispatch struct {
	r         *Runtime
	family    *hooks.Family
	kind      uint32
	base      int
	nargs     int
	remaining int
}

// setupStack validates the keys and the argument bookkeeping, inserts the
// event kind below the arguments and pushes the handlers of both tables.
// On error the stack is restored to where it was before the arguments.
func (r *Runtime) setupStack(t target, a *args) (*dispatch, error) {
	L := r.L
	fam := r.familyOf(t.m1)
	if t.m2 != nil && t.k1.Kind != t.k2.Kind {
		L.SetTop(a.base)
		return nil, oops.In("engine").
			Code("EVENT_KEY_MISMATCH").
			With("family", fam.Name()).
			With("key1", t.k1.String()).
			With("key2", t.k2.String()).
			Errorf("keys of one dispatch name different events")
	}
	if got := L.GetTop() - a.base; got != a.n {
		L.SetTop(a.base)
		return nil, oops.In("engine").
			Code("ARGUMENT_COUNT_MISMATCH").
			With("event", fam.KindName(t.k1.Kind)).
			With("expected", a.n).
			With("actual", got).
			Errorf("argument count %d does not match stack depth %d", a.n, got)
	}

	if a.n == 0 {
		L.Push(lua.LNumber(t.k1.Kind))
	} else {
		L.Insert(lua.LNumber(t.k1.Kind), a.base+1)
	}
	n := t.m1.PushRefsFor(L, t.k1)
	if t.m2 != nil {
		n += t.m2.PushRefsFor(L, t.k2)
	}

	dispatches.WithLabelValues(r.name, fam.Name()).Inc()
	return &dispatch{
		r:         r,
		family:    fam,
		kind:      t.k1.Kind,
		base:      a.base,
		nargs:     a.n,
		remaining: n,
	}, nil
}

// start runs the fast-path check, pushes vals and sets up the stack. It
// returns nil when no handler listens or the call-site is inconsistent.
func (r *Runtime) start(t target, vals ...any) *dispatch {
	if !r.alive || !t.active() {
		return nil
	}
	a := r.newArgs().push(vals...)
	return r.startArgs(t, a)
}

func (r *Runtime) startArgs(t target, a *args) *dispatch {
	d, err := r.setupStack(t, a)
	if err != nil {
		errutil.LogError(r.logger, "dispatch aborted", err)
		return nil
	}
	return d
}

func (d *dispatch) event() string { return d.family.KindName(d.kind) }

// callOne calls the oldest pending handler with a copy of the kind and the
// arguments and returns exactly nret results.
func (d *dispatch) callOne(nret int) []lua.LValue {
	if d.remaining <= 0 {
		return nil
	}
	L := d.r.L
	funcIdx := d.base + d.nargs + 2
	fn := L.Get(funcIdx)
	L.Remove(funcIdx)
	d.remaining--

	L.Push(fn)
	for i := 1; i <= d.nargs+1; i++ {
		L.Push(L.Get(d.base + i))
	}
	top := L.GetTop() - d.nargs - 2
	d.r.protectedCall(d.nargs+1, nret, d.event(), 0)

	if got := L.GetTop() - top; got != nret {
		d.r.imbalance(d.event(), top+nret, L.GetTop())
		L.SetTop(top + nret)
	}
	results := make([]lua.LValue, nret)
	for i := range nret {
		results[i] = L.Get(top + 1 + i)
	}
	L.SetTop(top)
	return results
}

// callAll calls every handler and discards results.
func (d *dispatch) callAll() {
	for d.remaining > 0 {
		d.callOne(0)
	}
}

// callAllBool aggregates boolean results. The first handler returning the
// opposite of def flips the result; non-boolean returns abstain.
func (d *dispatch) callAllBool(def bool) bool {
	result := def
	for d.remaining > 0 {
		res := d.callOne(1)
		if b, ok := res[0].(lua.LBool); ok && bool(b) != def {
			result = !def
		}
	}
	return result
}

// callEach calls every handler with nret results and hands them to visit
// before the next handler runs.
func (d *dispatch) callEach(nret int, visit func(res []lua.LValue)) {
	for d.remaining > 0 {
		visit(d.callOne(nret))
	}
}

// replaceArgument overwrites logical argument idx (0-based) so that later
// handlers see v.
func (d *dispatch) replaceArgument(idx int, v lua.LValue) {
	if idx < 0 || idx >= d.nargs {
		d.r.logger.Error("argument index out of range", "event", d.event(), "index", idx, "arguments", d.nargs)
		return
	}
	d.r.L.Replace(d.base+2+idx, v)
}

// argument returns logical argument idx.
func (d *dispatch) argument(idx int) lua.LValue {
	return d.r.L.Get(d.base + 2 + idx)
}

// cleanUp pops the kind and the arguments and checks the stack is back at
// its depth before the dispatch. Objects pushed during a top-level dispatch
// are invalidated.
func (d *dispatch) cleanUp() {
	L := d.r.L
	if d.remaining > 0 {
		d.r.logger.Error("handlers left uncalled", "event", d.event(), "remaining", d.remaining)
	}
	want := d.base + d.nargs + 1 + d.remaining
	if got := L.GetTop(); got != want {
		d.r.imbalance(d.event(), want, got)
	}
	L.SetTop(d.base)
	if d.r.depth == 0 {
		d.r.invalidateObjects()
	}
}

// fire runs every handler of a side-effect event.
func (r *Runtime) fire(t target, vals ...any) {
	d := r.start(t, vals...)
	if d == nil {
		return
	}
	d.callAll()
	d.cleanUp()
}

// fireBool runs a predicate event. def is returned when no handler listens
// and is the default of the aggregation.
func (r *Runtime) fireBool(t target, def bool, vals ...any) bool {
	return r.fireBoolOr(t, def, def, vals...)
}

// fireBoolOr is fireBool for events whose fast-path value differs from the
// aggregation default.
func (r *Runtime) fireBoolOr(t target, fast, def bool, vals ...any) bool {
	d := r.start(t, vals...)
	if d == nil {
		return fast
	}
	result := d.callAllBool(def)
	d.cleanUp()
	return result
}

func toNumber(v lua.LValue) (lua.LNumber, bool) {
	n, ok := v.(lua.LNumber)
	return n, ok
}

// toUint32 truncates n and wraps negative values into the unsigned range,
// matching what the engine does with an unsigned out-parameter.
func toUint32(n lua.LNumber) uint32 { return uint32(int64(n)) }
