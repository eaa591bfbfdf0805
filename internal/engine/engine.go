// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package engine runs user scripts against a live game world.
//
// A Runtime owns one Lua state, the binding tables that map events to
// script callbacks, and the timed events scripts schedule. The host calls the
// exported On* methods from its own loop; every call runs the matching
// handlers to completion before returning. A Runtime is not safe for
// concurrent use; shard by map with a Hub to run several in parallel.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/lunar/internal/binding"
	"github.com/holomush/lunar/internal/timed"
	"github.com/holomush/lunar/pkg/errutil"
	"github.com/holomush/lunar/pkg/hooks"
)

// KVStore provides namespaced key-value storage to scripts.
type KVStore interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	// Keys lists the keys of namespace in lexical order.
	Keys(ctx context.Context, namespace string) ([]string, error)
}

// Options configures a Runtime.
type Options struct {
	// Name labels the runtime in logs and metrics, for example "world" or
	// "map-571".
	Name string
	// Registry resolves timed events across runtimes. Runtimes that share a
	// process must share one registry.
	Registry timed.Registry
	// KV backs lunar.kv_*. Scripts get an error string when nil.
	KV KVStore
	// Namespace is the default KV namespace.
	Namespace string
	// Traceback logs the Lua stack trace of failed handlers.
	Traceback bool
	// Reload is invoked by the "reload lunar [map]" chat command. A map of
	// -1 reloads every runtime.
	Reload func(mapID int)
	// Logger defaults to slog.Default.
	Logger *slog.Logger
	// TimedOptions are passed to every timed event processor.
	TimedOptions []timed.Option
}

// bindingMaps holds one binding table per event family and scope.
type bindingMaps struct {
	server  *binding.Map
	player  *binding.Map
	guild   *binding.Map
	group   *binding.Map
	vehicle *binding.Map
	ticket  *binding.Map
	bg      *binding.Map

	creature       *binding.Map
	creatureUnique *binding.Map
	gameObject     *binding.Map
	spell          *binding.Map

	creatureGossip   *binding.Map
	gameObjectGossip *binding.Map
	itemGossip       *binding.Map
	playerGossip     *binding.Map

	mapEvents *binding.Map
	instance  *binding.Map
}

func newBindingMaps(store *binding.Store) bindingMaps {
	return bindingMaps{
		server:           binding.NewMap("server", store),
		player:           binding.NewMap("player", store),
		guild:            binding.NewMap("guild", store),
		group:            binding.NewMap("group", store),
		vehicle:          binding.NewMap("vehicle", store),
		ticket:           binding.NewMap("ticket", store),
		bg:               binding.NewMap("bg", store),
		creature:         binding.NewMap("creature", store),
		creatureUnique:   binding.NewMap("creature_unique", store),
		gameObject:       binding.NewMap("gameobject", store),
		spell:            binding.NewMap("spell", store),
		creatureGossip:   binding.NewMap("creature_gossip", store),
		gameObjectGossip: binding.NewMap("gameobject_gossip", store),
		itemGossip:       binding.NewMap("item_gossip", store),
		playerGossip:     binding.NewMap("player_gossip", store),
		mapEvents:        binding.NewMap("map", store),
		instance:         binding.NewMap("instance", store),
	}
}

func (m *bindingMaps) all() []*binding.Map {
	return []*binding.Map{
		m.server, m.player, m.guild, m.group, m.vehicle, m.ticket, m.bg,
		m.creature, m.creatureUnique, m.gameObject, m.spell,
		m.creatureGossip, m.gameObjectGossip, m.itemGossip, m.playerGossip,
		m.mapEvents, m.instance,
	}
}

// Runtime is one Lua state with its bindings and timers.
type Runtime struct {
	id     ulid.ULID
	name   string
	ctx    context.Context
	L      *lua.LState
	logger *slog.Logger

	store    *binding.Store
	maps     bindingMaps
	registry timed.Registry
	timers   *timed.Manager

	objectTimers map[binding.GUID]*timed.Processor
	instanceData map[uint32]*lua.LTable

	// depth counts protected calls into Lua currently on the Go stack.
	depth  int
	pushed []*objectRef
	alive  bool

	traceback bool
	kv        KVStore
	namespace string
	reload    func(mapID int)
}

// New creates a runtime with the script API installed and no scripts loaded.
func New(ctx context.Context, opts Options) (*Runtime, error) {
	if opts.Registry == nil {
		return nil, oops.In("engine").Code("INVALID_OPTIONS").Errorf("a timed event registry is required")
	}
	name := opts.Name
	if name == "" {
		name = "world"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	L, err := newState(sandboxLibraries())
	if err != nil {
		return nil, err
	}
	L.SetContext(ctx)

	id := ulid.Make()
	store := binding.NewStore()
	r := &Runtime{
		id:           id,
		name:         name,
		ctx:          ctx,
		L:            L,
		logger:       logger.With("runtime", name, "runtime_id", id.String()),
		store:        store,
		maps:         newBindingMaps(store),
		registry:     opts.Registry,
		objectTimers: make(map[binding.GUID]*timed.Processor),
		instanceData: make(map[uint32]*lua.LTable),
		alive:        true,
		traceback:    opts.Traceback,
		kv:           opts.KV,
		namespace:    opts.Namespace,
		reload:       opts.Reload,
	}
	timedOpts := append([]timed.Option{timed.WithLogger(r.logger)}, opts.TimedOptions...)
	r.timers = timed.NewManager(opts.Registry, timedOpts...)

	r.registerObjectType()
	r.registerAPI()
	return r, nil
}

// ID returns the unique id of this runtime.
func (r *Runtime) ID() ulid.ULID { return r.id }

// Name returns the runtime label.
func (r *Runtime) Name() string { return r.name }

// Alive reports whether the runtime still owns a Lua state.
func (r *Runtime) Alive() bool { return r.alive }

// Release drops the callback stored under id.
func (r *Runtime) Release(id binding.Handle) {
	r.store.Unref(id)
}

// Bindings returns the number of registered event handlers.
func (r *Runtime) Bindings() int {
	n := 0
	for _, m := range r.maps.all() {
		n += m.Len()
	}
	return n
}

// PendingTimedEvents returns the number of queued timed events.
func (r *Runtime) PendingTimedEvents() int { return r.timers.Pending() }

// Close runs the state close hook, cancels every timed event and closes the
// Lua state. Close is idempotent.
func (r *Runtime) Close() {
	if !r.alive {
		return
	}
	r.OnLuaStateClose()

	r.timers.Close()
	r.objectTimers = make(map[binding.GUID]*timed.Processor)
	for _, m := range r.maps.all() {
		m.ClearAll()
	}
	pendingTimedEvents.DeleteLabelValues(r.name)

	r.alive = false
	r.invalidateObjects()
	r.L.Close()
	r.logger.Debug("runtime closed")
}

// FireTimed runs the timed event callback stored under id with
// (id, delay_ms, calls, obj).
func (r *Runtime) FireTimed(id binding.Handle, delay time.Duration, calls uint32, obj any) {
	if !r.alive {
		return
	}
	fn, ok := r.store.Get(id)
	if !ok {
		r.logger.Debug("timed event callback missing", "event", uint64(id))
		return
	}

	L := r.L
	base := L.GetTop()
	L.Push(fn)
	L.Push(lua.LNumber(id))
	L.Push(lua.LNumber(delay.Milliseconds()))
	L.Push(lua.LNumber(calls))
	if o, isObj := obj.(Object); isObj && o != nil {
		L.Push(r.pushObject(o))
	} else {
		L.Push(lua.LNil)
	}

	timedEventsFired.WithLabelValues(r.name).Inc()
	r.protectedCall(4, 0, "timed_event", uint64(id))

	if L.GetTop() != base {
		r.imbalance("timed_event", base, L.GetTop())
		L.SetTop(base)
	}
	if r.depth == 0 {
		r.invalidateObjects()
	}
}

// protectedCall calls the function below nargs arguments and leaves exactly
// nret results. Failures are logged and replaced by nils.
func (r *Runtime) protectedCall(nargs, nret int, event string, handler uint64) {
	L := r.L
	depth := r.depth
	r.depth++
	err := L.PCall(nargs, nret, nil)
	r.depth--
	if r.depth != depth {
		r.logger.Error("call depth changed across handler", "event", event, "before", depth, "after", r.depth)
		r.depth = depth
	}
	if err == nil {
		return
	}

	handlerErrors.WithLabelValues(r.name).Inc()
	herr := oops.In("engine").
		Code("HANDLER_FAILED").
		With("event", event).
		With("handler", handler)
	if apiErr, ok := err.(*lua.ApiError); ok && r.traceback && apiErr.StackTrace != "" {
		herr = herr.With("traceback", apiErr.StackTrace)
	}
	errutil.LogError(r.logger, "script handler failed", herr.Wrap(err))
	for range nret {
		L.Push(lua.LNil)
	}
}

func (r *Runtime) imbalance(event string, want, got int) {
	stackImbalances.WithLabelValues(r.name).Inc()
	errutil.LogWarn(r.logger, "stack imbalance after dispatch", oops.In("engine").
		Code("STACK_IMBALANCE").
		With("event", event).
		With("expected", want).
		With("actual", got).
		Errorf("stack depth %d, expected %d", got, want))
}

// Run executes compiled scripts in order. A script that fails is logged and
// skipped; the returned count is the number that ran successfully.
func (r *Runtime) Run(scripts []*Script) (int, error) {
	if !r.alive {
		return 0, oops.In("engine").Code("RUNTIME_CLOSED").Errorf("runtime %s is closed", r.name)
	}
	ok := 0
	for _, s := range scripts {
		r.L.Push(r.L.NewFunctionFromProto(s.Proto))
		r.depth++
		err := r.L.PCall(0, 0, nil)
		r.depth--
		if err != nil {
			errutil.LogError(r.logger, "script failed to run",
				oops.In("engine").With("script", s.Name).Wrap(err))
			continue
		}
		ok++
	}
	if r.depth == 0 {
		r.invalidateObjects()
	}
	r.logger.Info("scripts loaded", "scripts", ok, "failed", len(scripts)-ok, "bindings", r.Bindings())
	r.OnLuaStateOpen()
	return ok, nil
}

// familyOf maps binding tables to the family whose kinds they hold.
func (r *Runtime) familyOf(m *binding.Map) *hooks.Family {
	switch m {
	case r.maps.server:
		return hooks.Server
	case r.maps.player:
		return hooks.Player
	case r.maps.guild:
		return hooks.Guild
	case r.maps.group:
		return hooks.Group
	case r.maps.vehicle:
		return hooks.Vehicle
	case r.maps.ticket:
		return hooks.Ticket
	case r.maps.bg:
		return hooks.BG
	case r.maps.creature, r.maps.creatureUnique:
		return hooks.Creature
	case r.maps.gameObject:
		return hooks.GameObject
	case r.maps.spell:
		return hooks.Spell
	case r.maps.mapEvents, r.maps.instance:
		return hooks.Instance
	default:
		return hooks.Gossip
	}
}
