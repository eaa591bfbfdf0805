// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/oops"

	"github.com/holomush/lunar/internal/timed"
	"github.com/holomush/lunar/pkg/errutil"
)

// Reload targets accepted by Hub.RequestReload besides map ids.
const (
	ReloadAll   = -1
	ReloadWorld = -2
)

// ScriptSource produces the scripts run in every new runtime.
type ScriptSource func(ctx context.Context) ([]*Script, error)

// HubOptions configures a Hub.
type HubOptions struct {
	// Runtime is the template for every runtime. Name and Reload are set by
	// the hub.
	Runtime Options
	// MultiState gives every map its own runtime. When false all maps share
	// the world runtime.
	MultiState bool
	// Source loads scripts. It is called once at start and once per applied
	// reload.
	Source ScriptSource
}

// Hub owns the world runtime and, in multi-state mode, one runtime per map.
// All runtimes share one timed event registry.
//
// Hub methods are safe for concurrent use. The runtimes they return are not:
// each must only be used by the goroutine that drives its map. For that
// reason a reload never closes a map runtime from outside; it marks the
// runtime stale and the map's own next ForMap call swaps it.
type Hub struct {
	ctx    context.Context
	opts   HubOptions
	logger *slog.Logger

	mu       sync.Mutex
	registry timed.Registry
	scripts  []*Script
	world    *Runtime
	maps     map[uint32]*Runtime
	stale    map[uint32]struct{}
	pending  map[int]struct{}
	closed   bool
}

// NewHub loads the scripts and starts the world runtime.
func NewHub(ctx context.Context, opts HubOptions) (*Hub, error) {
	if opts.Source == nil {
		return nil, oops.In("engine").Code("INVALID_OPTIONS").Errorf("a script source is required")
	}
	logger := opts.Runtime.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := opts.Runtime.Registry
	if registry == nil {
		registry = timed.NewGlobalRegistry()
	}
	h := &Hub{
		ctx:      ctx,
		opts:     opts,
		logger:   logger,
		registry: registry,
		maps:     make(map[uint32]*Runtime),
		stale:    make(map[uint32]struct{}),
		pending:  make(map[int]struct{}),
	}

	scripts, err := opts.Source(ctx)
	if err != nil {
		return nil, oops.In("engine").Code("SCRIPT_LOAD_FAILED").Wrap(err)
	}
	h.scripts = scripts

	world, err := h.spawn("world")
	if err != nil {
		return nil, err
	}
	h.world = world
	return h, nil
}

func (h *Hub) spawn(name string) (*Runtime, error) {
	o := h.opts.Runtime
	o.Name = name
	o.Registry = h.registry
	o.Reload = h.RequestReload
	r, err := New(h.ctx, o)
	if err != nil {
		return nil, err
	}
	if _, err := r.Run(h.scripts); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// World returns the world runtime.
func (h *Hub) World() *Runtime {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world
}

// Registry returns the timed event registry shared by every runtime.
func (h *Hub) Registry() timed.Registry { return h.registry }

// ForMap returns the runtime that handles mapID, creating it on first use.
// Without multi-state every map is handled by the world runtime.
//
// Only the goroutine that drives mapID may call ForMap for it: a runtime
// marked stale by ApplyReloads is closed and replaced here, and the caller
// must not keep using the runtime it got before.
func (h *Hub) ForMap(mapID uint32) (*Runtime, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, oops.In("engine").Code("RUNTIME_CLOSED").Errorf("hub is closed")
	}
	if !h.opts.MultiState {
		return h.world, nil
	}
	if r, ok := h.maps[mapID]; ok {
		if _, stale := h.stale[mapID]; !stale {
			return r, nil
		}
		delete(h.stale, mapID)
		delete(h.maps, mapID)
		r.Close()
	}
	r, err := h.spawn(fmt.Sprintf("map-%d", mapID))
	if err != nil {
		return nil, oops.In("engine").With("map", mapID).Wrap(err)
	}
	h.maps[mapID] = r
	return r, nil
}

// DropMap closes the runtime of mapID, for example when the map unloads.
func (h *Hub) DropMap(mapID uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.stale, mapID)
	if r, ok := h.maps[mapID]; ok {
		delete(h.maps, mapID)
		r.Close()
	}
}

// Runtimes returns the number of live runtimes.
func (h *Hub) Runtimes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0
	}
	return 1 + len(h.maps)
}

// RequestReload queues a reload of mapID, ReloadWorld or ReloadAll. The
// reload takes effect at the next ApplyReloads, so it is safe to call from
// inside a script handler.
func (h *Hub) RequestReload(mapID int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending[mapID] = struct{}{}
	h.logger.Info("script reload requested", "map", mapID)
}

// ReloadPending reports whether a reload is queued.
func (h *Hub) ReloadPending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending) > 0
}

// ApplyReloads performs queued reloads. Call it from the goroutine that
// drives the world runtime while it is not dispatching, for example at the
// start of a world tick. The world runtime is replaced right away; map
// runtimes are only marked stale and are replaced by their next ForMap.
// Scripts are loaded from the source once per call; if loading fails every
// runtime keeps its current scripts.
func (h *Hub) ApplyReloads() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || len(h.pending) == 0 {
		return nil
	}
	pending := h.pending
	h.pending = make(map[int]struct{})

	ctx, span := tracer.Start(h.ctx, "engine.reload")
	defer span.End()

	scripts, err := h.opts.Source(ctx)
	if err != nil {
		err = oops.In("engine").Code("SCRIPT_LOAD_FAILED").Wrap(err)
		span.RecordError(err)
		errutil.LogError(h.logger, "reload aborted", err)
		return err
	}
	h.scripts = scripts

	_, all := pending[ReloadAll]
	_, world := pending[ReloadWorld]
	if all || world || !h.opts.MultiState {
		if err := h.reloadWorld(); err != nil {
			return err
		}
	}
	for mapID := range h.maps {
		if _, one := pending[int(mapID)]; all || one {
			h.stale[mapID] = struct{}{}
		}
	}
	h.logger.Info("scripts reloaded", "scripts", len(scripts), "stale_maps", len(h.stale))
	return nil
}

func (h *Hub) reloadWorld() error {
	h.world.Close()
	w, err := h.spawn("world")
	if err != nil {
		return oops.In("engine").Code("RELOAD_FAILED").Wrap(err)
	}
	h.world = w
	return nil
}

// Close closes every runtime. Close is idempotent.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	clear(h.stale)
	for id, r := range h.maps {
		r.Close()
		delete(h.maps, id)
	}
	h.world.Close()
}
