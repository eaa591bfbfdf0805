// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/holomush/lunar/internal/engine"
	"github.com/holomush/lunar/internal/observability"
	"github.com/holomush/lunar/internal/store"
)

// ServeDeps contains injectable dependencies for the serve command.
// Nil fields use their default implementations.
type ServeDeps struct {
	// KVFactory opens the script KV store.
	// Default: store.Connect
	KVFactory func(ctx context.Context, url string) (KVStore, error)

	// ObservabilityServerFactory creates the metrics and health server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, ready observability.ReadinessChecker, register ...func(prometheus.Registerer)) ObservabilityServer

	// Signals subscribes to process signals and returns an unsubscribe func.
	// Default: signal.Notify for SIGINT, SIGTERM and SIGHUP
	Signals func() (<-chan os.Signal, func())
}

func (d *ServeDeps) withDefaults() {
	if d.KVFactory == nil {
		d.KVFactory = func(ctx context.Context, url string) (KVStore, error) {
			return store.Connect(ctx, url)
		}
	}
	if d.ObservabilityServerFactory == nil {
		d.ObservabilityServerFactory = func(addr string, ready observability.ReadinessChecker, register ...func(prometheus.Registerer)) ObservabilityServer {
			return observability.NewServer(addr, ready, register...)
		}
	}
	if d.Signals == nil {
		d.Signals = func() (<-chan os.Signal, func()) {
			ch := make(chan os.Signal, 1)
			signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
			return ch, func() { signal.Stop(ch) }
		}
	}
}

// KVStore is the script KV store plus its lifecycle.
type KVStore interface {
	engine.KVStore
	Close()
}

// ObservabilityServer interface wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}
