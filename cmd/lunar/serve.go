// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/lunar/internal/config"
	"github.com/holomush/lunar/internal/engine"
	"github.com/holomush/lunar/internal/logging"
	"github.com/holomush/lunar/internal/observability"
	"github.com/holomush/lunar/pkg/errutil"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load scripts and run the world tick loop",
		Long: `Load every script below script-path, start the world runtime (and one
runtime per map with --multistate) and dispatch world updates every
tick-interval until SIGINT or SIGTERM. SIGHUP reloads all scripts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServeWithDeps(cmd.Context(), cfg, cmd, nil)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

// host drives a hub from a single goroutine.
type host struct {
	hub      *engine.Hub
	metrics  *observability.Metrics
	announce bool
}

// tick applies queued reloads and dispatches one world update.
func (h *host) tick(elapsed time.Duration) {
	start := time.Now()
	if h.hub.ReloadPending() {
		if err := h.hub.ApplyReloads(); err != nil {
			h.metrics.ReloadsTotal.WithLabelValues("failed").Inc()
		} else {
			h.metrics.ReloadsTotal.WithLabelValues("ok").Inc()
			level := slog.LevelDebug
			if h.announce {
				level = slog.LevelInfo
			}
			slog.Log(context.Background(), level, "lua scripts reloaded", "runtimes", h.hub.Runtimes())
		}
	}
	h.hub.World().OnWorldUpdate(elapsed)
	h.metrics.TickDuration.Observe(time.Since(start).Seconds())
	h.metrics.Runtimes.Set(float64(h.hub.Runtimes()))
}

// runServeWithDeps runs the host with injectable dependencies.
// If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cfg *config.Config, cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	deps.withDefaults()

	logging.SetDefault("lunar", version, cfg.LogFormat)
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	if !cfg.Enabled {
		cmd.Println("Scripting is disabled")
		slog.Info("scripting disabled, nothing to do")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var kv engine.KVStore
	if cfg.DatabaseURL != "" {
		store, err := deps.KVFactory(ctx, cfg.DatabaseURL)
		if err != nil {
			return oops.In("serve").Code("KV_CONNECT_FAILED").Wrap(err)
		}
		defer store.Close()
		kv = store
		slog.Info("connected to script KV store")
	}

	var ready atomic.Bool
	var obsServer ObservabilityServer
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	if cfg.MetricsAddr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.MetricsAddr, ready.Load, engine.RegisterMetrics)
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return oops.In("serve").Code("OBSERVABILITY_START_FAILED").Wrap(err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := obsServer.Stop(shutdownCtx); err != nil {
				errutil.LogWarn(slog.Default(), "error stopping observability server", err)
			}
		}()
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		metrics = obsServer.Metrics()
	}

	source := func(ctx context.Context) ([]*engine.Script, error) {
		res, err := engine.LoadScripts(ctx, cfg.ScriptPath, cfg.ScriptGlob)
		if err != nil {
			return nil, err
		}
		metrics.ScriptsLoaded.Set(float64(len(res.Scripts)))
		return res.Scripts, nil
	}

	hub, err := engine.NewHub(ctx, engine.HubOptions{
		Runtime: engine.Options{
			KV:        kv,
			Namespace: cfg.KVNamespace,
			Traceback: cfg.Traceback,
		},
		MultiState: cfg.MultiState,
		Source:     source,
	})
	if err != nil {
		return err
	}
	defer hub.Close()

	h := &host{hub: hub, metrics: metrics, announce: cfg.AnnounceReload}
	hub.World().OnStartup()
	ready.Store(true)

	sigChan, stopSignals := deps.Signals()
	defer stopSignals()

	cmd.Println("lunar started")
	slog.Info("lunar ready",
		"script_path", cfg.ScriptPath,
		"multistate", cfg.MultiState,
		"tick_interval", cfg.TickInterval,
	)

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()
	last := time.Now()

loop:
	for {
		select {
		case now := <-ticker.C:
			h.tick(now.Sub(last))
			last = now
		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				hub.RequestReload(engine.ReloadAll)
				continue
			}
			slog.Info("received shutdown signal", "signal", sig)
			break loop
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down")
			break loop
		}
	}

	ready.Store(false)
	hub.World().OnShutdown()
	slog.Info("shutdown complete")
	return nil
}

// monitorServerErrors cancels ctx when the server reports a serve error.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
