// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"slices"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/lunar/internal/config"
	"github.com/holomush/lunar/internal/engine"
	"github.com/holomush/lunar/internal/observability"
	"github.com/holomush/lunar/pkg/errutil"
)

// memKV is an in-memory KVStore.
type memKV struct {
	mu     sync.Mutex
	data   map[string]string
	closed bool
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(_ context.Context, ns, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[ns+"/"+key]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

func (m *memKV) Set(_ context.Context, ns, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[ns+"/"+key] = string(value)
	return nil
}

func (m *memKV) Delete(_ context.Context, ns, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, ns+"/"+key)
	return nil
}

func (m *memKV) Keys(_ context.Context, ns string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if key, ok := strings.CutPrefix(k, ns+"/"); ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (m *memKV) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *memKV) value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data["lunar/"+key]
}

func (m *memKV) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

const serveScript = `
local v = lunar.kv_get("loads")
local n = 0
if v then n = tonumber(v) end
lunar.kv_set("loads", tostring(n + 1))

lunar.register_server_event(lunar.events.SERVER.WORLD_ON_STARTUP, function()
	lunar.kv_set("started", "yes")
end)

lunar.register_server_event(lunar.events.SERVER.WORLD_ON_UPDATE, function(event, diff)
	lunar.kv_set("ticked", "yes")
end)

lunar.register_server_event(lunar.events.SERVER.WORLD_ON_SHUTDOWN, function()
	lunar.kv_set("stopped", "yes")
end)
`

func serveConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.ScriptPath = writeScripts(t, map[string]string{"world.lua": serveScript})
	cfg.TickInterval = 5 * time.Millisecond
	cfg.MetricsAddr = ""
	cfg.DatabaseURL = "postgres://lunar@localhost/lunar"
	cfg.LogFormat = "text"
	return &cfg
}

func testCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "serve"}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func fakeSignals() (chan os.Signal, func() (<-chan os.Signal, func())) {
	ch := make(chan os.Signal, 1)
	return ch, func() (<-chan os.Signal, func()) { return ch, func() {} }
}

func TestServe_Lifecycle(t *testing.T) {
	kv := newMemKV()
	sigs, signals := fakeSignals()
	deps := &ServeDeps{
		KVFactory: func(context.Context, string) (KVStore, error) { return kv, nil },
		Signals:   signals,
	}
	cmd, buf := testCmd()

	done := make(chan error, 1)
	go func() { done <- runServeWithDeps(context.Background(), serveConfig(t), cmd, deps) }()

	require.Eventually(t, func() bool {
		return kv.value("started") == "yes" && kv.value("ticked") == "yes"
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, "1", kv.value("loads"))

	sigs <- syscall.SIGHUP
	require.Eventually(t, func() bool { return kv.value("loads") == "2" }, 5*time.Second, 5*time.Millisecond,
		"SIGHUP reloads the scripts")

	sigs <- syscall.SIGTERM
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop on SIGTERM")
	}

	assert.Equal(t, "yes", kv.value("stopped"))
	assert.True(t, kv.isClosed())
	assert.Contains(t, buf.String(), "lunar started")
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	_, signals := fakeSignals()
	cfg := serveConfig(t)
	cfg.DatabaseURL = ""
	cmd, _ := testCmd()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServeWithDeps(ctx, cfg, cmd, &ServeDeps{Signals: signals}) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop on cancel")
	}
}

func TestServe_Disabled(t *testing.T) {
	cfg := serveConfig(t)
	cfg.Enabled = false
	called := false
	deps := &ServeDeps{
		KVFactory: func(context.Context, string) (KVStore, error) {
			called = true
			return newMemKV(), nil
		},
	}
	cmd, buf := testCmd()

	require.NoError(t, runServeWithDeps(context.Background(), cfg, cmd, deps))
	assert.False(t, called)
	assert.Contains(t, buf.String(), "Scripting is disabled")
}

func TestServe_KVConnectFailure(t *testing.T) {
	deps := &ServeDeps{
		KVFactory: func(context.Context, string) (KVStore, error) {
			return nil, errors.New("connection refused")
		},
	}
	cmd, _ := testCmd()

	err := runServeWithDeps(context.Background(), serveConfig(t), cmd, deps)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "KV_CONNECT_FAILED")
}

type failingServer struct{}

func (failingServer) Start() (<-chan error, error)    { return nil, errors.New("address in use") }
func (failingServer) Stop(context.Context) error      { return nil }
func (failingServer) Addr() string                    { return "" }
func (failingServer) Metrics() *observability.Metrics { return nil }

func TestServe_ObservabilityStartFailure(t *testing.T) {
	cfg := serveConfig(t)
	cfg.DatabaseURL = ""
	cfg.MetricsAddr = "127.0.0.1:9100"
	deps := &ServeDeps{
		ObservabilityServerFactory: func(string, observability.ReadinessChecker, ...func(prometheus.Registerer)) ObservabilityServer {
			return failingServer{}
		},
	}
	cmd, _ := testCmd()

	err := runServeWithDeps(context.Background(), cfg, cmd, deps)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "OBSERVABILITY_START_FAILED")
}

func TestServe_InvalidLogLevel(t *testing.T) {
	cfg := serveConfig(t)
	cfg.LogLevel = "loud"
	cmd, _ := testCmd()

	err := runServeWithDeps(context.Background(), cfg, cmd, nil)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "INVALID_LOG_LEVEL")
}

func TestHost_TickCountsReloads(t *testing.T) {
	script, err := engine.Compile(strings.NewReader(`x = 1`), "x.lua")
	require.NoError(t, err)

	failNext := false
	hub, err := engine.NewHub(context.Background(), engine.HubOptions{
		Source: func(context.Context) ([]*engine.Script, error) {
			if failNext {
				return nil, errors.New("disk gone")
			}
			return []*engine.Script{script}, nil
		},
	})
	require.NoError(t, err)
	t.Cleanup(hub.Close)

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	h := &host{hub: hub, metrics: metrics, announce: true}

	h.tick(10 * time.Millisecond)
	assert.Zero(t, testutil.ToFloat64(metrics.ReloadsTotal.WithLabelValues("ok")), "no reload queued")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runtimes))

	hub.RequestReload(engine.ReloadAll)
	h.tick(10 * time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReloadsTotal.WithLabelValues("ok")))
	assert.False(t, hub.ReloadPending())

	failNext = true
	hub.RequestReload(engine.ReloadWorld)
	h.tick(10 * time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReloadsTotal.WithLabelValues("failed")))
}
