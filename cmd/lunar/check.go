// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"
	"slices"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/lunar/internal/config"
	"github.com/holomush/lunar/internal/engine"
	"github.com/holomush/lunar/internal/logging"
	"github.com/holomush/lunar/internal/timed"
)

// NewCheckCmd creates the check subcommand.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compile and run scripts once and report their bindings",
		Long: `Compile every script below script-path, run them in a throwaway
runtime without a KV store and report compile failures, bindings and
queued timed events. Exits non-zero if any script fails to compile or run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd.Context(), cfg, cmd)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runCheck(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
	slog.SetDefault(logging.Setup("lunar-check", version, "text", cmd.ErrOrStderr()))
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	res, err := engine.LoadScripts(ctx, cfg.ScriptPath, cfg.ScriptGlob)
	if err != nil {
		return err
	}

	failed := make([]string, 0, len(res.Failed))
	for name := range res.Failed {
		failed = append(failed, name)
	}
	slices.Sort(failed)
	for _, name := range failed {
		cmd.Printf("FAIL %s: %v\n", name, res.Failed[name])
	}

	registry := timed.NewGlobalRegistry()
	rt, err := engine.New(ctx, engine.Options{
		Name:      "check",
		Registry:  registry,
		Traceback: cfg.Traceback,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	ran, err := rt.Run(res.Scripts)
	if err != nil {
		return err
	}

	cmd.Printf("%d scripts compiled, %d ran, %d bindings, %d timed events\n",
		len(res.Scripts), ran, rt.Bindings(), rt.PendingTimedEvents())

	if bad := len(failed) + len(res.Scripts) - ran; bad > 0 {
		return oops.In("check").Code("CHECK_FAILED").With("failed", bad).Errorf("%d scripts failed", bad)
	}
	return nil
}
