// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/lunar/pkg/errutil"
)

var tracer = otel.Tracer("lunar/engine")

// DefaultScriptGlob selects the files LoadScripts compiles when no pattern
// is given.
const DefaultScriptGlob = "**.lua"

// Script is one compiled script file. A Script can be run in any number of
// runtimes.
type Script struct {
	// Name is the path relative to the script root, with forward slashes.
	Name  string
	Proto *lua.FunctionProto
}

// LoadResult lists what LoadScripts found.
type LoadResult struct {
	Scripts []*Script
	// Failed maps script names to their compile errors.
	Failed map[string]error
}

// LoadScripts compiles every file under root whose relative path matches
// pattern, in lexical path order. Files that fail to compile are recorded
// in Failed and skipped. A missing root yields an empty result.
func LoadScripts(ctx context.Context, root, pattern string) (*LoadResult, error) {
	if pattern == "" {
		pattern = DefaultScriptGlob
	}
	ctx, span := tracer.Start(ctx, "engine.load_scripts",
		trace.WithAttributes(
			attribute.String("scripts.root", root),
			attribute.String("scripts.glob", pattern),
		),
	)
	defer span.End()

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		err = oops.In("engine").Code("INVALID_SCRIPT_GLOB").With("glob", pattern).Wrap(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res := &LoadResult{Failed: make(map[string]error)}
	if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
		slog.WarnContext(ctx, "script path does not exist", "path", root)
		return res, nil
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if g.Match(rel) {
			paths = append(paths, rel)
		}
		return nil
	})
	if walkErr != nil {
		err = oops.In("engine").Code("SCRIPT_WALK_FAILED").With("path", root).Wrap(walkErr)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	sort.Strings(paths)

	for _, rel := range paths {
		s, err := compileFile(filepath.Join(root, filepath.FromSlash(rel)), rel)
		if err != nil {
			res.Failed[rel] = err
			errutil.LogError(slog.Default(), "script failed to compile", err)
			continue
		}
		res.Scripts = append(res.Scripts, s)
	}

	span.SetAttributes(
		attribute.Int("scripts.compiled", len(res.Scripts)),
		attribute.Int("scripts.failed", len(res.Failed)),
	)
	return res, nil
}

func compileFile(path, name string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oops.In("engine").Code("SCRIPT_READ_FAILED").With("script", name).Wrap(err)
	}
	defer f.Close()
	return Compile(f, name)
}

// Compile parses and compiles Lua source read from src.
func Compile(src io.Reader, name string) (*Script, error) {
	chunk, err := parse.Parse(src, name)
	if err != nil {
		return nil, oops.In("engine").Code("SCRIPT_SYNTAX").With("script", name).Wrap(err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, oops.In("engine").Code("SCRIPT_COMPILE").With("script", name).Wrap(err)
	}
	return &Script{Name: name, Proto: proto}, nil
}
