// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Command gen-schema writes the config file JSON Schema. With --check it
// only verifies that the file on disk is current.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/lunar/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "gen-schema: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("gen-schema", pflag.ContinueOnError)
	outPath := fs.StringP("output", "o", filepath.Join("schemas", "config.schema.json"), "schema file to write")
	check := fs.Bool("check", false, "fail if the schema file is missing or stale instead of writing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	schema = append(schema, '\n')

	if *check {
		current, err := os.ReadFile(*outPath)
		if err != nil {
			return oops.In("gen-schema").Code("SCHEMA_READ_FAILED").With("path", *outPath).Wrap(err)
		}
		if !bytes.Equal(current, schema) {
			return oops.In("gen-schema").Code("SCHEMA_STALE").With("path", *outPath).
				Hint("run `go run ./cmd/gen-schema`").
				Errorf("%s is out of date", *outPath)
		}
		fmt.Fprintf(out, "%s is up to date\n", *outPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o750); err != nil {
		return oops.In("gen-schema").Code("MKDIR_FAILED").With("path", *outPath).Wrap(err)
	}
	if err := os.WriteFile(*outPath, schema, 0o600); err != nil {
		return oops.In("gen-schema").Code("SCHEMA_WRITE_FAILED").With("path", *outPath).Wrap(err)
	}
	fmt.Fprintf(out, "Generated %s\n", *outPath)
	return nil
}
