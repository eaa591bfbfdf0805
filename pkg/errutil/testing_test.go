// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"

	"github.com/holomush/lunar/pkg/errutil"
)

func TestAssertErrorCode_ReportsInnermostCode(t *testing.T) {
	inner := oops.In("store").Code("KV_GET_FAILED").Errorf("connection refused")
	err := oops.In("engine").With("script", "boss.lua").Wrap(inner)

	errutil.AssertErrorCode(t, err, "KV_GET_FAILED")
}

func TestAssertErrorContext_MergesChain(t *testing.T) {
	inner := oops.With("namespace", "quests").Errorf("boom")
	err := oops.With("key", "boss").Wrap(inner)

	errutil.AssertErrorContext(t, err, "namespace", "quests")
	errutil.AssertErrorContext(t, err, "key", "boss")
}

func TestAssertErrorHint(t *testing.T) {
	err := oops.Hint("run `lunar migrate up`").Errorf("relation does not exist")

	errutil.AssertErrorHint(t, err, "migrate up")
}

func TestRequireOops(t *testing.T) {
	err := oops.Code("INVALID_DELAY").With("min", 0).Errorf("bad delay")

	oopsErr := errutil.RequireOops(t, err)
	assert.Equal(t, "INVALID_DELAY", oopsErr.Code())
	assert.Equal(t, "bad delay", oopsErr.Error())
}
