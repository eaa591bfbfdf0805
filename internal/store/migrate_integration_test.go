// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package store_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/lunar/internal/store"
)

var _ = Describe("Migrator", func() {
	var migrator *store.Migrator
	var stop func()

	BeforeEach(func() {
		var url string
		url, stop = startPostgres(context.Background())
		var err error
		migrator, err = store.NewMigrator(url)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(migrator.Close()).To(Succeed())
		stop()
	})

	version := func() (uint, bool) {
		v, dirty, err := migrator.Version()
		Expect(err).NotTo(HaveOccurred())
		return v, dirty
	}

	It("starts at version 0 with every migration pending", func() {
		v, dirty := version()
		Expect(v).To(BeZero())
		Expect(dirty).To(BeFalse())

		pending, err := migrator.PendingMigrations()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(Equal([]uint{1, 2}))
	})

	It("walks up, steps back and down again", func() {
		Expect(migrator.Up()).To(Succeed())
		v, _ := version()
		Expect(v).To(Equal(uint(2)))

		Expect(migrator.Steps(-1)).To(Succeed())
		v, _ = version()
		Expect(v).To(Equal(uint(1)))

		Expect(migrator.Steps(1)).To(Succeed())
		v, _ = version()
		Expect(v).To(Equal(uint(2)))

		Expect(migrator.Down()).To(Succeed())
		v, dirty := version()
		Expect(v).To(BeZero())
		Expect(dirty).To(BeFalse())
	})

	It("forces a version", func() {
		Expect(migrator.Up()).To(Succeed())
		Expect(migrator.Force(1)).To(Succeed())

		v, dirty := version()
		Expect(v).To(Equal(uint(1)))
		Expect(dirty).To(BeFalse())

		applied, err := migrator.AppliedMigrations()
		Expect(err).NotTo(HaveOccurred())
		Expect(applied).To(Equal([]uint{1}))
	})
})
