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

// setupKVStore migrates a fresh database and connects a KV store to it.
func setupKVStore(ctx context.Context) (*store.PostgresKVStore, func()) {
	url, stop := startPostgres(ctx)

	migrator, err := store.NewMigrator(url)
	Expect(err).NotTo(HaveOccurred())
	Expect(migrator.Up()).To(Succeed())
	Expect(migrator.Close()).To(Succeed())

	kv, err := store.Connect(ctx, url)
	Expect(err).NotTo(HaveOccurred())
	return kv, func() {
		kv.Close()
		stop()
	}
}

var _ = Describe("PostgresKVStore", func() {
	var kv *store.PostgresKVStore
	var cleanup func()
	ctx := context.Background()

	BeforeEach(func() {
		kv, cleanup = setupKVStore(ctx)
	})

	AfterEach(func() {
		cleanup()
	})

	Describe("Get", func() {
		It("returns nil for a missing key", func() {
			value, err := kv.Get(ctx, "quests", "boss")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(BeNil())
		})
	})

	Describe("Set", func() {
		It("stores and overwrites values", func() {
			Expect(kv.Set(ctx, "quests", "boss", []byte("alive"))).To(Succeed())
			Expect(kv.Set(ctx, "quests", "boss", []byte("slain"))).To(Succeed())

			value, err := kv.Get(ctx, "quests", "boss")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(value)).To(Equal("slain"))
		})

		It("keeps namespaces apart", func() {
			Expect(kv.Set(ctx, "world", "boss", []byte("a"))).To(Succeed())
			Expect(kv.Set(ctx, "map-571", "boss", []byte("b"))).To(Succeed())

			value, err := kv.Get(ctx, "world", "boss")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(value)).To(Equal("a"))

			keys, err := kv.Keys(ctx, "map-571")
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(Equal([]string{"boss"}))
		})
	})

	Describe("Delete", func() {
		It("removes the key", func() {
			Expect(kv.Set(ctx, "quests", "boss", []byte("slain"))).To(Succeed())
			Expect(kv.Delete(ctx, "quests", "boss")).To(Succeed())

			value, err := kv.Get(ctx, "quests", "boss")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(BeNil())
		})

		It("ignores missing keys", func() {
			Expect(kv.Delete(ctx, "quests", "nothing")).To(Succeed())
		})
	})
})
