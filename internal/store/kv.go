// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package store persists script key-value data in PostgreSQL.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// poolIface is the part of *pgxpool.Pool used by the store.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresKVStore stores opaque script values keyed by namespace and key.
type PostgresKVStore struct {
	pool poolIface
}

// NewPostgresKVStore wraps an open pool.
func NewPostgresKVStore(pool poolIface) *PostgresKVStore {
	return &PostgresKVStore{pool: pool}
}

// ConnectBackoff is the retry policy used by Connect.
var ConnectBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.WithCappedDuration(5*time.Second, retry.NewExponential(200*time.Millisecond)))
}

// Connect opens a pool for dsn and waits for the database to answer a ping.
func Connect(ctx context.Context, dsn string) (*PostgresKVStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.In("store").Code("DB_CONNECT_FAILED").Wrap(err)
	}
	if err := pingWithRetry(ctx, pool, ConnectBackoff()); err != nil {
		pool.Close()
		return nil, err
	}
	return NewPostgresKVStore(pool), nil
}

func pingWithRetry(ctx context.Context, p poolIface, b retry.Backoff) error {
	attempts := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++
		if err := p.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return oops.In("store").Code("DB_PING_FAILED").With("attempts", attempts).Wrap(err)
	}
	return nil
}

// Close closes the underlying pool.
func (s *PostgresKVStore) Close() {
	s.pool.Close()
}

// Get returns the value stored under namespace/key, or nil when absent.
func (s *PostgresKVStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM script_kv WHERE namespace = $1 AND key = $2`,
		namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "KV_GET_FAILED", namespace, key)
	}
	return value, nil
}

// Set stores value under namespace/key, replacing any previous value.
func (s *PostgresKVStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO script_kv (namespace, key, value) VALUES ($1, $2, $3)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		namespace, key, value)
	if err != nil {
		return wrapErr(err, "KV_SET_FAILED", namespace, key)
	}
	return nil
}

// Delete removes namespace/key. Deleting a missing key is not an error.
func (s *PostgresKVStore) Delete(ctx context.Context, namespace, key string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM script_kv WHERE namespace = $1 AND key = $2`,
		namespace, key)
	if err != nil {
		return wrapErr(err, "KV_DELETE_FAILED", namespace, key)
	}
	return nil
}

// Keys lists the keys of namespace in lexical order.
func (s *PostgresKVStore) Keys(ctx context.Context, namespace string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key FROM script_kv WHERE namespace = $1 ORDER BY key`,
		namespace)
	if err != nil {
		return nil, wrapErr(err, "KV_LIST_FAILED", namespace, "")
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapErr(err, "KV_LIST_FAILED", namespace, "")
	}
	return keys, nil
}

func wrapErr(err error, code, namespace, key string) error {
	b := oops.In("store").Code(code).With("namespace", namespace)
	if key != "" {
		b = b.With("key", key)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		b = b.Hint("run `lunar migrate up` to create the script_kv table")
	}
	return b.Wrap(err)
}
