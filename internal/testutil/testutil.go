// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mercato/mercato/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 570570

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ProjectRoot resolves the repository root from this file's location.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ResetMarketplaceSchema drops and recreates the users/products/cart_lines
// schema for tests.
func ResetMarketplaceSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downPath := filepath.Join(root, "migrations", "000001_marketplace.down.sql")
	upPath := filepath.Join(root, "migrations", "000001_marketplace.up.sql")

	downSQL, err := os.ReadFile(downPath)
	if err != nil {
		return fmt.Errorf("read down migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := os.ReadFile(upPath)
	if err != nil {
		return fmt.Errorf("read up migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

var emailSeq atomic.Int64

// UniqueEmail returns an email address unique within the test run.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@test.local", prefix, time.Now().UnixNano(), emailSeq.Add(1))
}

// NewTestUser builds a user with placeholder credentials.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	return &model.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQwMTIzNDU2$l9gMos2an5RiT6t6urBNQOTaIRNTXwE3RkptX1ALl2w",
		FullAddress:  "1 Test Street, Testville",
		CreatedAt:    time.Now(),
	}
}

// NewTestProduct builds a product owned by the given user.
func NewTestProduct(t testing.TB, ownerID int64, name string) *model.Product {
	t.Helper()
	return &model.Product{
		Name:        name,
		Description: "integration test product",
		Price:       9.99,
		Quantity:    10,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}
}
