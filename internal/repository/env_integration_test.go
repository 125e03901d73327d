//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/mercato/mercato/internal/testutil"
)

func newMarketTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetMarketplaceSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset marketplace schema: %v", err)
	}

	return ctx, repo
}
