// Package testutil provides shared test helpers for setting up stores and services.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/komumoyu/Motion/internal/identity"
	"github.com/komumoyu/Motion/internal/store"
	"github.com/komumoyu/Motion/internal/workspace"
)

// TestStore creates a temporary SQLite store that is automatically cleaned up.
func TestStore(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "motion-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestService creates a workspace service over a temporary store, without
// an event sink.
func TestService(t *testing.T) *workspace.Service {
	t.Helper()
	return workspace.NewService(TestStore(t), nil)
}

// Ctx returns a context authenticated as the given user.
func Ctx(user string) context.Context {
	return identity.WithPrincipal(context.Background(), identity.Principal{Subject: user})
}
