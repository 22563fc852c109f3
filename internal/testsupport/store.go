package testsupport

import (
	"context"
	"testing"

	"mutablerig/internal/config"
	"mutablerig/internal/journal"
	"mutablerig/internal/logging"
	"mutablerig/internal/session"
)

// MustOpenJournal opens a journal.Store for tests and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustStartSession assembles and starts a session for tests, registering
// cleanup for both the session and its journal.
func MustStartSession(t testing.TB, cfg *config.Config) *session.Session {
	t.Helper()

	store := MustOpenJournal(t, cfg)
	sess, err := session.New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("session.Start: %v", err)
	}
	t.Cleanup(func() {
		sess.Stop()
	})
	return sess
}
