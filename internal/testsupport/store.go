package testsupport

import (
	"testing"

	"cellsort/internal/config"
	"cellsort/internal/manifest"
)

// MustOpenStore opens a manifest.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *manifest.Store {
	t.Helper()

	store, err := manifest.Open(cfg)
	if err != nil {
		t.Fatalf("manifest.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
