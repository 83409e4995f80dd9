package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"

	"cellsort/internal/logging"
	"cellsort/internal/organizer"
	"cellsort/internal/testsupport"
)

func TestSettledHonoursDebounce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Watch.DebounceMillis = 100
	w := New(cfg, organizer.New(cfg, nil, logging.NewNop()), logging.NewNop())

	now := time.Now()
	w.pending["/in/old.csv"] = now.Add(-200 * time.Millisecond)
	w.pending["/in/fresh.csv"] = now.Add(-10 * time.Millisecond)

	require.Equal(t, []string{"/in/old.csv"}, w.settled(now))
	require.Contains(t, w.pending, "/in/fresh.csv")
	require.NotContains(t, w.pending, "/in/old.csv")
}

func TestTouchIgnoresSkippedExtensions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	w := New(cfg, organizer.New(cfg, nil, logging.NewNop()), logging.NewNop())

	w.touch(filepath.Join(cfg.Paths.InputDir, "sh1_photo.jpg"))
	w.touch(filepath.Join(cfg.Paths.InputDir, "sh1_eis.csv"))
	require.Len(t, w.pending, 1)
}

func TestDebounceHasFloor(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Watch.DebounceMillis = 0
	w := New(cfg, organizer.New(cfg, nil, logging.NewNop()), logging.NewNop())
	require.Equal(t, minDebounce, w.debounce)
}

func TestRunOrganizesNewFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	org := organizer.New(cfg, store, logging.NewNop())
	w := New(cfg, org, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	testsupport.WriteInput(t, cfg.Paths.InputDir, "sh3_air_ocv.csv", "Time,E(Volts)\n1,0.9\n2,0.91\n")
	testsupport.WriteInput(t, cfg.Paths.InputDir, "Redox/new/b4_redox_eis.csv", "Frequency,Zreal\n1000,0.1\n500,0.2\n")

	ocv := filepath.Join(cfg.Paths.TxtDir, "unknown", "polar", "SH3_unknown_polar_H3_OC_20241218.txt")
	eis := filepath.Join(cfg.Paths.TxtDir, "redox", "eis", "B4_redox_eis_T750Air100V07_ICTE_20241218.txt")
	require.Eventually(t, func() bool {
		_, errA := os.Stat(ocv)
		_, errB := os.Stat(eis)
		return errA == nil && errB == nil
	}, 10*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	stats := w.Stats()
	require.GreaterOrEqual(t, stats.Batches, 1)
	require.GreaterOrEqual(t, stats.Processed, 2)
	require.Zero(t, stats.Failed)

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, runs)
}

func TestRunRefusesWhenLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	held := flock.New(cfg.LockPath())
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() { _ = held.Unlock() })

	w := New(cfg, organizer.New(cfg, nil, logging.NewNop()), logging.NewNop())
	err = w.Run(context.Background())
	require.ErrorIs(t, err, organizer.ErrLocked)
}
