package organizer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"cellsort/internal/classify"
	"cellsort/internal/config"
	"cellsort/internal/logging"
	"cellsort/internal/manifest"
	"cellsort/internal/organizer"
	"cellsort/internal/testsupport"
)

const (
	redoxContent   = "Date: 06-01-2023\nE(Volts),I(A)\n0.9,0.1\n\n0.8,0.2\n"
	thermalContent = "Temp Log\n10.0 650.1\n20.0 651.2\n"
	notesContent   = "just some notes\n"
)

// seedInput writes a small raw tree. Every filename carries its own cell
// token so the temp directory path never feeds the cell id.
func seedInput(t *testing.T, cfg *config.Config) {
	t.Helper()
	testsupport.WriteInput(t, cfg.Paths.InputDir, "Redox/b3_redox_iv_25c_20230601.csv", redoxContent)
	testsupport.WriteInput(t, cfg.Paths.InputDir, "Thermal Shock/SH12_thermal_650c.csv", thermalContent)
	testsupport.WriteInput(t, cfg.Paths.InputDir, "misc/c7_healthy_notes.txt", notesContent)
	testsupport.WriteInput(t, cfg.Paths.InputDir, "Redox/b3_photo.JPG", "not an image")
}

func TestRunOrganizesTree(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	seedInput(t, cfg)

	stale := filepath.Join(cfg.Paths.OrganizedDir, "stale", "empty")
	require.NoError(t, os.MkdirAll(stale, 0o755))

	org := organizer.New(cfg, store, logging.NewNop())
	summary, err := org.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, summary.RunID)
	require.Equal(t, manifest.Counts{Discovered: 3, Copied: 3, Converted: 2}, summary.Counts)

	redox := filepath.Join(cfg.Paths.OrganizedDir, "redox", "temperature", "B3_redox_temperature_T25_IV_20230601.CSV")
	require.Equal(t, redoxContent, testsupport.ReadFile(t, redox))
	redoxTxt := filepath.Join(cfg.Paths.TxtDir, "redox", "temperature", "B3_redox_temperature_T25_IV_20230601.txt")
	require.Equal(t, "0.9\t0.1\n0.8\t0.2\n", testsupport.ReadFile(t, redoxTxt))

	// The first numeric line is taken as the header and is not written.
	thermalTxt := filepath.Join(cfg.Paths.TxtDir, "thermal", "temperature", "SH12_thermal_temperature_T650H12_TEMP_20241218.txt")
	require.Equal(t, "20.0\t651.2\n", testsupport.ReadFile(t, thermalTxt))

	notes := filepath.Join(cfg.Paths.OrganizedDir, "healthy", "misc", "C7_healthy_misc_T750Air100V07_OC_20241218.CSV")
	require.FileExists(t, notes)
	require.NoFileExists(t, filepath.Join(cfg.Paths.TxtDir, "healthy", "misc", "C7_healthy_misc_T750Air100V07_OC_20241218.txt"))

	require.NoDirExists(t, filepath.Join(cfg.Paths.OrganizedDir, "stale"))
	require.Contains(t, summary.RemovedDirs, stale)

	files, err := store.RunFiles(context.Background(), summary.RunID)
	require.NoError(t, err)
	require.Len(t, files, 3)
	outcomes := map[string]manifest.Outcome{}
	for _, f := range files {
		outcomes[filepath.Base(f.SourcePath)] = f.Outcome
	}
	require.Equal(t, map[string]manifest.Outcome{
		"b3_redox_iv_25c_20230601.csv": manifest.OutcomeConverted,
		"SH12_thermal_650c.csv":        manifest.OutcomeConverted,
		"c7_healthy_notes.txt":         manifest.OutcomeCopied,
	}, outcomes)

	run, err := store.GetRun(context.Background(), summary.RunID)
	require.NoError(t, err)
	require.True(t, run.Finished())
	require.Equal(t, summary.Counts, run.Counts)
}

func TestRunPreservesModificationTime(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithConvert(false))
	src := testsupport.WriteInput(t, cfg.Paths.InputDir, "Redox/b3_redox_iv_25c_20230601.csv", redoxContent)
	srcInfo, err := os.Stat(src)
	require.NoError(t, err)

	org := organizer.New(cfg, nil, logging.NewNop())
	summary, err := org.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	require.Equal(t, manifest.OutcomeCopied, summary.Results[0].Outcome)
	require.Equal(t, "conversion disabled", summary.Results[0].Note)

	dstInfo, err := os.Stat(summary.Results[0].OrganizedPath)
	require.NoError(t, err)
	require.True(t, srcInfo.ModTime().Equal(dstInfo.ModTime()))
}

func TestRunSkipsExistingWhenOverwriteDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithOverwrite(false))
	store := testsupport.MustOpenStore(t, cfg)
	seedInput(t, cfg)

	org := organizer.New(cfg, store, logging.NewNop())
	_, err := org.Run(context.Background())
	require.NoError(t, err)

	second, err := org.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, manifest.Counts{Discovered: 3, Skipped: 3}, second.Counts)
	for _, res := range second.Results {
		require.Equal(t, "destination exists", res.Note)
	}

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
}

func TestRunContinuesPastFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedInput(t, cfg)

	// A plain file where the redox folder should be makes that copy fail.
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.OrganizedDir, "redox"), "blocker")

	org := organizer.New(cfg, nil, logging.NewNop())
	summary, err := org.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Counts.Failed)
	require.Equal(t, 2, summary.Counts.Copied)

	var failedResult organizer.FileResult
	for _, res := range summary.Results {
		if res.Outcome == manifest.OutcomeFailed {
			failedResult = res
		}
	}
	require.Error(t, failedResult.Err)
	require.True(t, errors.Is(failedResult.Err, organizer.ErrCopy))
	require.Equal(t, "copy", organizer.ErrorKind(failedResult.Err))
}

func TestRunRefusesWhenLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	held := flock.New(cfg.LockPath())
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() { _ = held.Unlock() })

	org := organizer.New(cfg, nil, logging.NewNop())
	_, err = org.Run(context.Background())
	require.ErrorIs(t, err, organizer.ErrLocked)
}

func TestRunHonoursCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedInput(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	org := organizer.New(cfg, nil, logging.NewNop())
	_, err := org.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscoverSkipsExtensions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedInput(t, cfg)
	testsupport.WriteInput(t, cfg.Paths.InputDir, "deep/a/b/x9_flow.png", "img")

	org := organizer.New(cfg, nil, logging.NewNop())
	paths, err := org.Discover(context.Background())
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	require.ElementsMatch(t, []string{
		"b3_redox_iv_25c_20230601.csv",
		"SH12_thermal_650c.csv",
		"c7_healthy_notes.txt",
	}, names)
}

func TestProcessFileMatchesResolver(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := testsupport.WriteInput(t, cfg.Paths.InputDir, "Redox/b3_redox_iv_25c_20230601.csv", redoxContent)

	org := organizer.New(cfg, nil, logging.NewNop())
	res := org.ProcessFile(context.Background(), "", path)
	require.NoError(t, res.Err)

	want := classify.FileMetadata{
		CellID:             "B3",
		TestName:           classify.TestRedox,
		Variable:           classify.VariableTemperature,
		TestSpec:           "T25",
		OperatingCondition: classify.ConditionIV,
		Date:               "20230601",
	}
	if diff := cmp.Diff(want, res.Metadata); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "B3_redox_temperature_T25_IV_20230601.CSV", res.CanonicalName())
	require.Equal(t, 2, res.Rows)
}

func TestRunNamesEveryCopyWithCSVExtension(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithConvert(false))
	for _, rel := range []string{
		"Redox/b3_redox_iv_25c_20230601.csv",
		"Redox/b4_redox_notes.txt",
		"Redox/b5_redox_raw",
	} {
		testsupport.WriteInput(t, cfg.Paths.InputDir, rel, notesContent)
	}

	summary, err := organizer.New(cfg, nil, logging.NewNop()).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Results, 3)
	for _, res := range summary.Results {
		require.NoError(t, res.Err)
		require.Equal(t, res.Metadata.Stem()+".CSV", filepath.Base(res.OrganizedPath), "source %s", res.SourcePath)
		require.Equal(t, filepath.Base(res.OrganizedPath), res.CanonicalName())
		require.FileExists(t, res.OrganizedPath)
	}
}

func TestFallbacksFromConfigMatchDefaults(t *testing.T) {
	cfg := config.Default()
	if diff := cmp.Diff(classify.DefaultFallbacks(), organizer.FallbacksFromConfig(&cfg)); diff != "" {
		t.Fatalf("config defaults drifted from classifier defaults (-want +got):\n%s", diff)
	}
}
