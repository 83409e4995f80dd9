package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cellsort/internal/classify"
	"cellsort/internal/config"
	"cellsort/internal/fileutil"
	"cellsort/internal/logging"
	"cellsort/internal/manifest"
)

// Organizer copies and converts raw test logs into the organized layout.
type Organizer struct {
	cfg      *config.Config
	store    *manifest.Store
	resolver *classify.Resolver
	logger   *slog.Logger
	lock     *flock.Flock
}

// Summary describes one completed run.
type Summary struct {
	RunID       string
	Trigger     manifest.Trigger
	Counts      manifest.Counts
	Results     []FileResult
	RemovedDirs []string
	Duration    time.Duration
}

// New builds an organizer. store may be nil, in which case no history is
// recorded.
func New(cfg *config.Config, store *manifest.Store, logger *slog.Logger) *Organizer {
	componentLogger := logging.NewComponentLogger(logger, "organizer")
	return &Organizer{
		cfg:      cfg,
		store:    store,
		resolver: classify.NewResolver(FallbacksFromConfig(cfg), logger),
		logger:   componentLogger,
		lock:     flock.New(cfg.LockPath()),
	}
}

// FallbacksFromConfig maps the [classify] section onto resolver fallbacks.
func FallbacksFromConfig(cfg *config.Config) classify.Fallbacks {
	if cfg == nil {
		return classify.DefaultFallbacks()
	}
	return classify.Fallbacks{
		CellID:             cfg.Classify.DefaultCellID,
		TestSpec:           cfg.Classify.DefaultTestSpec,
		Date:               cfg.Classify.DefaultDate,
		OperatingCondition: classify.OperatingCondition(cfg.Classify.DefaultOperatingCondition),
	}
}

// Resolver exposes the classifier the organizer uses.
func (o *Organizer) Resolver() *classify.Resolver {
	return o.resolver
}

// Acquire takes the exclusive lock on the organized tree. The returned
// function releases it.
func (o *Organizer) Acquire() (func(), error) {
	if err := o.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	ok, err := o.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, o.cfg.LockPath())
	}
	return func() {
		if err := o.lock.Unlock(); err != nil {
			o.logger.Warn("failed to release lock", logging.Error(err))
		}
	}, nil
}

// Run organizes every file under the input directory. Individual file
// failures are counted in the summary; the returned error covers only
// conditions that stop the whole run.
func (o *Organizer) Run(ctx context.Context) (Summary, error) {
	release, err := o.Acquire()
	if err != nil {
		return Summary{}, err
	}
	defer release()

	paths, err := o.Discover(ctx)
	if err != nil {
		return Summary{}, err
	}
	return o.RunBatch(ctx, manifest.TriggerOrganize, paths)
}

// RunBatch processes paths as one run. The caller must hold the lock.
func (o *Organizer) RunBatch(ctx context.Context, trigger manifest.Trigger, paths []string) (Summary, error) {
	started := time.Now()
	runID, err := o.beginRun(ctx, trigger)
	if err != nil {
		return Summary{}, err
	}
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("run started",
		logging.String("trigger", string(trigger)),
		logging.String("input_dir", o.cfg.Paths.InputDir),
		logging.Int("files", len(paths)),
	)

	summary := Summary{RunID: runID, Trigger: trigger}
	summary.Counts.Discovered = len(paths)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled", logging.Int("processed", len(summary.Results)))
			break
		}
		result := o.ProcessFile(ctx, runID, path)
		summary.Counts.Add(result.Outcome)
		summary.Results = append(summary.Results, result)
	}

	if o.cfg.Organize.CleanupEmptyDirs {
		summary.RemovedDirs = o.cleanup(ctx)
	}

	if o.store != nil {
		// A cancelled ctx must not prevent the run row from being closed.
		if err := o.store.FinishRun(context.WithoutCancel(ctx), runID, summary.Counts); err != nil {
			logger.Warn("failed to finish run in manifest", logging.Error(err))
		}
	}
	summary.Duration = time.Since(started)
	logger.Info("run finished",
		logging.Int("discovered", summary.Counts.Discovered),
		logging.Int("copied", summary.Counts.Copied),
		logging.Int("converted", summary.Counts.Converted),
		logging.Int("skipped", summary.Counts.Skipped),
		logging.Int("failed", summary.Counts.Failed),
		logging.Duration("duration", summary.Duration),
	)
	return summary, ctx.Err()
}

func (o *Organizer) beginRun(ctx context.Context, trigger manifest.Trigger) (string, error) {
	if o.store == nil {
		return uuid.NewString(), nil
	}
	run, err := o.store.BeginRun(ctx, trigger, o.cfg.Paths.InputDir)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return run.ID, nil
}

func (o *Organizer) cleanup(ctx context.Context) []string {
	logger := logging.WithContext(ctx, o.logger)
	var removed []string
	for _, root := range []string{o.cfg.Paths.OrganizedDir, o.cfg.Paths.TxtDir} {
		dirs, err := fileutil.RemoveEmptyDirs(root)
		removed = append(removed, dirs...)
		if err != nil {
			logger.Warn("empty directory cleanup failed", logging.String("root", root), logging.Error(err))
		}
	}
	for _, dir := range removed {
		logger.Debug("removed empty directory", logging.String("path", dir))
	}
	return removed
}
