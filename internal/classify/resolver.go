package classify

import (
	"log/slog"

	"cellsort/internal/logging"
)

// Resolver composes the individual classifiers into one FileMetadata per
// file. It holds no per-file state and is safe to reuse.
type Resolver struct {
	fallbacks Fallbacks
	logger    *slog.Logger
}

// NewResolver builds a resolver. Blank fallback fields take the repository
// defaults; a nil logger discards output.
func NewResolver(fallbacks Fallbacks, logger *slog.Logger) *Resolver {
	return &Resolver{
		fallbacks: fallbacks.withDefaults(),
		logger:    logging.NewComponentLogger(logger, "classify"),
	}
}

// Fallbacks returns the defaults the resolver substitutes.
func (r *Resolver) Fallbacks() Fallbacks {
	return r.fallbacks
}

// Resolve classifies one file.
func (r *Resolver) Resolve(s Subject) FileMetadata {
	name := s.Stem()
	meta := FileMetadata{
		CellID:             r.fallbacks.CellID,
		TestName:           TestUnknown,
		Variable:           ClassifyVariable(s.Content, s.Readable),
		TestSpec:           r.fallbacks.TestSpec,
		OperatingCondition: r.fallbacks.OperatingCondition,
		Date:               r.fallbacks.Date,
	}

	if date := ExtractDate(s); date != "" {
		meta.Date = date
	}

	cellID, source := ResolveCellID(name, s.Folder, r.fallbacks.CellID)
	meta.CellID = cellID
	r.logger.Info("cell id resolved",
		logging.String("file", s.Filename),
		logging.String("cell_id", cellID),
		logging.String("source", string(source)),
	)

	meta.TestName = ClassifyTestName(s.Folder, name)
	meta.Variable = RefineVariable(meta.Variable, name)
	r.logger.Info("test name and variable resolved",
		logging.String("file", s.Filename),
		logging.String("test_name", string(meta.TestName)),
		logging.String("variable", string(meta.Variable)),
	)

	meta.TestSpec = BuildTestSpec(name, r.fallbacks.TestSpec)
	meta.OperatingCondition = ClassifyOperatingCondition(name, meta.Variable, r.fallbacks.OperatingCondition)
	r.logger.Debug("classification complete",
		logging.String("file", s.Filename),
		logging.String("canonical", meta.Stem()),
	)
	return meta
}

// Resolve classifies one file with a throwaway resolver.
func Resolve(s Subject, fallbacks Fallbacks, logger *slog.Logger) FileMetadata {
	return NewResolver(fallbacks, logger).Resolve(s)
}
