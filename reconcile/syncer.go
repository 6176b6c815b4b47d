package reconcile

import (
	"context"
	"log/slog"

	"github.com/manualdex/manualdex"
)

// Progress reports progress during a sync pass.
type Progress struct {
	Name      string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is called as additions are processed.
type ProgressFunc func(Progress)

// Report summarizes one sync pass.
type Report struct {
	// Total is the number of files currently in the remote store.
	Total int

	// Added counts successfully classified new entries.
	Added int

	// Removed counts entries deleted because they vanished remotely.
	Removed int

	// Renamed counts entries whose display name was refreshed.
	Renamed int

	// Skipped counts new files whose classification failed this pass.
	// They remain unindexed and are retried on the next pass.
	Skipped int
}

// Syncer reconciles the catalog with the remote store.
type Syncer struct {
	Source     manualdex.ManualSource
	Catalog    manualdex.CatalogService
	Classifier manualdex.Classifier

	// Limit caps the number of classifications per pass. Zero means no
	// cap. A bound keeps quota pressure predictable on large backlogs.
	Limit int

	// Logger is optional; nil discards logs.
	Logger *slog.Logger

	// Progress is optional.
	Progress ProgressFunc
}

// Sync runs one reconciliation pass: list the remote store, diff against
// the catalog, process deletions, then classify new files one at a time,
// persisting the catalog after every unit of work.
//
// Deletions are processed before additions: they are cheap (no external
// calls) and shrink the working set first. A classification failure skips
// that file and continues; the file stays unindexed and is retried on the
// next pass. A persistence failure aborts the pass without losing the
// in-memory catalog state already applied.
func (s *Syncer) Sync(ctx context.Context) (*Report, error) {
	logger := s.logger()

	remote, err := s.Source.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := s.Catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	delta := Diff(remote, catalog)
	report := &Report{Total: len(remote)}

	if len(delta.Removed) > 0 {
		for _, id := range delta.Removed {
			delete(catalog, id)
		}
		if err := s.Catalog.Save(ctx, catalog); err != nil {
			return report, err
		}
		report.Removed = len(delta.Removed)
		logger.Info("removed vanished manuals", "count", report.Removed)
	}

	if renamed := refreshNames(remote, catalog); renamed > 0 {
		if err := s.Catalog.Save(ctx, catalog); err != nil {
			return report, err
		}
		report.Renamed = renamed
		logger.Info("refreshed drifted display names", "count", renamed)
	}

	added := delta.Added
	if s.Limit > 0 && len(added) > s.Limit {
		added = added[:s.Limit]
	}

	for i, f := range added {
		// Cooperative checkpoint between units of work.
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		m, err := s.Classifier.Classify(ctx, f.ID, f.Name)
		if err != nil {
			report.Skipped++
			logger.Warn("classification skipped", "name", f.Name, "err", err)
			s.progress(Progress{Name: f.Name, Completed: i + 1, Total: len(added), Err: err})
			continue
		}

		catalog[m.ID] = m
		if err := s.Catalog.Save(ctx, catalog); err != nil {
			return report, err
		}
		report.Added++
		logger.Info("classified manual", "name", f.Name, "brand", m.Metadata.Brand, "model", m.Metadata.Model)
		s.progress(Progress{Name: f.Name, Completed: i + 1, Total: len(added)})
	}

	return report, nil
}

// refreshNames updates display names that drifted remotely without the ID
// changing. A rename does not invalidate the entry's classification.
func refreshNames(remote []manualdex.RemoteFile, catalog manualdex.Catalog) int {
	var renamed int
	for _, f := range remote {
		if m, ok := catalog[f.ID]; ok && m.DisplayName != f.Name {
			m.DisplayName = f.Name
			renamed++
		}
	}
	return renamed
}

func (s *Syncer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (s *Syncer) progress(p Progress) {
	if s.Progress != nil {
		s.Progress(p)
	}
}
