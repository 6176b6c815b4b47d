package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/manualdex/manualdex"
)

// Ensure LoggingCatalogService implements manualdex.CatalogService.
var _ manualdex.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with debug logging.
type LoggingCatalogService struct {
	next   manualdex.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next manualdex.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// Load delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) Load(ctx context.Context) (catalog manualdex.Catalog, err error) {
	defer func(begin time.Time) {
		s.logger.Info("catalog load",
			"entries", len(catalog),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) Save(ctx context.Context, catalog manualdex.Catalog) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("catalog save",
			"entries", len(catalog),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, catalog)
}
