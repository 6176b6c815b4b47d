// Package slog provides logging decorators for manualdex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/manualdex/manualdex"
)

// Ensure LoggingManualSource implements manualdex.ManualSource.
var _ manualdex.ManualSource = (*LoggingManualSource)(nil)

// LoggingManualSource wraps a ManualSource with debug logging.
type LoggingManualSource struct {
	next   manualdex.ManualSource
	logger *slog.Logger
}

// NewLoggingManualSource creates a new LoggingManualSource.
func NewLoggingManualSource(next manualdex.ManualSource, logger *slog.Logger) *LoggingManualSource {
	return &LoggingManualSource{next: next, logger: logger}
}

// ListAll delegates to the wrapped source and logs the operation.
func (s *LoggingManualSource) ListAll(ctx context.Context) (files []manualdex.RemoteFile, err error) {
	defer func(begin time.Time) {
		s.logger.Info("remote listing",
			"count", len(files),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListAll(ctx)
}

// Fetch delegates to the wrapped source and logs the operation.
func (s *LoggingManualSource) Fetch(ctx context.Context, id string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Info("manual fetch",
			"id", id,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, id)
}
