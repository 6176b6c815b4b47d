package mock

import (
	"context"

	"github.com/manualdex/manualdex"
)

var _ manualdex.ManualSource = (*ManualSource)(nil)

// ManualSource is a mock implementation of manualdex.ManualSource.
type ManualSource struct {
	ListAllFn func(ctx context.Context) ([]manualdex.RemoteFile, error)
	FetchFn   func(ctx context.Context, id string) ([]byte, error)
}

func (s *ManualSource) ListAll(ctx context.Context) ([]manualdex.RemoteFile, error) {
	return s.ListAllFn(ctx)
}

func (s *ManualSource) Fetch(ctx context.Context, id string) ([]byte, error) {
	return s.FetchFn(ctx, id)
}
