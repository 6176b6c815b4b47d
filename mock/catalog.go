package mock

import (
	"context"

	"github.com/manualdex/manualdex"
)

var _ manualdex.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of manualdex.CatalogService.
type CatalogService struct {
	LoadFn func(ctx context.Context) (manualdex.Catalog, error)
	SaveFn func(ctx context.Context, catalog manualdex.Catalog) error
}

func (s *CatalogService) Load(ctx context.Context) (manualdex.Catalog, error) {
	return s.LoadFn(ctx)
}

func (s *CatalogService) Save(ctx context.Context, catalog manualdex.Catalog) error {
	return s.SaveFn(ctx, catalog)
}
