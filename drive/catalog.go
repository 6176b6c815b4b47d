package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/manualdex/manualdex"
	"golang.org/x/time/rate"
	"google.golang.org/api/drive/v3"
)

// CatalogFileName is the fixed name of the catalog blob on Drive. The
// version suffix allows a clean rebuild if the format ever changes.
const CatalogFileName = "manualdex_catalog_v1.json"

// Ensure CatalogService implements manualdex.CatalogService at compile time.
var _ manualdex.CatalogService = (*CatalogService)(nil)

// CatalogService persists the catalog as a single JSON blob on Drive,
// alongside the manuals it indexes. Every save is a full media replacement,
// so a concurrent reader sees either the old blob or the new one.
type CatalogService struct {
	svc     *drive.Service
	limiter *rate.Limiter
	name    string

	// fileID caches the blob's Drive ID after the first lookup.
	fileID string
}

// NewCatalogService creates a new CatalogService using CatalogFileName.
func NewCatalogService(svc *drive.Service) *CatalogService {
	return &CatalogService{
		svc:     svc,
		limiter: newLimiter(),
		name:    CatalogFileName,
	}
}

// Load downloads and decodes the catalog blob. A missing blob returns an
// empty catalog.
func (s *CatalogService) Load(ctx context.Context) (manualdex.Catalog, error) {
	id, err := s.findBlob(ctx)
	if manualdex.ErrorCode(err) == manualdex.ENOTFOUND {
		return manualdex.Catalog{}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := s.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, WrapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(err)
	}

	var catalog manualdex.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog blob %q: %w", s.name, err)
	}
	if catalog == nil {
		catalog = manualdex.Catalog{}
	}
	return catalog, nil
}

// Save encodes the catalog and replaces the blob's media in full, creating
// the blob on first save.
func (s *CatalogService) Save(ctx context.Context, catalog manualdex.Catalog) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}

	id, err := s.findBlob(ctx)
	if manualdex.ErrorCode(err) == manualdex.ENOTFOUND {
		return s.create(ctx, data)
	}
	if err != nil {
		return err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err = s.svc.Files.Update(id, &drive.File{}).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do()
	return WrapError(err)
}

func (s *CatalogService) create(ctx context.Context, data []byte) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	created, err := s.svc.Files.Create(&drive.File{
		Name:     s.name,
		MimeType: "application/json",
	}).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do()
	if err != nil {
		return WrapError(err)
	}
	s.fileID = created.Id
	return nil
}

// findBlob locates the catalog blob by name. Returns ENOTFOUND when no
// prior blob exists.
func (s *CatalogService) findBlob(ctx context.Context) (string, error) {
	if s.fileID != "" {
		return s.fileID, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	list, err := s.svc.Files.List().
		Q(fmt.Sprintf("name = '%s' and trashed = false", s.name)).
		Fields("files(id)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", WrapError(err)
	}
	if len(list.Files) == 0 {
		return "", manualdex.Errorf(manualdex.ENOTFOUND, "catalog blob %q not found", s.name)
	}

	s.fileID = list.Files[0].Id
	return s.fileID, nil
}
