// Package fs provides file-based catalog storage.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manualdex/manualdex"
)

// Ensure CatalogService implements manualdex.CatalogService at compile time.
var _ manualdex.CatalogService = (*CatalogService)(nil)

// CatalogService persists the catalog as a single JSON file on local disk.
// Saves go through a temp file and rename, so a crash mid-write leaves the
// previous catalog intact.
type CatalogService struct {
	path string
}

// NewCatalogService creates a new CatalogService storing the catalog at path.
func NewCatalogService(path string) *CatalogService {
	return &CatalogService{path: path}
}

// Load reads and decodes the catalog file. A missing file returns an empty
// catalog.
func (s *CatalogService) Load(ctx context.Context) (manualdex.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return manualdex.Catalog{}, nil
	}
	if err != nil {
		return nil, err
	}

	var catalog manualdex.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", s.path, err)
	}
	if catalog == nil {
		catalog = manualdex.Catalog{}
	}
	return catalog, nil
}

// Save encodes the catalog and atomically replaces the catalog file.
func (s *CatalogService) Save(ctx context.Context, catalog manualdex.Catalog) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
