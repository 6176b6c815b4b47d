package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/manualdex/manualdex"
	"github.com/manualdex/manualdex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_LoadMissingFile(t *testing.T) {
	svc := fs.NewCatalogService(filepath.Join(t.TempDir(), "catalog.json"))

	catalog, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog)
	assert.NotNil(t, catalog)
}

func TestCatalogService_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	svc := fs.NewCatalogService(path)
	ctx := context.Background()

	want := manualdex.Catalog{
		"file-1": {
			ID:          "file-1",
			DisplayName: "ariston_clas_one.pdf",
			Metadata: manualdex.Metadata{
				Brand:       "Ariston",
				Model:       "Clas One",
				DocType:     manualdex.DocTypeServiceManual,
				Description: "Condensing boiler service documentation.",
			},
			ContentHash: "abc123",
			IndexedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		"file-2": {
			ID:          "file-2",
			DisplayName: "vaillant_user.pdf",
			Metadata:    manualdex.Metadata{Description: "unclassified"},
			ContentHash: "def456",
			IndexedAt:   time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
		},
	}

	require.NoError(t, svc.Save(ctx, want))

	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCatalogService_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	svc := fs.NewCatalogService(path)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, manualdex.Catalog{
		"old": {ID: "old", DisplayName: "old.pdf"},
	}))
	require.NoError(t, svc.Save(ctx, manualdex.Catalog{
		"new": {ID: "new", DisplayName: "new.pdf"},
	}))

	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, "new")
}

func TestCatalogService_SaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "catalog.json")
	svc := fs.NewCatalogService(path)

	require.NoError(t, svc.Save(context.Background(), manualdex.Catalog{}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestCatalogService_LoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := fs.NewCatalogService(path).Load(context.Background())
	assert.Error(t, err)
}
