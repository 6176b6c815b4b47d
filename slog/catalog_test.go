package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/manualdex/manualdex"
	"github.com/manualdex/manualdex/mock"
	mdslog "github.com/manualdex/manualdex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCatalogService_Load(t *testing.T) {
	t.Parallel()

	t.Run("logs load with entry count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			LoadFn: func(ctx context.Context) (manualdex.Catalog, error) {
				return manualdex.Catalog{
					"a": {ID: "a", DisplayName: "a.pdf"},
				}, nil
			},
		}

		svc := mdslog.NewLoggingCatalogService(inner, logger)
		catalog, err := svc.Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, catalog, 1)
		output := buf.String()
		assert.Contains(t, output, "catalog load")
		assert.Contains(t, output, "entries=1")
		assert.Contains(t, output, "duration=")
	})
}

func TestLoggingCatalogService_Save(t *testing.T) {
	t.Parallel()

	t.Run("logs save error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			SaveFn: func(ctx context.Context, catalog manualdex.Catalog) error {
				return errors.New("disk full")
			},
		}

		svc := mdslog.NewLoggingCatalogService(inner, logger)
		err := svc.Save(context.Background(), manualdex.Catalog{})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "catalog save")
		assert.Contains(t, output, "err=\"disk full\"")
	})
}
