package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/manualdex/manualdex"
	main "github.com/manualdex/manualdex/cmd/manualdex"
	"github.com/manualdex/manualdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints catalog entries in stable order", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.CatalogService{
			LoadFn: func(_ context.Context) (manualdex.Catalog, error) {
				return manualdex.Catalog{
					"b": {
						ID:          "b",
						DisplayName: "vaillant.pdf",
						Metadata:    manualdex.Metadata{Description: "raw model output"},
					},
					"a": {
						ID:          "a",
						DisplayName: "ariston.pdf",
						Metadata: manualdex.Metadata{
							Brand:   "Ariston",
							Model:   "Clas One",
							DocType: manualdex.DocTypeServiceManual,
						},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Catalog: catalog,
		}

		cmd := &main.ListCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Ariston Clas One [service_manual]")
		assert.Contains(t, output, "(unclassified)")
		assert.Less(t, bytes.Index(stdout.Bytes(), []byte("ariston.pdf")), bytes.Index(stdout.Bytes(), []byte("vaillant.pdf")))
	})

	t.Run("prints hint for empty catalog", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.CatalogService{
			LoadFn: func(_ context.Context) (manualdex.Catalog, error) {
				return manualdex.Catalog{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Catalog: catalog,
		}

		cmd := &main.ListCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Catalog is empty")
	})
}
