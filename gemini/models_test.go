package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/manualdex/manualdex/gemini"
	"github.com/stretchr/testify/assert"
)

type fakeLister struct {
	names []string
	err   error
}

func (l *fakeLister) ListModelNames(context.Context) ([]string, error) {
	return l.names, l.err
}

func TestPickModel(t *testing.T) {
	t.Parallel()

	t.Run("picks the highest-priority available model", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{names: []string{
			"models/gemini-2.0-flash",
			"models/gemini-2.5-pro",
			"models/embedding-001",
		}}

		model := gemini.PickModel(context.Background(), lister, gemini.PreferredModels)
		assert.Equal(t, "gemini-2.5-pro", model)
	})

	t.Run("falls back to the default when nothing matches", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{names: []string{"models/embedding-001"}}

		model := gemini.PickModel(context.Background(), lister, gemini.PreferredModels)
		assert.Equal(t, gemini.DefaultModel, model)
	})

	t.Run("falls back to the default when listing fails", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{err: errors.New("network error")}

		model := gemini.PickModel(context.Background(), lister, gemini.PreferredModels)
		assert.Equal(t, gemini.DefaultModel, model)
	})
}
