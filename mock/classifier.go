package mock

import (
	"context"

	"github.com/manualdex/manualdex"
)

var _ manualdex.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of manualdex.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, id, displayName string) (*manualdex.Manual, error)
}

func (c *Classifier) Classify(ctx context.Context, id, displayName string) (*manualdex.Manual, error) {
	return c.ClassifyFn(ctx, id, displayName)
}
