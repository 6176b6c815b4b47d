package mock

import (
	"context"

	"github.com/manualdex/manualdex"
)

var _ manualdex.Generator = (*Generator)(nil)

// Generator is a mock implementation of manualdex.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, req manualdex.GenerateRequest) (string, error)
}

func (g *Generator) Generate(ctx context.Context, req manualdex.GenerateRequest) (string, error) {
	return g.GenerateFn(ctx, req)
}
