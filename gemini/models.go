package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// PreferredModels is the default model priority list, best first.
var PreferredModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.0-flash",
}

// modelLister abstracts the model listing call for tests.
type modelLister interface {
	ListModelNames(ctx context.Context) ([]string, error)
}

// ClientModelLister lists available model names from the Gemini API.
type ClientModelLister struct {
	client *genai.Client
}

// NewClientModelLister creates a new ClientModelLister.
func NewClientModelLister(client *genai.Client) *ClientModelLister {
	return &ClientModelLister{client: client}
}

// ListModelNames returns the names of all models the API reports.
func (l *ClientModelLister) ListModelNames(ctx context.Context) ([]string, error) {
	var names []string
	for model, err := range l.client.Models.All(ctx) {
		if err != nil {
			return nil, err
		}
		names = append(names, model.Name)
	}
	return names, nil
}

// PickModel returns the first preferred model the service reports as
// available, falling back to DefaultModel when listing fails or nothing
// on the priority list is available.
func PickModel(ctx context.Context, lister modelLister, preferred []string) string {
	names, err := lister.ListModelNames(ctx)
	if err != nil {
		return DefaultModel
	}
	return pickPreferred(names, preferred, DefaultModel)
}

func pickPreferred(available []string, preferred []string, fallback string) string {
	names := make(map[string]struct{}, len(available))
	for _, n := range available {
		// The API reports names as "models/gemini-2.5-flash".
		names[strings.TrimPrefix(n, "models/")] = struct{}{}
	}
	for _, want := range preferred {
		if _, ok := names[want]; ok {
			return want
		}
	}
	return fallback
}
