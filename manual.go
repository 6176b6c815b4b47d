package manualdex

import (
	"context"
	"sort"
	"time"
)

// DocType classifies a manual's document type.
type DocType string

// DocType values recognized by the classifier. Anything else normalizes to
// DocTypeUnknown.
const (
	DocTypeServiceManual DocType = "service_manual"
	DocTypeUserManual    DocType = "user_manual"
	DocTypeSpareParts    DocType = "spare_parts"
	DocTypeUnknown       DocType = "unknown"
)

// Metadata holds the attributes extracted from a manual's content.
//
// When structured extraction succeeds, Brand/Model/DocType/DeviceCategory
// are populated and Description is empty. When the extraction response could
// not be parsed, Description carries the raw response text instead, so the
// work is never discarded.
type Metadata struct {
	Brand          string  `json:"brand,omitempty"`
	Model          string  `json:"model,omitempty"`
	DocType        DocType `json:"docType,omitempty"`
	DeviceCategory string  `json:"deviceCategory,omitempty"`
	Description    string  `json:"description,omitempty"`
}

// Structured reports whether the metadata came from a successful structured
// extraction rather than the free-text fallback.
func (m Metadata) Structured() bool {
	return m.Description == ""
}

// Manual represents a single catalog entry: a remotely stored technical
// manual and the metadata extracted from its content.
type Manual struct {
	// Opaque, stable identity assigned by the remote store.
	ID string `json:"id"`

	// Human-readable name at the time the manual was last seen remotely.
	// Not guaranteed unique.
	DisplayName string `json:"displayName"`

	Metadata Metadata `json:"metadata"`

	// Hash of the manual's raw bytes at classification time.
	ContentHash string `json:"contentHash,omitempty"`

	IndexedAt time.Time `json:"indexedAt"`
}

// Validate returns an error if the manual contains invalid fields.
func (m *Manual) Validate() error {
	if m.ID == "" {
		return Errorf(EINVALID, "manual ID required")
	}
	if m.DisplayName == "" {
		return Errorf(EINVALID, "manual display name required")
	}
	return nil
}

// Catalog is the persisted mapping from manual identity to catalog entry.
// Keys are unique; insertion order is irrelevant.
type Catalog map[string]*Manual

// SortedIDs returns the catalog's keys in ascending order. Used wherever a
// stable iteration order matters (matching, listing).
func (c Catalog) SortedIDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CatalogService loads and persists the catalog as a single blob.
type CatalogService interface {
	// Load returns the persisted catalog. A missing blob is not an error:
	// it returns an empty catalog.
	Load(ctx context.Context) (Catalog, error)

	// Save persists the whole catalog, replacing any previous blob. The
	// write is a complete replacement so a concurrent reader never
	// observes a half-written catalog.
	Save(ctx context.Context, catalog Catalog) error
}
