package manualdex

import "context"

// RemoteFile identifies a document that exists in the remote store.
type RemoteFile struct {
	ID   string
	Name string
}

// ManualSource provides access to the remote document store.
type ManualSource interface {
	// ListAll returns the remote store's current contents, paging through
	// the full listing. Container nodes (folders) and trashed items are
	// filtered out at the query level. Any remote error aborts the whole
	// listing; no partial snapshot is ever returned.
	ListAll(ctx context.Context) ([]RemoteFile, error)

	// Fetch downloads a document's raw bytes by ID.
	// Returns ENOTFOUND if the document does not exist.
	Fetch(ctx context.Context, id string) ([]byte, error)
}
