package drive

import (
	"context"
	"io"

	"github.com/manualdex/manualdex"
	"golang.org/x/time/rate"
	"google.golang.org/api/drive/v3"
)

// listQuery excludes container nodes and trashed items at the remote-query
// level so a listing only ever returns documents.
const listQuery = "mimeType != '" + MimeTypeFolder + "' and trashed = false"

// Ensure Source implements manualdex.ManualSource at compile time.
var _ manualdex.ManualSource = (*Source)(nil)

// Source implements manualdex.ManualSource using the Drive API.
type Source struct {
	svc      *drive.Service
	limiter  *rate.Limiter
	pageSize int64
}

// NewSource creates a new Source.
func NewSource(svc *drive.Service) *Source {
	return &Source{
		svc:      svc,
		limiter:  newLimiter(),
		pageSize: 1000,
	}
}

// ListAll pages through the full Drive listing and returns the current set
// of documents. Any page error aborts the whole listing; a partial snapshot
// would produce spurious deletions during reconciliation.
func (s *Source) ListAll(ctx context.Context) ([]manualdex.RemoteFile, error) {
	var files []manualdex.RemoteFile
	pageToken := ""

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.svc.Files.List().
			Q(listQuery).
			Fields("nextPageToken", "files(id, name)").
			PageSize(s.pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, WrapError(err)
		}

		for _, f := range page.Files {
			files = append(files, manualdex.RemoteFile{ID: f.Id, Name: f.Name})
		}

		if page.NextPageToken == "" {
			return files, nil
		}
		pageToken = page.NextPageToken
	}
}

// Fetch downloads a document's raw bytes by ID.
func (s *Source) Fetch(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, manualdex.Errorf(manualdex.EINVALID, "file ID required")
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, WrapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(err)
	}
	return data, nil
}
