// Package drive provides Google Drive implementations of the manualdex
// remote store and catalog persistence interfaces.
package drive

import (
	"context"

	"golang.org/x/time/rate"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// MimeTypeFolder is the Drive MIME type of container nodes, excluded from
// every listing.
const MimeTypeFolder = "application/vnd.google-apps.folder"

// Conservative defaults, below Google's 10 requests/sec/user limit.
const (
	defaultRequestsPerSecond = 8.0
	defaultBurstSize         = 10
)

// NewService creates a Drive API service authenticated with a service
// account credentials file.
func NewService(ctx context.Context, credentialsPath string) (*drive.Service, error) {
	return drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
}

func newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultBurstSize)
}
