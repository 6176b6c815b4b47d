package drive

import (
	"errors"
	"net/http"

	"github.com/manualdex/manualdex"
	"google.golang.org/api/googleapi"
)

// WrapError converts a Google API error into a coded application error.
// Errors that are not googleapi errors pass through unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
		return manualdex.Errorf(manualdex.EUNAUTHORIZED, "drive: %s", gerr.Message)
	case gerr.Code == http.StatusNotFound:
		return manualdex.Errorf(manualdex.ENOTFOUND, "drive: %s", gerr.Message)
	case gerr.Code == http.StatusTooManyRequests:
		return manualdex.Errorf(manualdex.ERATELIMIT, "drive: %s", gerr.Message)
	case gerr.Code >= 500:
		return manualdex.Errorf(manualdex.EUNAVAILABLE, "drive: %s", gerr.Message)
	default:
		return err
	}
}
