package drive_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/manualdex/manualdex"
	"github.com/manualdex/manualdex/drive"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"unauthorized", http.StatusUnauthorized, manualdex.EUNAUTHORIZED},
		{"forbidden", http.StatusForbidden, manualdex.EUNAUTHORIZED},
		{"not found", http.StatusNotFound, manualdex.ENOTFOUND},
		{"rate limited", http.StatusTooManyRequests, manualdex.ERATELIMIT},
		{"server error", http.StatusInternalServerError, manualdex.EUNAVAILABLE},
		{"service unavailable", http.StatusServiceUnavailable, manualdex.EUNAVAILABLE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := drive.WrapError(&googleapi.Error{Code: tt.code, Message: "boom"})
			assert.Equal(t, tt.want, manualdex.ErrorCode(err))
		})
	}

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, drive.WrapError(nil))
	})

	t.Run("foreign error passes through", func(t *testing.T) {
		err := errors.New("connection reset")
		assert.Equal(t, err, drive.WrapError(err))
	})

	t.Run("wrapped googleapi error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("listing files: %w", &googleapi.Error{Code: http.StatusTooManyRequests})
		assert.Equal(t, manualdex.ERATELIMIT, manualdex.ErrorCode(drive.WrapError(err)))
	})

	t.Run("unmapped status passes through", func(t *testing.T) {
		gerr := &googleapi.Error{Code: http.StatusConflict}
		assert.Equal(t, error(gerr), drive.WrapError(gerr))
	})
}
