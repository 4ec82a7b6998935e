package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeMapping(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		status  int
		message string
	}{
		{"expired maps to 404", ErrFileExpired, http.StatusNotFound, "This shared file has expired"},
		{"not shared maps to 404", ErrFileNotShared, http.StatusNotFound, "This file is not shared"},
		{"missing user id maps to 400", ErrMissingUserID, http.StatusBadRequest, "Missing user_id header"},
		{"missing fields maps to 400", ErrMissingFields, http.StatusBadRequest, "Missing required fields"},
		{"forbidden maps to 403", ErrShareForbidden, http.StatusForbidden, "You don't have permission to delete this file"},
		{"saved not found maps to 404", ErrSavedNotFound, http.StatusNotFound, "Saved file not found"},
		{"unknown code falls back to 500", 99999, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
			assert.Equal(t, tt.message, GetMessage(tt.code))
		})
	}
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")

	err := Wrap(cause, ErrInternalServer, "saving content")
	assert.Equal(t, ErrInternalServer, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())

	// wrapping an AppError keeps its code
	rewrapped := Wrap(err, ErrBadRequest)
	assert.Equal(t, ErrInternalServer, rewrapped.Code)

	assert.Nil(t, Wrap(nil, ErrInternalServer))
}

func TestExtractCode(t *testing.T) {
	assert.Equal(t, ErrFileExpired, ExtractCode(New(ErrFileExpired)))
	assert.Equal(t, ErrInternalServer, ExtractCode(errors.New("plain error")))
}

func TestIs(t *testing.T) {
	err := New(ErrShareNotFound, "share abc")
	assert.True(t, Is(err, ErrShareNotFound))
	assert.False(t, Is(err, ErrFileExpired))
	assert.False(t, Is(errors.New("plain"), ErrShareNotFound))
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "Invalid parameters: file too large", FormatError(ErrInvalidParams, "file too large"))
	assert.Equal(t, "Invalid JSON file", FormatError(ErrInvalidJSON))
	assert.True(t, IsClientError(ErrInvalidJSON))
	assert.True(t, IsServerError(ErrInternalServer))
	assert.True(t, IsSuccess(Success))
}
