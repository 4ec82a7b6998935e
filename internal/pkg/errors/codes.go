package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrNotFound        = 1002
	ErrUnauthorized    = 1003
	ErrForbidden       = 1004
	ErrConflict        = 1005
	ErrTooManyRequests = 1006
	ErrBadRequest      = 1007
	ErrServiceUnavail  = 1008
	ErrValidation      = 1009

	// Share errors (2000-2999)
	ErrShareNotFound   = 2000
	ErrFileExpired     = 2001
	ErrFileNotShared   = 2002
	ErrInvalidJSON     = 2003
	ErrMissingUserID   = 2004
	ErrMissingFields   = 2005
	ErrContentNotFound = 2006
	ErrShareForbidden  = 2007

	// Saved errors (3000-3999)
	ErrSavedNotFound = 3000
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrUnauthorized:    {ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	ErrForbidden:       {ErrForbidden, http.StatusForbidden, "Forbidden"},
	ErrConflict:        {ErrConflict, http.StatusConflict, "Resource conflict"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},
	ErrServiceUnavail:  {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},
	ErrValidation:      {ErrValidation, http.StatusUnprocessableEntity, "Validation error"},

	// Share errors
	ErrShareNotFound:   {ErrShareNotFound, http.StatusNotFound, "Shared file not found"},
	ErrFileExpired:     {ErrFileExpired, http.StatusNotFound, "This shared file has expired"},
	ErrFileNotShared:   {ErrFileNotShared, http.StatusNotFound, "This file is not shared"},
	ErrInvalidJSON:     {ErrInvalidJSON, http.StatusBadRequest, "Invalid JSON file"},
	ErrMissingUserID:   {ErrMissingUserID, http.StatusBadRequest, "Missing user_id header"},
	ErrMissingFields:   {ErrMissingFields, http.StatusBadRequest, "Missing required fields"},
	ErrContentNotFound: {ErrContentNotFound, http.StatusNotFound, "File content not found"},
	ErrShareForbidden:  {ErrShareForbidden, http.StatusForbidden, "You don't have permission to delete this file"},

	// Saved errors
	ErrSavedNotFound: {ErrSavedNotFound, http.StatusNotFound, "Saved file not found"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsSuccess checks if the code represents success
func IsSuccess(code int) bool {
	return code == Success
}

// IsClientError checks if the code represents a client error (4xx)
func IsClientError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}

// IsServerError checks if the code represents a server error (5xx)
func IsServerError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 500
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
