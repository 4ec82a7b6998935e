package biz

import "errors"

var (
	// ErrShareNotFound indicates no file record matches the share ID
	ErrShareNotFound = errors.New("shared file not found")

	// ErrFileExpired indicates the shared file's expiry is in the past
	ErrFileExpired = errors.New("shared file has expired")

	// ErrFileNotShared indicates the file record exists but sharing is off
	ErrFileNotShared = errors.New("file is not shared")

	// ErrForbidden indicates the caller does not own the record
	ErrForbidden = errors.New("no permission to operate on this file")

	// ErrContentNotFound indicates the referenced content row is missing
	ErrContentNotFound = errors.New("file content not found")

	// ErrSavedNotFound indicates no saved record matches the ID for this user
	ErrSavedNotFound = errors.New("saved file not found")
)
