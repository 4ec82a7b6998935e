package biz

import (
	"context"
	"encoding/json"
	"time"
)

// Content is a stored JSON document referenced by one or more file records.
// The document itself is immutable; only the reference count changes.
type Content struct {
	ID       int64
	Data     json.RawMessage
	RefCount int64
}

// UserFile is a per-user file record pointing at a Content row
type UserFile struct {
	ID        int64
	FileName  string
	UserID    string
	ContentID int64
	ShareID   string
	IsShared  bool
	ExpiresAt int64 // epoch milliseconds, 0 means never expires
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the record is expired at the given instant (epoch millis)
func (f *UserFile) Expired(now int64) bool {
	return f.ExpiresAt != 0 && f.ExpiresAt < now
}

// SharedFile is a file record together with its resolved content
type SharedFile struct {
	File      *UserFile
	Content   json.RawMessage
	IsExpired bool
}

// ListFilesQuery describes a page of a user's file records.
// ExpiredOnly takes precedence over SharedOnly when both are set;
// SharedOnly excludes records that are expired at Now.
type ListFilesQuery struct {
	UserID      string
	Page        int
	PageSize    int
	ExpiredOnly bool
	SharedOnly  bool
	Now         int64 // epoch milliseconds used by expiry filters
}

// ContentRepo defines the repository interface for content storage
type ContentRepo interface {
	Create(ctx context.Context, content *Content) error
	GetByID(ctx context.Context, id int64) (*Content, error)
	Update(ctx context.Context, content *Content) error
	IncrementRefCount(ctx context.Context, id int64) error
	// DecrementRefCount decrements and returns the new count
	DecrementRefCount(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// FileRepo defines the repository interface for file records
type FileRepo interface {
	Create(ctx context.Context, file *UserFile) error
	Update(ctx context.Context, file *UserFile) error
	Delete(ctx context.Context, id int64, userID string) error
	GetByShareID(ctx context.Context, shareID string) (*UserFile, error)
	GetByIDAndUser(ctx context.Context, id int64, userID string) (*UserFile, error)
	List(ctx context.Context, query *ListFilesQuery) ([]*UserFile, int64, error)
	UpdateSharedStatus(ctx context.Context, shareID string, isShared bool) error
}

// TxManager runs a function inside a storage transaction. Repo calls made
// with the callback's context join the same transaction.
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
