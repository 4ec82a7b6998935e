package biz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

const dayMillis = 24 * 60 * 60 * 1000

// ShareUseCase contains business logic for creating and resolving shares
type ShareUseCase struct {
	files    FileRepo
	contents ContentRepo
	tx       TxManager
	log      *logger.Logger
	now      func() time.Time
}

// NewShareUseCase creates a new share use case
func NewShareUseCase(files FileRepo, contents ContentRepo, tx TxManager, log *logger.Logger) *ShareUseCase {
	return &ShareUseCase{
		files:    files,
		contents: contents,
		tx:       tx,
		log:      log,
		now:      time.Now,
	}
}

// CreateShareRequest carries the inputs for creating a shared file
type CreateShareRequest struct {
	UserID         string
	FileName       string
	Content        json.RawMessage
	ExpirationDays int
}

// CreateSharedFile stores the content and a shared file record for it,
// returning the new share ID. ExpirationDays <= 0 means the share never
// expires. Both inserts run in one transaction.
func (uc *ShareUseCase) CreateSharedFile(ctx context.Context, req *CreateShareRequest) (string, error) {
	uc.log.WithContext(ctx).Info("creating shared file",
		zap.String("user_id", req.UserID),
		zap.String("file_name", req.FileName),
		zap.Int("expiration_days", req.ExpirationDays),
	)

	shareID := uuid.New().String()

	var expiresAt int64
	if req.ExpirationDays > 0 {
		expiresAt = uc.now().UnixMilli() + int64(req.ExpirationDays)*dayMillis
	}

	err := uc.tx.Transaction(ctx, func(ctx context.Context) error {
		content := &Content{
			Data:     req.Content,
			RefCount: 1,
		}
		if err := uc.contents.Create(ctx, content); err != nil {
			return fmt.Errorf("failed to store content: %w", err)
		}

		now := uc.now()
		file := &UserFile{
			FileName:  req.FileName,
			UserID:    req.UserID,
			ContentID: content.ID,
			ShareID:   shareID,
			IsShared:  true,
			ExpiresAt: expiresAt,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.files.Create(ctx, file); err != nil {
			return fmt.Errorf("failed to create file record: %w", err)
		}

		return nil
	})
	if err != nil {
		uc.log.WithContext(ctx).Error("failed to create shared file", zap.Error(err))
		return "", err
	}

	return shareID, nil
}

// GetSharedFile resolves a share ID to its file record and content.
// The expiry check runs before the shared-flag check: an expired and
// unshared file reports ErrFileExpired.
func (uc *ShareUseCase) GetSharedFile(ctx context.Context, shareID string) (*SharedFile, error) {
	file, err := uc.files.GetByShareID(ctx, shareID)
	if err != nil {
		return nil, err
	}

	if file.Expired(uc.now().UnixMilli()) {
		return nil, ErrFileExpired
	}

	if !file.IsShared {
		return nil, ErrFileNotShared
	}

	content, err := uc.contents.GetByID(ctx, file.ContentID)
	if err != nil {
		uc.log.WithContext(ctx).Error("share points at missing content",
			zap.String("share_id", shareID),
			zap.Int64("content_id", file.ContentID),
			zap.Error(err),
		)
		return nil, err
	}

	return &SharedFile{
		File:      file,
		Content:   content.Data,
		IsExpired: false,
	}, nil
}

// DeleteSharedFile unshares a file by its share ID. The record row persists
// with is_shared off; the content reference is untouched since the record
// still points at it. When userID is non-empty it must match the owner.
func (uc *ShareUseCase) DeleteSharedFile(ctx context.Context, shareID, userID string) error {
	file, err := uc.files.GetByShareID(ctx, shareID)
	if err != nil {
		return err
	}

	if userID != "" && file.UserID != userID {
		uc.log.WithContext(ctx).Warn("delete share denied",
			zap.String("share_id", shareID),
			zap.String("user_id", userID),
		)
		return ErrForbidden
	}

	return uc.tx.Transaction(ctx, func(ctx context.Context) error {
		return uc.files.UpdateSharedStatus(ctx, shareID, false)
	})
}

// IsExpired reports whether the share is expired. An unknown share ID
// reports false rather than an error.
func (uc *ShareUseCase) IsExpired(ctx context.Context, shareID string) (bool, error) {
	file, err := uc.files.GetByShareID(ctx, shareID)
	if err != nil {
		if err == ErrShareNotFound {
			return false, nil
		}
		return false, err
	}

	return file.Expired(uc.now().UnixMilli()), nil
}

// ListUserFiles returns one page of the user's file records, newest
// updated first, with the total count
func (uc *ShareUseCase) ListUserFiles(ctx context.Context, query *ListFilesQuery) ([]*UserFile, int64, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	query.Now = uc.now().UnixMilli()

	files, total, err := uc.files.List(ctx, query)
	if err != nil {
		uc.log.WithContext(ctx).Error("failed to list user files",
			zap.String("user_id", query.UserID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	return files, total, nil
}
