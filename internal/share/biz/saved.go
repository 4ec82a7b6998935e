package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// SavedUseCase contains business logic for a user's saved file records
type SavedUseCase struct {
	share    *ShareUseCase
	files    FileRepo
	contents ContentRepo
	tx       TxManager
	log      *logger.Logger
	now      func() time.Time
}

// NewSavedUseCase creates a new saved-files use case
func NewSavedUseCase(share *ShareUseCase, files FileRepo, contents ContentRepo, tx TxManager, log *logger.Logger) *SavedUseCase {
	return &SavedUseCase{
		share:    share,
		files:    files,
		contents: contents,
		tx:       tx,
		log:      log,
		now:      time.Now,
	}
}

// SaveFile copies someone else's shared file into the caller's own records:
// a new record with a fresh share ID, unshared, no expiry, pointing at the
// same content row. The content's reference count goes up by one. Resolution
// failures (not found, expired, not shared) propagate unchanged.
func (uc *SavedUseCase) SaveFile(ctx context.Context, shareID, userID, fileName string) (int64, error) {
	uc.log.WithContext(ctx).Info("saving shared file",
		zap.String("share_id", shareID),
		zap.String("user_id", userID),
	)

	source, err := uc.share.GetSharedFile(ctx, shareID)
	if err != nil {
		return 0, err
	}

	if fileName == "" {
		fileName = source.File.FileName
	}

	now := uc.now()
	file := &UserFile{
		FileName:  fileName,
		UserID:    userID,
		ContentID: source.File.ContentID,
		ShareID:   uuid.New().String(),
		IsShared:  false,
		ExpiresAt: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.contents.IncrementRefCount(ctx, source.File.ContentID); err != nil {
			return fmt.Errorf("failed to increment ref count: %w", err)
		}
		if err := uc.files.Create(ctx, file); err != nil {
			return fmt.Errorf("failed to create saved record: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.log.WithContext(ctx).Error("failed to save shared file",
			zap.String("share_id", shareID),
			zap.Error(err),
		)
		return 0, err
	}

	return file.ID, nil
}

// GetSavedFiles returns one page of the user's records with the total count
func (uc *SavedUseCase) GetSavedFiles(ctx context.Context, query *ListFilesQuery) ([]*UserFile, int64, error) {
	return uc.share.ListUserFiles(ctx, query)
}

// GetSavedFile returns one of the user's records with its content. Unlike
// share resolution there is no expiry or shared-flag gate here; the owner
// can always read their own record.
func (uc *SavedUseCase) GetSavedFile(ctx context.Context, id int64, userID string) (*SharedFile, error) {
	file, err := uc.files.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	content, err := uc.contents.GetByID(ctx, file.ContentID)
	if err != nil {
		return nil, err
	}

	return &SharedFile{
		File:      file,
		Content:   content.Data,
		IsExpired: file.Expired(uc.now().UnixMilli()),
	}, nil
}

// UpdateSavedFileRequest carries the mutable fields of a saved record.
// Nil fields are left unchanged. ExpirationDays > 0 recomputes the expiry
// from now; 0 or nil keeps the existing expiry.
type UpdateSavedFileRequest struct {
	FileName       *string
	IsShared       *bool
	ExpirationDays *int
}

// UpdateSavedFile applies a partial update to one of the user's records
func (uc *SavedUseCase) UpdateSavedFile(ctx context.Context, id int64, userID string, req *UpdateSavedFileRequest) error {
	file, err := uc.files.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.FileName != nil && *req.FileName != "" {
		file.FileName = *req.FileName
	}
	if req.IsShared != nil {
		file.IsShared = *req.IsShared
	}
	if req.ExpirationDays != nil && *req.ExpirationDays > 0 {
		file.ExpiresAt = uc.now().UnixMilli() + int64(*req.ExpirationDays)*dayMillis
	}
	file.UpdatedAt = uc.now()

	if err := uc.files.Update(ctx, file); err != nil {
		uc.log.WithContext(ctx).Error("failed to update saved file",
			zap.Int64("id", id),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// RemoveSavedFile hard-deletes one of the user's records and drops its
// content reference, reclaiming the content row when the count reaches
// zero. Delete and decrement run in one transaction.
func (uc *SavedUseCase) RemoveSavedFile(ctx context.Context, id int64, userID string) error {
	file, err := uc.files.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return err
	}

	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.files.Delete(ctx, id, userID); err != nil {
			return err
		}

		remaining, err := uc.contents.DecrementRefCount(ctx, file.ContentID)
		if err != nil {
			return fmt.Errorf("failed to decrement ref count: %w", err)
		}

		if remaining <= 0 {
			if err := uc.contents.Delete(ctx, file.ContentID); err != nil {
				return fmt.Errorf("failed to reclaim content: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		uc.log.WithContext(ctx).Error("failed to remove saved file",
			zap.Int64("id", id),
			zap.Error(err),
		)
		return err
	}

	return nil
}
