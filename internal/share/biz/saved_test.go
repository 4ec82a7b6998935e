package biz

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavedEnv(t *testing.T) (*SavedUseCase, *ShareUseCase, *fakeFileRepo, *fakeContentRepo) {
	t.Helper()

	log, err := logger.New(nil)
	require.NoError(t, err)

	files := newFakeFileRepo()
	contents := newFakeContentRepo()
	tx := &fakeTxManager{}
	share := NewShareUseCase(files, contents, tx, log)
	saved := NewSavedUseCase(share, files, contents, tx, log)

	return saved, share, files, contents
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func TestSaveFileTwiceSharesContent(t *testing.T) {
	saved, share, files, contents := newSavedEnv(t)
	ctx := context.Background()

	shareID, err := share.CreateSharedFile(ctx, &CreateShareRequest{
		UserID:   "author",
		FileName: "shared.json",
		Content:  json.RawMessage(`{"v":42}`),
	})
	require.NoError(t, err)

	id1, err := saved.SaveFile(ctx, shareID, "reader", "copy one")
	require.NoError(t, err)
	id2, err := saved.SaveFile(ctx, shareID, "reader", "copy two")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	f1, err := files.GetByIDAndUser(ctx, id1, "reader")
	require.NoError(t, err)
	f2, err := files.GetByIDAndUser(ctx, id2, "reader")
	require.NoError(t, err)

	// distinct share IDs, same content row, unshared, no expiry
	assert.NotEqual(t, f1.ShareID, f2.ShareID)
	assert.NotEqual(t, shareID, f1.ShareID)
	assert.Equal(t, f1.ContentID, f2.ContentID)
	assert.False(t, f1.IsShared)
	assert.False(t, f2.IsShared)
	assert.Equal(t, int64(0), f1.ExpiresAt)

	// original reference plus two saves
	c, err := contents.GetByID(ctx, f1.ContentID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.RefCount)
}

func TestSaveFileDefaultsToSourceName(t *testing.T) {
	saved, share, files, _ := newSavedEnv(t)
	ctx := context.Background()

	shareID, err := share.CreateSharedFile(ctx, &CreateShareRequest{
		UserID:   "author",
		FileName: "original.json",
		Content:  json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	id, err := saved.SaveFile(ctx, shareID, "reader", "")
	require.NoError(t, err)

	f, err := files.GetByIDAndUser(ctx, id, "reader")
	require.NoError(t, err)
	assert.Equal(t, "original.json", f.FileName)
}

func TestSaveFilePropagatesResolutionErrors(t *testing.T) {
	saved, share, _, _ := newSavedEnv(t)
	ctx := context.Background()

	_, err := saved.SaveFile(ctx, "missing", "reader", "")
	assert.ErrorIs(t, err, ErrShareNotFound)

	base := time.Now()
	share.now = func() time.Time { return base }

	shareID, err := share.CreateSharedFile(ctx, &CreateShareRequest{
		UserID:         "author",
		FileName:       "short-lived.json",
		Content:        json.RawMessage(`{}`),
		ExpirationDays: 1,
	})
	require.NoError(t, err)

	share.now = func() time.Time { return base.Add(48 * time.Hour) }

	_, err = saved.SaveFile(ctx, shareID, "reader", "")
	assert.ErrorIs(t, err, ErrFileExpired)
}

func TestRemoveSavedFileReclaimsContentAtZero(t *testing.T) {
	saved, share, files, contents := newSavedEnv(t)
	ctx := context.Background()

	shareID, err := share.CreateSharedFile(ctx, &CreateShareRequest{
		UserID:   "author",
		FileName: "shared.json",
		Content:  json.RawMessage(`{"v":1}`),
	})
	require.NoError(t, err)

	savedID, err := saved.SaveFile(ctx, shareID, "reader", "")
	require.NoError(t, err)

	f, err := files.GetByIDAndUser(ctx, savedID, "reader")
	require.NoError(t, err)
	contentID := f.ContentID

	// two references: author's record and the saved copy
	require.NoError(t, saved.RemoveSavedFile(ctx, savedID, "reader"))

	c, err := contents.GetByID(ctx, contentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.RefCount)

	// drop the author's record too: content row is reclaimed
	authorFile, err := files.GetByShareID(ctx, shareID)
	require.NoError(t, err)
	require.NoError(t, saved.RemoveSavedFile(ctx, authorFile.ID, "author"))

	_, err = contents.GetByID(ctx, contentID)
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestRemoveSavedFileNotOwned(t *testing.T) {
	saved, share, files, _ := newSavedEnv(t)
	ctx := context.Background()

	shareID, err := share.CreateSharedFile(ctx, &CreateShareRequest{
		UserID:   "author",
		FileName: "mine.json",
		Content:  json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	authorFile, err := files.GetByShareID(ctx, shareID)
	require.NoError(t, err)

	err = saved.RemoveSavedFile(ctx, authorFile.ID, "intruder")
	assert.ErrorIs(t, err, ErrSavedNotFound)

	// record still present
	_, err = files.GetByIDAndUser(ctx, authorFile.ID, "author")
	assert.NoError(t, err)
}

func TestUpdateSavedFilePartialUpdate(t *testing.T) {
	saved, share, files, _ := newSavedEnv(t)
	ctx := context.Background()

	base := time.Now()
	saved.now = func() time.Time { return base }

	shareID, err := share.CreateSharedFile(ctx, &CreateShareRequest{
		UserID:   "owner",
		FileName: "before.json",
		Content:  json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	f, err := files.GetByShareID(ctx, shareID)
	require.NoError(t, err)

	// rename only: share flag and expiry untouched
	err = saved.UpdateSavedFile(ctx, f.ID, "owner", &UpdateSavedFileRequest{
		FileName: strPtr("after.json"),
	})
	require.NoError(t, err)

	updated, err := files.GetByIDAndUser(ctx, f.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, "after.json", updated.FileName)
	assert.True(t, updated.IsShared)
	assert.Equal(t, int64(0), updated.ExpiresAt)

	// toggle share flag off, set an expiry horizon
	err = saved.UpdateSavedFile(ctx, f.ID, "owner", &UpdateSavedFileRequest{
		IsShared:       boolPtr(false),
		ExpirationDays: intPtr(2),
	})
	require.NoError(t, err)

	updated, err = files.GetByIDAndUser(ctx, f.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, "after.json", updated.FileName)
	assert.False(t, updated.IsShared)
	assert.Equal(t, base.UnixMilli()+2*dayMillis, updated.ExpiresAt)

	// expiration_days = 0 leaves the existing expiry alone
	err = saved.UpdateSavedFile(ctx, f.ID, "owner", &UpdateSavedFileRequest{
		ExpirationDays: intPtr(0),
	})
	require.NoError(t, err)

	updated, err = files.GetByIDAndUser(ctx, f.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, base.UnixMilli()+2*dayMillis, updated.ExpiresAt)
}

func TestUpdateSavedFileNotFound(t *testing.T) {
	saved, _, _, _ := newSavedEnv(t)

	err := saved.UpdateSavedFile(context.Background(), 999, "nobody", &UpdateSavedFileRequest{
		FileName: strPtr("x"),
	})
	assert.ErrorIs(t, err, ErrSavedNotFound)
}

func TestGetSavedFileIgnoresShareGates(t *testing.T) {
	saved, share, files, _ := newSavedEnv(t)
	ctx := context.Background()

	base := time.Now()
	share.now = func() time.Time { return base }
	saved.now = func() time.Time { return base }

	shareID, err := share.CreateSharedFile(ctx, &CreateShareRequest{
		UserID:         "owner",
		FileName:       "own.json",
		Content:        json.RawMessage(`{"k":"v"}`),
		ExpirationDays: 1,
	})
	require.NoError(t, err)

	f, err := files.GetByShareID(ctx, shareID)
	require.NoError(t, err)

	// unshare and expire it; the owner can still read their own record
	require.NoError(t, share.DeleteSharedFile(ctx, shareID, "owner"))
	saved.now = func() time.Time { return base.Add(48 * time.Hour) }

	sf, err := saved.GetSavedFile(ctx, f.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`{"k":"v"}`), sf.Content)
	assert.True(t, sf.IsExpired)
	assert.False(t, sf.File.IsShared)
}

func TestGetSavedFileNotFound(t *testing.T) {
	saved, _, _, _ := newSavedEnv(t)

	_, err := saved.GetSavedFile(context.Background(), 42, "nobody")
	assert.ErrorIs(t, err, ErrSavedNotFound)
}
