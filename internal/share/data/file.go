package data

import (
	"context"
	"time"

	"github.com/jsonshare/jsonshare-backend/internal/pkg/database"
	"github.com/jsonshare/jsonshare-backend/internal/share/biz"
	"gorm.io/gorm"
)

// FilePO 用户文件记录数据库模型
type FilePO struct {
	ID        int64     `gorm:"primarykey;autoIncrement"`
	FileName  string    `gorm:"size:255;not null"`
	UserID    string    `gorm:"size:36;not null;index:idx_user_files_user_id"`
	JSONID    int64     `gorm:"not null;index:idx_user_files_json_id"`
	ShareID   string    `gorm:"size:64;not null;uniqueIndex:idx_user_files_share_id"`
	IsShared  bool      `gorm:"not null;default:false"`
	ExpiredAt int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (FilePO) TableName() string {
	return "user_files"
}

// FileRepo 用户文件记录仓储实现
type FileRepo struct {
	db *database.DB
}

// NewFileRepo 创建用户文件记录仓储
func NewFileRepo(db *database.DB) biz.FileRepo {
	return &FileRepo{db: db}
}

// Create 创建文件记录
func (r *FileRepo) Create(ctx context.Context, file *biz.UserFile) error {
	po := r.toPO(file)

	if err := r.db.GetDBFromContext(ctx).Create(po).Error; err != nil {
		return err
	}

	file.ID = po.ID
	return nil
}

// Update 更新文件记录
func (r *FileRepo) Update(ctx context.Context, file *biz.UserFile) error {
	updates := map[string]interface{}{
		"file_name":  file.FileName,
		"is_shared":  file.IsShared,
		"expired_at": file.ExpiresAt,
		"updated_at": file.UpdatedAt,
	}

	result := r.db.GetDBFromContext(ctx).
		Model(&FilePO{}).
		Where("id = ? AND user_id = ?", file.ID, file.UserID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return biz.ErrSavedNotFound
	}

	return nil
}

// Delete 硬删除文件记录
func (r *FileRepo) Delete(ctx context.Context, id int64, userID string) error {
	result := r.db.GetDBFromContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&FilePO{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return biz.ErrSavedNotFound
	}

	return nil
}

// GetByShareID 根据分享ID获取文件记录
func (r *FileRepo) GetByShareID(ctx context.Context, shareID string) (*biz.UserFile, error) {
	var po FilePO
	err := r.db.GetDBFromContext(ctx).
		Where("share_id = ?", shareID).
		First(&po).Error

	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, biz.ErrShareNotFound
		}
		return nil, err
	}

	return r.toFile(&po), nil
}

// GetByIDAndUser 根据ID和所有者获取文件记录
func (r *FileRepo) GetByIDAndUser(ctx context.Context, id int64, userID string) (*biz.UserFile, error) {
	var po FilePO
	err := r.db.GetDBFromContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&po).Error

	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, biz.ErrSavedNotFound
		}
		return nil, err
	}

	return r.toFile(&po), nil
}

// List 获取文件记录列表（分页、过滤）
func (r *FileRepo) List(ctx context.Context, query *biz.ListFilesQuery) ([]*biz.UserFile, int64, error) {
	var pos []FilePO
	var total int64

	q := r.applyFilters(r.db.GetDBFromContext(ctx).Model(&FilePO{}), query)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Scopes(
			database.OrderBy("updated_at", true),
			database.Paginate(query.Page, query.PageSize),
		).
		Find(&pos).Error

	if err != nil {
		return nil, 0, err
	}

	files := make([]*biz.UserFile, len(pos))
	for i, po := range pos {
		files[i] = r.toFile(&po)
	}

	return files, total, nil
}

// UpdateSharedStatus 根据分享ID设置分享状态
func (r *FileRepo) UpdateSharedStatus(ctx context.Context, shareID string, isShared bool) error {
	result := r.db.GetDBFromContext(ctx).
		Model(&FilePO{}).
		Where("share_id = ?", shareID).
		Updates(map[string]interface{}{
			"is_shared":  isShared,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return biz.ErrShareNotFound
	}

	return nil
}

// applyFilters 过滤语义：expired_only 优先于 shared_only；
// shared_only 排除已过期的记录
func (r *FileRepo) applyFilters(q *gorm.DB, query *biz.ListFilesQuery) *gorm.DB {
	q = q.Where("user_id = ?", query.UserID)

	switch {
	case query.ExpiredOnly:
		q = q.Where("expired_at <> 0 AND expired_at < ?", query.Now)
	case query.SharedOnly:
		q = q.Where("is_shared = ? AND (expired_at = 0 OR expired_at >= ?)", true, query.Now)
	}

	return q
}

// toPO 转换业务对象到 PO
func (r *FileRepo) toPO(file *biz.UserFile) *FilePO {
	return &FilePO{
		ID:        file.ID,
		FileName:  file.FileName,
		UserID:    file.UserID,
		JSONID:    file.ContentID,
		ShareID:   file.ShareID,
		IsShared:  file.IsShared,
		ExpiredAt: file.ExpiresAt,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
	}
}

// toFile 转换 PO 到业务对象
func (r *FileRepo) toFile(po *FilePO) *biz.UserFile {
	return &biz.UserFile{
		ID:        po.ID,
		FileName:  po.FileName,
		UserID:    po.UserID,
		ContentID: po.JSONID,
		ShareID:   po.ShareID,
		IsShared:  po.IsShared,
		ExpiresAt: po.ExpiredAt,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}
