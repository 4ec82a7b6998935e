package data

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/jsonshare/jsonshare-backend/internal/pkg/database"
	"github.com/jsonshare/jsonshare-backend/internal/share/biz"
	"gorm.io/gorm"
)

// JSONValue stores an arbitrary JSON document in a jsonb column
type JSONValue json.RawMessage

func (j *JSONValue) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = JSONValue(v)
		return nil
	default:
		return errors.New("unsupported type for JSONValue")
	}
}

func (j JSONValue) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// ContentPO 内容数据库模型
type ContentPO struct {
	ID          int64     `gorm:"primarykey;autoIncrement"`
	JSONContent JSONValue `gorm:"type:jsonb;not null"`
	RefCount    int64     `gorm:"not null;default:1;index:idx_json_files_ref_count"`
}

func (ContentPO) TableName() string {
	return "json_files"
}

// ContentRepo 内容仓储实现
type ContentRepo struct {
	db *database.DB
}

// NewContentRepo 创建内容仓储
func NewContentRepo(db *database.DB) biz.ContentRepo {
	return &ContentRepo{db: db}
}

// Create 存储新内容
func (r *ContentRepo) Create(ctx context.Context, content *biz.Content) error {
	po := &ContentPO{
		JSONContent: JSONValue(content.Data),
		RefCount:    content.RefCount,
	}

	if err := r.db.GetDBFromContext(ctx).Create(po).Error; err != nil {
		return err
	}

	content.ID = po.ID
	return nil
}

// GetByID 根据ID获取内容
func (r *ContentRepo) GetByID(ctx context.Context, id int64) (*biz.Content, error) {
	var po ContentPO
	err := r.db.GetDBFromContext(ctx).
		Where("id = ?", id).
		First(&po).Error

	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, biz.ErrContentNotFound
		}
		return nil, err
	}

	return &biz.Content{
		ID:       po.ID,
		Data:     json.RawMessage(po.JSONContent),
		RefCount: po.RefCount,
	}, nil
}

// Update 更新内容记录
func (r *ContentRepo) Update(ctx context.Context, content *biz.Content) error {
	result := r.db.GetDBFromContext(ctx).
		Model(&ContentPO{}).
		Where("id = ?", content.ID).
		Updates(map[string]interface{}{
			"json_content": JSONValue(content.Data),
			"ref_count":    content.RefCount,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return biz.ErrContentNotFound
	}

	return nil
}

// IncrementRefCount 引用计数加一
func (r *ContentRepo) IncrementRefCount(ctx context.Context, id int64) error {
	result := r.db.GetDBFromContext(ctx).
		Model(&ContentPO{}).
		Where("id = ?", id).
		Update("ref_count", gorm.Expr("ref_count + 1"))

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return biz.ErrContentNotFound
	}

	return nil
}

// DecrementRefCount 引用计数减一，返回新计数
func (r *ContentRepo) DecrementRefCount(ctx context.Context, id int64) (int64, error) {
	db := r.db.GetDBFromContext(ctx)

	result := db.Model(&ContentPO{}).
		Where("id = ?", id).
		Update("ref_count", gorm.Expr("ref_count - 1"))

	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, biz.ErrContentNotFound
	}

	var po ContentPO
	if err := db.Select("ref_count").Where("id = ?", id).First(&po).Error; err != nil {
		return 0, err
	}

	return po.RefCount, nil
}

// Delete 硬删除内容
func (r *ContentRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.GetDBFromContext(ctx).
		Where("id = ?", id).
		Delete(&ContentPO{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return biz.ErrContentNotFound
	}

	return nil
}
