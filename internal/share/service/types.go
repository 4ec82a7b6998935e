package service

import (
	"encoding/json"
	"math"
	"time"

	"github.com/jsonshare/jsonshare-backend/internal/share/biz"
)

// SaveFileRequest 保存分享文件请求
type SaveFileRequest struct {
	ShareID  string `json:"share_id" binding:"required"`
	FileName string `json:"file_name"`
}

// UpdateSavedFileRequest 更新已保存文件请求
type UpdateSavedFileRequest struct {
	FileName       *string `json:"file_name" binding:"omitempty,min=1,max=255"`
	IsShared       *bool   `json:"is_shared"`
	ExpirationDays *int    `json:"expiration_days" binding:"omitempty,min=0"`
}

// ListFilesRequest 列表查询请求
type ListFilesRequest struct {
	Page        int  `form:"page" binding:"omitempty,min=1"`
	PageSize    int  `form:"size" binding:"omitempty,min=1,max=100"`
	ExpiredOnly bool `form:"expired_only"`
	SharedOnly  bool `form:"shared_only"`
}

// FileData 文件响应对象
type FileData struct {
	ID        int64           `json:"id"`
	FileName  string          `json:"file_name"`
	ShareID   string          `json:"share_id"`
	IsShared  bool            `json:"is_shared"`
	IsExpired bool            `json:"is_expired"`
	ExpiresAt int64           `json:"expires_at"`
	Content   json.RawMessage `json:"content,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ListFilesResponse 列表响应
type ListFilesResponse struct {
	Items      []*FileData         `json:"items"`
	Pagination *PaginationResponse `json:"pagination"`
}

// PaginationResponse 分页信息
type PaginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// toFileData 转换分享文件为响应对象（含内容）
func toFileData(sf *biz.SharedFile) *FileData {
	data := toFileItem(sf.File, sf.IsExpired)
	data.Content = sf.Content
	return data
}

// toFileItem 转换文件记录为响应对象（不含内容）
func toFileItem(f *biz.UserFile, isExpired bool) *FileData {
	return &FileData{
		ID:        f.ID,
		FileName:  f.FileName,
		ShareID:   f.ShareID,
		IsShared:  f.IsShared,
		IsExpired: isExpired,
		ExpiresAt: f.ExpiresAt,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// toListFilesResponse 转换列表响应
func toListFilesResponse(files []*biz.UserFile, total int64, page, pageSize int, now int64) *ListFilesResponse {
	items := make([]*FileData, len(files))
	for i, f := range files {
		items[i] = toFileItem(f, f.Expired(now))
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	return &ListFilesResponse{
		Items: items,
		Pagination: &PaginationResponse{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	}
}
