package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jsonshare/jsonshare-backend/internal/pkg/errors"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/response"
	"github.com/jsonshare/jsonshare-backend/internal/share/biz"
	"go.uber.org/zap"
)

// SavedService 已保存文件 HTTP 服务
type SavedService struct {
	uc     *biz.SavedUseCase
	logger *logger.Logger
}

// NewSavedService 创建已保存文件服务
func NewSavedService(uc *biz.SavedUseCase, logger *logger.Logger) *SavedService {
	return &SavedService{
		uc:     uc,
		logger: logger,
	}
}

// SaveFile 将他人分享的文件保存到自己的列表
func (s *SavedService) SaveFile(c *gin.Context) {
	var req SaveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrMissingFields)
		return
	}

	userID := c.GetString("user_id")

	id, err := s.uc.SaveFile(c.Request.Context(), req.ShareID, userID, req.FileName)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Created(c, gin.H{"id": id})
}

// GetSavedFile 获取单个已保存文件（含内容）
func (s *SavedService) GetSavedFile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrInvalidParams, "invalid file id")
		return
	}

	userID := c.GetString("user_id")

	sf, err := s.uc.GetSavedFile(c.Request.Context(), id, userID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toFileData(sf))
}

// ListSavedFiles 获取已保存文件列表
func (s *SavedService) ListSavedFiles(c *gin.Context) {
	var req ListFilesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		req = ListFilesRequest{}
	}

	// 默认值
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	userID := c.GetString("user_id")

	files, total, err := s.uc.GetSavedFiles(c.Request.Context(), &biz.ListFilesQuery{
		UserID:      userID,
		Page:        req.Page,
		PageSize:    req.PageSize,
		ExpiredOnly: req.ExpiredOnly,
		SharedOnly:  req.SharedOnly,
	})
	if err != nil {
		s.logger.Error("failed to list saved files", zap.Error(err))
		response.InternalError(c, "failed to list files")
		return
	}

	response.Success(c, toListFilesResponse(files, total, req.Page, req.PageSize, time.Now().UnixMilli()))
}

// UpdateSavedFile 更新已保存文件
func (s *SavedService) UpdateSavedFile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrInvalidParams, "invalid file id")
		return
	}

	var req UpdateSavedFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := c.GetString("user_id")

	err = s.uc.UpdateSavedFile(c.Request.Context(), id, userID, &biz.UpdateSavedFileRequest{
		FileName:       req.FileName,
		IsShared:       req.IsShared,
		ExpirationDays: req.ExpirationDays,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "file updated successfully", nil)
}

// RemoveSavedFile 删除已保存文件
func (s *SavedService) RemoveSavedFile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrInvalidParams, "invalid file id")
		return
	}

	userID := c.GetString("user_id")

	if err := s.uc.RemoveSavedFile(c.Request.Context(), id, userID); err != nil {
		s.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "file removed successfully", nil)
}

// handleError 统一错误处理
func (s *SavedService) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, biz.ErrSavedNotFound):
		response.ErrorWithCode(c, apperrors.ErrSavedNotFound)
	case errors.Is(err, biz.ErrShareNotFound):
		response.ErrorWithCode(c, apperrors.ErrShareNotFound)
	case errors.Is(err, biz.ErrFileExpired):
		response.ErrorWithCode(c, apperrors.ErrFileExpired)
	case errors.Is(err, biz.ErrFileNotShared):
		response.ErrorWithCode(c, apperrors.ErrFileNotShared)
	case errors.Is(err, biz.ErrContentNotFound):
		response.ErrorWithCode(c, apperrors.ErrContentNotFound)
	default:
		s.logger.Error("internal error", zap.Error(err))
		response.InternalError(c, "internal server error")
	}
}
