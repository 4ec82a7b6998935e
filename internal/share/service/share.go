package service

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jsonshare/jsonshare-backend/internal/pkg/errors"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/response"
	"github.com/jsonshare/jsonshare-backend/internal/share/biz"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ShareService 分享 HTTP 服务
type ShareService struct {
	uc             *biz.ShareUseCase
	logger         *logger.Logger
	maxUploadBytes int64
}

// NewShareService 创建分享服务
func NewShareService(uc *biz.ShareUseCase, logger *logger.Logger, maxUploadBytes int64) *ShareService {
	return &ShareService{
		uc:             uc,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateShare 上传 JSON 文件并创建分享
func (s *ShareService) CreateShare(c *gin.Context) {
	userID := c.GetString("user_id")

	fileName := c.PostForm("filename")
	fileHeader, err := c.FormFile("file")
	if err != nil || fileName == "" {
		response.ErrorWithCode(c, apperrors.ErrMissingFields)
		return
	}

	if s.maxUploadBytes > 0 && fileHeader.Size > s.maxUploadBytes {
		response.ErrorWithCode(c, apperrors.ErrInvalidParams, "file too large")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "failed to read uploaded file")
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c, "failed to read uploaded file")
		return
	}

	if !gjson.ValidBytes(content) {
		response.ErrorWithCode(c, apperrors.ErrInvalidJSON)
		return
	}

	expirationDays, _ := strconv.Atoi(c.PostForm("expiration_days"))

	shareID, err := s.uc.CreateSharedFile(c.Request.Context(), &biz.CreateShareRequest{
		UserID:         userID,
		FileName:       fileName,
		Content:        json.RawMessage(content),
		ExpirationDays: expirationDays,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Created(c, gin.H{"share_id": shareID})
}

// GetShare 根据分享ID获取文件（公开访问）
func (s *ShareService) GetShare(c *gin.Context) {
	shareID := c.Param("shareId")

	sf, err := s.uc.GetSharedFile(c.Request.Context(), shareID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toFileData(sf))
}

// ListShares 获取当前用户的文件列表
func (s *ShareService) ListShares(c *gin.Context) {
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

	files, total, err := s.uc.ListUserFiles(c.Request.Context(), &biz.ListFilesQuery{
		UserID:      userID,
		Page:        req.Page,
		PageSize:    req.PageSize,
		ExpiredOnly: req.ExpiredOnly,
		SharedOnly:  req.SharedOnly,
	})
	if err != nil {
		s.logger.Error("failed to list shares", zap.Error(err))
		response.InternalError(c, "failed to list files")
		return
	}

	response.Success(c, toListFilesResponse(files, total, req.Page, req.PageSize, time.Now().UnixMilli()))
}

// DeleteShare 取消分享（软删除）
func (s *ShareService) DeleteShare(c *gin.Context) {
	shareID := c.Param("shareId")
	userID := c.GetString("user_id")

	if err := s.uc.DeleteSharedFile(c.Request.Context(), shareID, userID); err != nil {
		s.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "share deleted successfully", nil)
}

// handleError 统一错误处理
func (s *ShareService) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, biz.ErrShareNotFound):
		response.ErrorWithCode(c, apperrors.ErrShareNotFound)
	case errors.Is(err, biz.ErrFileExpired):
		response.ErrorWithCode(c, apperrors.ErrFileExpired)
	case errors.Is(err, biz.ErrFileNotShared):
		response.ErrorWithCode(c, apperrors.ErrFileNotShared)
	case errors.Is(err, biz.ErrForbidden):
		response.ErrorWithCode(c, apperrors.ErrShareForbidden)
	case errors.Is(err, biz.ErrContentNotFound):
		response.ErrorWithCode(c, apperrors.ErrContentNotFound)
	default:
		s.logger.Error("internal error", zap.Error(err))
		response.InternalError(c, "internal server error")
	}
}
