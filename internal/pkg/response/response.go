package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jsonshare/jsonshare-backend/internal/pkg/errors"
)

// Response is the uniform API envelope. Code mirrors the HTTP status.
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: http.StatusOK,
		Data: data,
	})
}

// SuccessWithMessage writes a 200 response with data and a message
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Data:    data,
		Message: message,
	})
}

// Created writes a 201 response with data
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: http.StatusCreated,
		Data: data,
	})
}

// Error writes an error response with the given HTTP status
func Error(c *gin.Context, httpStatus int, errMsg string) {
	c.JSON(httpStatus, Response{
		Code:  httpStatus,
		Error: errMsg,
	})
}

// BadRequest writes a 400 error
func BadRequest(c *gin.Context, errMsg string) {
	Error(c, http.StatusBadRequest, errMsg)
}

// Forbidden writes a 403 error
func Forbidden(c *gin.Context, errMsg string) {
	Error(c, http.StatusForbidden, errMsg)
}

// NotFound writes a 404 error
func NotFound(c *gin.Context, errMsg string) {
	Error(c, http.StatusNotFound, errMsg)
}

// InternalError writes a 500 error
func InternalError(c *gin.Context, errMsg string) {
	Error(c, http.StatusInternalServerError, errMsg)
}

// HandleError maps an AppError (or any error) to the envelope
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code := apperrors.ExtractCode(err)
	Error(c, apperrors.GetHTTPStatus(code), apperrors.GetMessage(code))
}

// ErrorWithCode writes an error response for a business error code
func ErrorWithCode(c *gin.Context, code int, details ...string) {
	Error(c, apperrors.GetHTTPStatus(code), apperrors.FormatError(code, details...))
}
