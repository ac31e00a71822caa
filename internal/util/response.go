package util

import (
	"errors"
	"net/http"

	"wrongbook_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleError 将业务错误映射到稳定的 HTTP 状态码；
// 未分类的错误一律按内部错误处理，不向外泄露细节。
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		LogInternalError(c, err)
		return
	}

	switch appErr.Kind {
	case KindNotFound:
		Error(c, http.StatusNotFound, appErr.Message)
	case KindInvalid, KindRoleMismatch:
		Error(c, http.StatusBadRequest, appErr.Message)
	case KindConflict:
		Error(c, http.StatusConflict, appErr.Message)
	case KindUnauthorized:
		Error(c, http.StatusUnauthorized, appErr.Message)
	case KindServiceUnavailable:
		logger.Log.Error("External service unavailable", zap.Error(err))
		Error(c, http.StatusServiceUnavailable, appErr.Message)
	default:
		LogInternalError(c, err)
	}
}
