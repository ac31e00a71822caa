package util

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrorKind 业务错误分类，控制器据此映射 HTTP 状态码
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"           // 引用的实体不存在
	KindInvalid            ErrorKind = "invalid"             // 输入非法或语义不一致
	KindRoleMismatch       ErrorKind = "role_mismatch"       // 实体存在但角色/类型不符
	KindConflict           ErrorKind = "conflict"            // 唯一性或歧义冲突
	KindUnauthorized       ErrorKind = "unauthorized"        // 登录解析失败
	KindServiceUnavailable ErrorKind = "service_unavailable" // 外部 OCR/LLM 服务不可用
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFoundError(entity string) *AppError {
	return &AppError{Kind: KindNotFound, Message: entity + " not found"}
}

func InvalidError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

func RoleMismatchError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindRoleMismatch, Message: fmt.Sprintf(format, args...)}
}

func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func UnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func ServiceUnavailableError(message string, err error) *AppError {
	return &AppError{Kind: KindServiceUnavailable, Message: message, Err: err}
}

// KindOf 取出业务错误分类，非业务错误返回空串
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsDuplicateKey 识别存储层唯一约束冲突（MySQL 1062 / SQLite UNIQUE），
// 预检查未覆盖到的并发写入冲突在提交时由此兜底映射为 Conflict。
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
