package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，HTTP状态码由Code推导（见HTTPStatus）
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，包装后的哨兵错误仍可被errors.Is识别
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// HTTPStatus 返回该错误对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Err:     err,
	}
}

// WithCause 复制哨兵错误并附加内部原因，保留Code和Message
func WithCause(sentinel *AppError, err error) *AppError {
	return &AppError{
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码除以100即HTTP状态码
// - 400xx: 业务规则错误（借阅状态冲突等）
// - 4001x: 参数错误
// - 404xx: 资源不存在
// - 409xx: 存储层唯一约束冲突（外键冲突在仓储层翻译为具体的业务错误）
// - 500xx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误

	// 业务规则错误（40001-40009）
	ErrCodeBookAlreadyBorrowed = 40001 // 图书已被借出
	ErrCodeBookNotBorrowed     = 40002 // 图书未被借出
	ErrCodeMemberHasLoans      = 40003 // 会员仍有未归还图书

	// 参数错误（40010-40019）
	ErrCodeInvalidParams = 40010 // 参数错误
	ErrCodeBindError     = 40011 // 参数绑定失败
	ErrCodeMissingFields = 40012 // 缺少必填字段
	ErrCodeInvalidID     = 40013 // 路径ID非法

	// 资源错误（40400-40499）
	ErrCodeBookNotFound   = 40401 // 图书不存在
	ErrCodeMemberNotFound = 40402 // 会员不存在

	// 约束冲突（40900-40999）
	ErrCodeEmailDuplicate = 40901 // 邮箱已存在
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal = New(ErrCodeInternal, "Internal server error")

	// 参数错误
	ErrBindError     = New(ErrCodeBindError, "Malformed request body")
	ErrMissingFields = New(ErrCodeMissingFields, "Missing required fields")
	ErrInvalidID     = New(ErrCodeInvalidID, "Invalid id")
)

// =========================================
// 辅助函数
// =========================================

// HTTPStatus 业务错误码 → HTTP状态码
func HTTPStatus(code int) int {
	status := code / 100
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    ErrCodeInternal,
		Message: ErrInternal.Message,
		Err:     err,
	}
}
