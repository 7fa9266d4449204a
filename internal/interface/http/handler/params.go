package handler

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// parseID 解析路径参数中的ID
// 非数字、负数、0都视为非法
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

// bindError 参数绑定错误 → AppError
// 1. 缺少必填字段（包括空请求体） → ErrMissingFields
// 2. 其他校验失败 → ErrCodeInvalidParams，带字段名
// 3. JSON格式错误 → ErrBindError
func bindError(err error) error {
	if errors.Is(err, io.EOF) {
		return apperrors.WithCause(apperrors.ErrMissingFields, err)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.WithCause(apperrors.ErrBindError, err)
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperrors.WithCause(apperrors.ErrMissingFields, err)
		}
	}

	fe := verrs[0]
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeInvalidParams,
		Message: fmt.Sprintf("Invalid value for field '%s' (%s)", fe.Field(), describe(fe)),
		Err:     err,
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		if fe.Param() == "1" {
			return "must not be empty"
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return fe.Tag()
	}
}
