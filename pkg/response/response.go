package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
)

// 分页响应头
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPerPage    = "X-Per-Page"
)

// MessageBody 操作确认响应（删除、借阅、归还）
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody 错误响应
// 设计说明：
// 1. Error是用户友好的提示信息
// 2. Code是业务错误码，HTTP状态码由它推导（Code/100）
// 3. 内部错误（AppError.Err）只记录日志，不返回给客户端
type ErrorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// OK 200，响应体为资源本身
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201，响应体为新建的资源
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200，响应体为{"message": ...}
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// Page 200，列表放在响应体，分页信息放在响应头
func Page(c *gin.Context, list interface{}, total int64, page, perPage int) {
	c.Header(HeaderTotalCount, strconv.FormatInt(total, 10))
	c.Header(HeaderPage, strconv.Itoa(page))
	c.Header(HeaderPerPage, strconv.Itoa(perPage))
	c.JSON(http.StatusOK, list)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	resp, err := h.addBook.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 服务端错误记录内部原因，客户端只看到通用提示
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("请求处理失败",
			"code", appErr.Code,
			"error", err,
		)
	}

	c.AbortWithStatusJSON(status, ErrorBody{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}
