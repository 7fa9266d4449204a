package dto

import (
	"errors"
	"strconv"
)

// CreateBookRequest HTTP新增图书请求
// validator tag说明：
// - required: 必填，year为0视为缺失
// - max: 长度上限与数据库列一致
type CreateBookRequest struct {
	Title  string `json:"title" binding:"required,max=255" example:"The Go Programming Language"`
	Author string `json:"author" binding:"required,max=255" example:"Alan Donovan"`
	Year   int    `json:"year" binding:"required" example:"2015"`
}

// UpdateBookRequest HTTP更新图书请求
// 指针字段：未提供为nil（不修改），提供空字符串则校验失败
type UpdateBookRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=1,max=255" example:"The Go Programming Language"`
	Author *string `json:"author" binding:"omitempty,min=1,max=255" example:"Alan Donovan"`
	Year   *int    `json:"year" example:"2016"`
}

// ListBooksQuery HTTP图书列表查询参数
// 按字符串绑定后宽松转换：非数字或小于1的值回落到默认值
type ListBooksQuery struct {
	Page    string `form:"page" example:"1"`
	PerPage string `form:"per_page" example:"5"`
	Search  string `form:"search" example:"go"`
}

// PageNumber 页码，无法解析时返回0（由用例填充默认值）
func (q ListBooksQuery) PageNumber() int {
	return atoiOrZero(q.Page)
}

// PageSize 每页数量，无法解析时返回0
func (q ListBooksQuery) PageSize() int {
	return atoiOrZero(q.PerPage)
}

// BookResponse HTTP图书响应
// borrowed_by为借阅会员ID，在架时为null
type BookResponse struct {
	ID         uint   `json:"id" example:"1"`
	Title      string `json:"title" example:"The Go Programming Language"`
	Author     string `json:"author" example:"Alan Donovan"`
	Year       int    `json:"year" example:"2015"`
	BorrowedBy *uint  `json:"borrowed_by" example:"1"`
}

// atoiOrZero 宽松解析整数
// 非数字返回0（使用默认值）；超出int范围时Atoi返回截断到MaxInt/MinInt的值，
// 保留它，让超大页码按越界处理而不是回落到第1页
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n
		}
		return 0
	}
	return n
}
