package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明：
// 1. 支持分页与关键词搜索（书名或作者，不区分大小写）
// 2. 结果按ID升序，翻页稳定
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page    int    // 页码（从1开始）
	PerPage int    // 每页数量
	Search  string // 搜索关键词
}

// ListBooksResponse 列表查询响应DTO
// Books为当前页，其余字段由handler写入响应头
type ListBooksResponse struct {
	Books   []*BookResponse
	Total   int64
	Page    int
	PerPage int
}

// Execute 执行列表查询用例
// 超出范围的页码返回空列表而不是错误
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	params := book.ListParams{
		Page:     req.Page,
		PageSize: req.PerPage,
		Keyword:  req.Search,
	}.Normalize()

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]*BookResponse, len(books))
	for i, b := range books {
		list[i] = NewBookResponse(b)
	}

	return &ListBooksResponse{
		Books:   list,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PageSize,
	}, nil
}
