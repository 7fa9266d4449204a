package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// AddBookUseCase 新增图书用例
// 新书总是在架状态，借阅人只能通过借阅用例设置
type AddBookUseCase struct {
	bookService book.Service
}

// NewAddBookUseCase 创建新增图书用例
func NewAddBookUseCase(bookService book.Service) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
	}
}

// AddBookRequest 新增图书请求DTO
type AddBookRequest struct {
	Title  string
	Author string
	Year   int
}

// Execute 执行新增图书用例
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.AddBook(ctx, req.Title, req.Author, req.Year)
	if err != nil {
		return nil, err
	}
	return NewBookResponse(b), nil
}
