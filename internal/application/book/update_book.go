package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
)

// UpdateBookUseCase 更新图书用例
// 在事务中锁定图书行后修改，避免与借阅/归还交错
type UpdateBookUseCase struct {
	bookService book.Service
	txManager   *store.TxManager
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service, txManager *store.TxManager) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		txManager:   txManager,
	}
}

// UpdateBookRequest 更新图书请求DTO
// nil字段表示不修改
type UpdateBookRequest struct {
	ID     uint
	Title  *string
	Author *string
	Year   *int
}

// Execute 执行更新图书用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	patch := book.Patch{
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
	}

	var updated *book.Book
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookService.UpdateBook(txCtx, req.ID, patch)
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewBookResponse(updated), nil
}
