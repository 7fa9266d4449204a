package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// DeletedMessage 删除成功提示
const DeletedMessage = "Book deleted successfully"

// DeleteBookUseCase 删除图书用例
// 已借出的图书同样可以删除，借阅关系随图书记录一起消失
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行删除，返回确认信息
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (string, error) {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return "", err
	}
	return DeletedMessage, nil
}
