package loan

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// LoanResponse 借阅/归还响应DTO
type LoanResponse struct {
	Message string `json:"message"`
}

// ReturnBookUseCase 归还用例
// 与借阅对称：锁定图书 → 检查已借出 → 条件更新 WHERE member_id IS NOT NULL
type ReturnBookUseCase struct {
	bookRepo  book.Repository
	txManager *store.TxManager
}

// NewReturnBookUseCase 创建归还用例
func NewReturnBookUseCase(bookRepo book.Repository, txManager *store.TxManager) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// Execute 执行归还
func (uc *ReturnBookUseCase) Execute(ctx context.Context, bookID uint) (resp *LoanResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "loan.ReturnBook",
		attribute.Int64("book.id", int64(bookID)),
	)
	defer func() {
		tracing.End(span, err)
		metrics.RecordLoanTransition(metrics.ActionReturn, err)
	}()

	var b *book.Book
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		b, err = uc.bookRepo.LockByID(txCtx, bookID)
		if err != nil {
			return err
		}

		// 状态迁移：已借出 → 在架
		if err := b.Return(); err != nil {
			return err
		}
		return uc.bookRepo.MarkReturned(txCtx, b.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("图书已归还", "book_id", b.ID)

	return &LoanResponse{
		Message: fmt.Sprintf("Book '%s' returned", b.Title),
	}, nil
}
