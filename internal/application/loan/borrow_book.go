package loan

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// BorrowBookUseCase 借阅用例
// 核心问题：同一本书被两个会员同时借阅
//
// 错误实现：
//  1. 查询图书 → 在架
//  2. 设置借阅人
//     结果：两个请求都看到在架，后写入的覆盖先写入的
//
// 正确实现：
//  1. SELECT FOR UPDATE 锁定图书行（sqlite下写事务本身串行）
//  2. 检查会员存在、图书在架
//  3. 条件更新 WHERE member_id IS NULL,RowsAffected=0说明输掉了竞争
//  4. COMMIT释放锁
type BorrowBookUseCase struct {
	bookRepo   book.Repository
	memberRepo member.Repository
	txManager  *store.TxManager
}

// NewBorrowBookUseCase 创建借阅用例
func NewBorrowBookUseCase(
	bookRepo book.Repository,
	memberRepo member.Repository,
	txManager *store.TxManager,
) *BorrowBookUseCase {
	return &BorrowBookUseCase{
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		txManager:  txManager,
	}
}

// BorrowBookRequest 借阅请求DTO
type BorrowBookRequest struct {
	BookID   uint
	MemberID uint
}

// Execute 执行借阅
// 检查顺序：图书存在 → 会员存在 → 图书在架，返回第一个失败
func (uc *BorrowBookUseCase) Execute(ctx context.Context, req BorrowBookRequest) (resp *LoanResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "loan.BorrowBook",
		attribute.Int64("book.id", int64(req.BookID)),
		attribute.Int64("member.id", int64(req.MemberID)),
	)
	defer func() {
		tracing.End(span, err)
		metrics.RecordLoanTransition(metrics.ActionBorrow, err)
	}()

	var (
		b *book.Book
		m *member.Member
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定图书行
		var err error
		b, err = uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		// 2. 会员必须存在
		m, err = uc.memberRepo.FindByID(txCtx, req.MemberID)
		if err != nil {
			return err
		}

		// 3. 状态迁移：在架 → 已借出
		if err := b.Borrow(m.ID); err != nil {
			return err
		}

		// 4. 条件更新落库
		return uc.bookRepo.MarkBorrowed(txCtx, b.ID, m.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("图书已借出", "book_id", b.ID, "member_id", m.ID)

	return &LoanResponse{
		Message: fmt.Sprintf("Book '%s' borrowed by member '%s'", b.Title, m.Name),
	}, nil
}
