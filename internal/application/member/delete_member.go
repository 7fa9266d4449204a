package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
)

// DeletedMessage 删除成功提示
const DeletedMessage = "Member deleted successfully"

// DeleteMemberUseCase 删除会员用例
// 业务规则：仍有未归还图书的会员不能删除（ErrMemberHasLoans）
// 检查与删除在同一事务中，避免检查后被并发借阅
type DeleteMemberUseCase struct {
	memberService member.Service
	txManager     *store.TxManager
}

// NewDeleteMemberUseCase 创建删除会员用例
func NewDeleteMemberUseCase(memberService member.Service, txManager *store.TxManager) *DeleteMemberUseCase {
	return &DeleteMemberUseCase{
		memberService: memberService,
		txManager:     txManager,
	}
}

// Execute 执行删除，返回确认信息
func (uc *DeleteMemberUseCase) Execute(ctx context.Context, id uint) (string, error) {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return uc.memberService.DeleteMember(txCtx, id)
	})
	if err != nil {
		return "", err
	}
	return DeletedMessage, nil
}
