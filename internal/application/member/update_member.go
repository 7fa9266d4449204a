package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
)

// UpdateMemberUseCase 更新会员用例
// 锁定会员行、邮箱唯一性检查、写入在同一事务中完成
type UpdateMemberUseCase struct {
	memberService member.Service
	txManager     *store.TxManager
}

// NewUpdateMemberUseCase 创建更新会员用例
func NewUpdateMemberUseCase(memberService member.Service, txManager *store.TxManager) *UpdateMemberUseCase {
	return &UpdateMemberUseCase{
		memberService: memberService,
		txManager:     txManager,
	}
}

// UpdateMemberRequest 更新会员请求DTO
// nil字段表示不修改
type UpdateMemberRequest struct {
	ID    uint
	Name  *string
	Email *string
}

// Execute 执行更新会员用例
func (uc *UpdateMemberUseCase) Execute(ctx context.Context, req UpdateMemberRequest) (*MemberResponse, error) {
	patch := member.Patch{
		Name:  req.Name,
		Email: req.Email,
	}

	var updated *member.Member
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		m, err := uc.memberService.UpdateMember(txCtx, req.ID, patch)
		if err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewMemberResponse(updated), nil
}
