package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
)

// RegisterMemberUseCase 会员注册用例
// 设计说明：
// 1. 必填字段与邮箱唯一性由领域服务校验
// 2. 并发注册同一邮箱时由UNIQUE索引兜底，返回409
type RegisterMemberUseCase struct {
	memberService member.Service
}

// NewRegisterMemberUseCase 创建注册用例
func NewRegisterMemberUseCase(memberService member.Service) *RegisterMemberUseCase {
	return &RegisterMemberUseCase{
		memberService: memberService,
	}
}

// RegisterMemberRequest 注册请求DTO
type RegisterMemberRequest struct {
	Name  string
	Email string
}

// Execute 执行注册用例
func (uc *RegisterMemberUseCase) Execute(ctx context.Context, req RegisterMemberRequest) (*MemberResponse, error) {
	m, err := uc.memberService.RegisterMember(ctx, req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	return NewMemberResponse(m), nil
}
