package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
)

// GetMemberUseCase 会员详情用例
type GetMemberUseCase struct {
	memberService member.Service
}

// NewGetMemberUseCase 创建会员详情用例
func NewGetMemberUseCase(memberService member.Service) *GetMemberUseCase {
	return &GetMemberUseCase{
		memberService: memberService,
	}
}

// Execute 查询会员及其当前借阅
func (uc *GetMemberUseCase) Execute(ctx context.Context, id uint) (*MemberResponse, error) {
	m, err := uc.memberService.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewMemberResponse(m), nil
}

// ListMembersUseCase 会员列表用例
// 返回全部会员，不分页不过滤
type ListMembersUseCase struct {
	memberService member.Service
}

// NewListMembersUseCase 创建会员列表用例
func NewListMembersUseCase(memberService member.Service) *ListMembersUseCase {
	return &ListMembersUseCase{
		memberService: memberService,
	}
}

// Execute 查询全部会员
func (uc *ListMembersUseCase) Execute(ctx context.Context) ([]*MemberResponse, error) {
	members, err := uc.memberService.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*MemberResponse, len(members))
	for i, m := range members {
		list[i] = NewMemberResponse(m)
	}
	return list, nil
}
