package member

import (
	"context"
	"errors"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Service 会员领域服务
// 设计说明：
// 1. 负责必填字段校验、邮箱唯一性预检查、借阅视图组装
// 2. 邮箱唯一性的最终保证是数据库UNIQUE索引，预检查只为给出明确错误
// 3. UpdateMember/DeleteMember应在事务中调用
type Service interface {
	// RegisterMember 注册会员
	RegisterMember(ctx context.Context, name, email string) (*Member, error)

	// GetMember 获取会员（含当前借阅图书）
	GetMember(ctx context.Context, id uint) (*Member, error)

	// ListMembers 获取全部会员（含当前借阅图书）
	ListMembers(ctx context.Context) ([]*Member, error)

	// UpdateMember 部分更新会员
	UpdateMember(ctx context.Context, id uint, patch Patch) (*Member, error)

	// DeleteMember 删除会员
	// 业务规则：仍有未归还图书的会员不能删除
	DeleteMember(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建会员服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// RegisterMember 注册会员
func (s *service) RegisterMember(ctx context.Context, name, email string) (*Member, error) {
	// 1. 必填字段校验
	if name == "" || email == "" {
		return nil, apperrors.ErrMissingFields
	}

	// 2. 邮箱唯一性预检查
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	// 3. 持久化（并发注册时由UNIQUE索引兜底）
	member := NewMember(name, email)
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetMember 获取会员
func (s *service) GetMember(ctx context.Context, id uint) (*Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachLoans(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers 获取全部会员
func (s *service) ListMembers(ctx context.Context) ([]*Member, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.repo.ActiveLoans(ctx)
	if err != nil {
		return nil, err
	}
	applyLoans(loans, members)
	return members, nil
}

// UpdateMember 部分更新会员
func (s *service) UpdateMember(ctx context.Context, id uint, patch Patch) (*Member, error) {
	// 1. 参数校验
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	// 2. 锁定会员
	member, err := s.repo.LockByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 邮箱变更时重新检查唯一性
	if patch.ChangesEmail(member.Email) {
		if err := s.ensureEmailFree(ctx, *patch.Email, member.ID); err != nil {
			return nil, err
		}
	}

	// 4. 应用更新并持久化
	if err := member.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	if err := s.attachLoans(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteMember 删除会员
func (s *service) DeleteMember(ctx context.Context, id uint) error {
	// 1. 锁定会员（不存在返回404）
	member, err := s.repo.LockByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 检查是否仍有借阅
	if err := s.attachLoans(ctx, member); err != nil {
		return err
	}
	if member.HasLoans() {
		return ErrMemberHasLoans
	}

	// 3. 物理删除（外键RESTRICT兜底）
	return s.repo.Delete(ctx, id)
}

// ensureEmailFree 检查邮箱未被其他会员占用
// selfID为当前会员ID（注册时为0）
func (s *service) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrEmailDuplicate
	}
	return nil
}

// attachLoans 组装借阅视图（一次查询覆盖所有会员）
func (s *service) attachLoans(ctx context.Context, members ...*Member) error {
	if len(members) == 0 {
		return nil
	}
	ids := make([]uint, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	loans, err := s.repo.BorrowedBookIDs(ctx, ids...)
	if err != nil {
		return err
	}
	applyLoans(loans, members)
	return nil
}

// applyLoans 按会员ID填充借阅视图，没有借阅的会员为空数组
func applyLoans(loans map[uint][]uint, members []*Member) {
	for _, m := range members {
		m.BorrowedBooks = loans[m.ID]
		if m.BorrowedBooks == nil {
			m.BorrowedBooks = []uint{}
		}
	}
}
