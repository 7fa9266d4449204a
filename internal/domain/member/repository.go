package member

import (
	"context"
)

// Repository 会员仓储接口
// 设计说明：
// 1. 接口定义在domain层，实现在infrastructure/persistence/store
// 2. 借阅关系不在Member上缓存，通过BorrowedBookIDs显式反查
type Repository interface {
	// Create 创建会员
	// 邮箱已存在返回ErrEmailDuplicate
	Create(ctx context.Context, member *Member) error

	// FindByID 根据ID查找会员
	// 不存在返回ErrMemberNotFound
	FindByID(ctx context.Context, id uint) (*Member, error)

	// LockByID 悲观锁查询会员（SELECT FOR UPDATE）
	LockByID(ctx context.Context, id uint) (*Member, error)

	// FindByEmail 根据邮箱查找会员
	// 不存在返回ErrMemberNotFound
	FindByEmail(ctx context.Context, email string) (*Member, error)

	// List 查询全部会员（按ID升序，不分页）
	List(ctx context.Context) ([]*Member, error)

	// Update 更新姓名、邮箱
	// 邮箱与其他会员冲突返回ErrEmailDuplicate
	Update(ctx context.Context, member *Member) error

	// Delete 物理删除会员
	// 不存在返回ErrMemberNotFound，仍有借阅（外键约束）返回ErrMemberHasLoans
	Delete(ctx context.Context, id uint) error

	// BorrowedBookIDs 反查会员当前借阅的图书ID
	// 返回map[会员ID][]图书ID，没有借阅的会员不在map中
	BorrowedBookIDs(ctx context.Context, memberIDs ...uint) (map[uint][]uint, error)

	// ActiveLoans 查询全部未归还的借阅，返回map[会员ID][]图书ID
	// 列表场景使用，不绑定会员ID参数，会员再多也只有一条查询
	ActiveLoans(ctx context.Context) (map[uint][]uint, error)
}
