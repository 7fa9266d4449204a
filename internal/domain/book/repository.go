package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 所有方法都会参与context中携带的事务
type Repository interface {
	// Create 创建图书，回填ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// LockByID 悲观锁查询图书（SELECT FOR UPDATE）
	// 必须在事务中调用，借阅/归还/更新前锁定行
	LockByID(ctx context.Context, id uint) (*Book, error)

	// List 分页查询图书列表，返回当前页和总数
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Update 更新书名、作者、年份（不修改借阅人）
	Update(ctx context.Context, book *Book) error

	// Delete 物理删除图书
	// 不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// MarkBorrowed 设置借阅人（原子操作）
	// 仅当图书在架时更新，否则返回ErrAlreadyBorrowed
	MarkBorrowed(ctx context.Context, id uint, memberID uint) error

	// MarkReturned 清除借阅人（原子操作）
	// 仅当图书已借出时更新，否则返回ErrNotBorrowed
	MarkReturned(ctx context.Context, id uint) error
}

// DefaultPageSize 默认每页数量
const DefaultPageSize = 5

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码（从1开始）
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词（不区分大小写，匹配书名或作者）
}

// Normalize 填充默认值：page<1视为第1页，pageSize<1使用默认值
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset 分页偏移量
// 调用前先用PastEnd排除越界页，否则(Page-1)*PageSize可能溢出
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PastEnd 当前页的起点是否已超出总数
// 用除法比较，页码和每页数量再大也不会溢出
func (p ListParams) PastEnd(total int64) bool {
	if p.Page <= 1 {
		return false
	}
	return int64(p.Page-1) > (total-1)/int64(p.PageSize)
}
