package book

import (
	"context"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Service 图书领域服务接口
// 设计说明：
// 1. 封装图书的业务规则校验（必填字段、部分更新）
// 2. 借阅/归还涉及会员，由application/loan用例编排
type Service interface {
	// AddBook 新增图书
	// 业务规则：书名、作者不能为空，年份不能为0
	AddBook(ctx context.Context, title, author string, year int) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// ListBooks 分页搜索图书
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// UpdateBook 部分更新图书
	// 应在事务中调用（内部使用LockByID）
	UpdateBook(ctx context.Context, id uint, patch Patch) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 新增图书
func (s *service) AddBook(ctx context.Context, title, author string, year int) (*Book, error) {
	if title == "" || author == "" || year == 0 {
		return nil, apperrors.ErrMissingFields
	}

	book := NewBook(title, author, year)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBooks 分页搜索图书
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params.Normalize())
}

// UpdateBook 部分更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, patch Patch) (*Book, error) {
	// 1. 先校验参数，避免无意义的加锁
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	// 2. 锁定图书行
	book, err := s.repo.LockByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 应用更新并持久化
	if err := book.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook 删除图书
// 已借出的图书也可以删除，借阅关系随记录一起消失
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
