package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现（GORM）
// 设计说明：
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误在此转换为业务错误，上层不感知驱动差异
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:    b.Title,
		Author:   b.Author,
		Year:     b.Year,
		MemberID: b.MemberID,
	}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isForeignKeyError(err) {
			return member.ErrMemberNotFound
		}
		return apperrors.Wrap(err, "failed to create book")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.first(dbFrom(ctx, r.db), id)
}

// LockByID 悲观锁查询图书
// SELECT * FROM books WHERE id = ? FOR UPDATE
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.first(lockForUpdate(dbFrom(ctx, r.db)), id)
}

func (r *bookRepository) first(db *gorm.DB, id uint) (*book.Book, error) {
	var model BookModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query book")
	}
	return toBookEntity(&model), nil
}

// List 分页查询图书列表
// 关键词对书名、作者做不区分大小写的子串匹配，结果按ID升序
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	// 每次构建新的查询，避免Count与Find共享Statement
	query := func() *gorm.DB {
		q := dbFrom(ctx, r.db).Model(&BookModel{})
		if params.Keyword != "" {
			pattern := likePattern(params.Keyword)
			q = q.Where("LOWER(title) LIKE LOWER(?) ESCAPE '!' OR LOWER(author) LIKE LOWER(?) ESCAPE '!'", pattern, pattern)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count books")
	}
	if params.PastEnd(total) {
		return []*book.Book{}, total, nil
	}

	var models []BookModel
	err := query().
		Order("id ASC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list books")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// Update 更新图书信息
// 只写书名、作者、年份，借阅人只能通过MarkBorrowed/MarkReturned修改
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := dbFrom(ctx, r.db).
		Model(&BookModel{ID: b.ID}).
		Select("title", "author", "year", "updated_at").
		Updates(&BookModel{
			Title:     b.Title,
			Author:    b.Author,
			Year:      b.Year,
			UpdatedAt: b.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update book")
	}
	return nil
}

// Delete 物理删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to delete book")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// MarkBorrowed 设置借阅人（原子操作）
// UPDATE books SET member_id = ? WHERE id = ? AND member_id IS NULL
// 条件更新保证两个并发借阅最多只有一个成功
func (r *bookRepository) MarkBorrowed(ctx context.Context, id uint, memberID uint) error {
	db := dbFrom(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ? AND member_id IS NULL", id).
		Update("member_id", memberID)

	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return member.ErrMemberNotFound
		}
		return apperrors.Wrap(result.Error, "failed to borrow book")
	}

	if result.RowsAffected == 0 {
		// 图书不存在，或者已被借出
		if _, err := r.first(db, id); err != nil {
			return err
		}
		return book.ErrAlreadyBorrowed
	}
	return nil
}

// MarkReturned 清除借阅人（原子操作）
// UPDATE books SET member_id = NULL WHERE id = ? AND member_id IS NOT NULL
func (r *bookRepository) MarkReturned(ctx context.Context, id uint) error {
	db := dbFrom(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ? AND member_id IS NOT NULL", id).
		Update("member_id", gorm.Expr("NULL"))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to return book")
	}

	if result.RowsAffected == 0 {
		if _, err := r.first(db, id); err != nil {
			return err
		}
		return book.ErrNotBorrowed
	}
	return nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Year:      model.Year,
		MemberID:  model.MemberID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
