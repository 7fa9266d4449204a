package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// memberRepository 会员仓储实现
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓储
func NewMemberRepository(db *gorm.DB) member.Repository {
	return &memberRepository{db: db}
}

// Create 创建会员
func (r *memberRepository) Create(ctx context.Context, m *member.Member) error {
	model := &MemberModel{
		Name:  m.Name,
		Email: m.Email,
	}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.WithCause(member.ErrEmailDuplicate, err)
		}
		return apperrors.Wrap(err, "failed to create member")
	}

	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	m.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找会员
func (r *memberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	return r.first(dbFrom(ctx, r.db), "id = ?", id)
}

// LockByID 悲观锁查询会员
func (r *memberRepository) LockByID(ctx context.Context, id uint) (*member.Member, error) {
	return r.first(lockForUpdate(dbFrom(ctx, r.db)), "id = ?", id)
}

// FindByEmail 根据邮箱查找会员
func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	return r.first(dbFrom(ctx, r.db), "email = ?", email)
}

func (r *memberRepository) first(db *gorm.DB, query string, args ...interface{}) (*member.Member, error) {
	var model MemberModel
	if err := db.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query member")
	}
	return toMemberEntity(&model), nil
}

// List 查询全部会员
func (r *memberRepository) List(ctx context.Context) ([]*member.Member, error) {
	var models []MemberModel
	if err := dbFrom(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to list members")
	}

	members := make([]*member.Member, len(models))
	for i := range models {
		members[i] = toMemberEntity(&models[i])
	}
	return members, nil
}

// Update 更新姓名、邮箱
func (r *memberRepository) Update(ctx context.Context, m *member.Member) error {
	result := dbFrom(ctx, r.db).
		Model(&MemberModel{ID: m.ID}).
		Select("name", "email", "updated_at").
		Updates(&MemberModel{
			Name:      m.Name,
			Email:     m.Email,
			UpdatedAt: m.UpdatedAt,
		})

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return apperrors.WithCause(member.ErrEmailDuplicate, result.Error)
		}
		return apperrors.Wrap(result.Error, "failed to update member")
	}
	return nil
}

// Delete 物理删除会员
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&MemberModel{}, id)

	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return apperrors.WithCause(member.ErrMemberHasLoans, result.Error)
		}
		return apperrors.Wrap(result.Error, "failed to delete member")
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

// BorrowedBookIDs 反查会员当前借阅的图书
// SELECT id, member_id FROM books WHERE member_id IN (?) ORDER BY id
func (r *memberRepository) BorrowedBookIDs(ctx context.Context, memberIDs ...uint) (map[uint][]uint, error) {
	if len(memberIDs) == 0 {
		return map[uint][]uint{}, nil
	}

	return r.loans(dbFrom(ctx, r.db).Where("member_id IN ?", memberIDs))
}

// ActiveLoans 查询全部未归还的借阅
// SELECT id, member_id FROM books WHERE member_id IS NOT NULL ORDER BY id
func (r *memberRepository) ActiveLoans(ctx context.Context) (map[uint][]uint, error) {
	return r.loans(dbFrom(ctx, r.db).Where("member_id IS NOT NULL"))
}

// loans 执行借阅反查并按会员分组，图书ID保持升序
func (r *memberRepository) loans(db *gorm.DB) (map[uint][]uint, error) {
	var rows []struct {
		ID       uint
		MemberID uint
	}
	err := db.Model(&BookModel{}).
		Select("id", "member_id").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query borrowed books")
	}

	result := make(map[uint][]uint)
	for _, row := range rows {
		result[row.MemberID] = append(result[row.MemberID], row.ID)
	}
	return result, nil
}

// toMemberEntity GORM模型 → 领域实体
// BorrowedBooks由领域服务通过BorrowedBookIDs或ActiveLoans填充
func toMemberEntity(model *MemberModel) *member.Member {
	return &member.Member{
		ID:            model.ID,
		Name:          model.Name,
		Email:         model.Email,
		BorrowedBooks: []uint{},
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
