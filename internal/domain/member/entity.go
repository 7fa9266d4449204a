package member

import (
	"time"
)

// Member 会员实体（聚合根）
// 设计说明：
// 1. Email全局唯一，由数据库UNIQUE索引保证
// 2. BorrowedBooks是读取时通过反查books表得到的派生视图，不持久化
type Member struct {
	ID            uint
	Name          string
	Email         string
	BorrowedBooks []uint // 当前借阅的图书ID（按ID升序）
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewMember 创建新会员（工厂方法）
func NewMember(name, email string) *Member {
	now := time.Now()
	return &Member{
		Name:          name,
		Email:         email,
		BorrowedBooks: []uint{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HasLoans 是否有未归还的图书
func (m *Member) HasLoans() bool {
	return len(m.BorrowedBooks) > 0
}

// Patch 部分更新参数
// nil字段表示不修改
type Patch struct {
	Name  *string
	Email *string
}

// Validate 校验提供的字段
func (p Patch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return ErrEmptyName
	}
	if p.Email != nil && *p.Email == "" {
		return ErrEmptyEmail
	}
	return nil
}

// ChangesEmail 是否修改了邮箱
func (p Patch) ChangesEmail(current string) bool {
	return p.Email != nil && *p.Email != current
}

// Apply 应用部分更新（领域行为）
func (m *Member) Apply(p Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	m.UpdatedAt = time.Now()
	return nil
}
