package book

import (
	"time"
)

// LoanStatus 图书借阅状态
// 状态由借阅人字段推导（MemberID为nil即在架），不单独存储
type LoanStatus int

const (
	StatusAvailable LoanStatus = iota // 在架
	StatusBorrowed                    // 已借出
)

func (s LoanStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusBorrowed:
		return "borrowed"
	default:
		return "unknown"
	}
}

// Book 图书实体（聚合根）
// 设计说明：
// 1. 一行记录即一本实体书，没有库存/副本概念
// 2. MemberID是借阅人引用，nil表示在架
// 3. 领域实体不依赖GORM tag，由persistence层负责映射
type Book struct {
	ID        uint
	Title     string
	Author    string
	Year      int
	MemberID  *uint // 借阅人会员ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书（工厂方法），新书总是在架状态
func NewBook(title, author string, year int) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		Year:      year,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Status 当前借阅状态
func (b *Book) Status() LoanStatus {
	if b.MemberID == nil {
		return StatusAvailable
	}
	return StatusBorrowed
}

// IsBorrowed 是否已借出
func (b *Book) IsBorrowed() bool {
	return b.Status() == StatusBorrowed
}

// BorrowedBy 返回借阅人ID
func (b *Book) BorrowedBy() (uint, bool) {
	if b.MemberID == nil {
		return 0, false
	}
	return *b.MemberID, true
}

// Borrow 借出（领域行为）
// 状态迁移：Available → Borrowed
func (b *Book) Borrow(memberID uint) error {
	if b.IsBorrowed() {
		return ErrAlreadyBorrowed
	}
	id := memberID
	b.MemberID = &id
	b.UpdatedAt = time.Now()
	return nil
}

// Return 归还（领域行为）
// 状态迁移：Borrowed → Available
func (b *Book) Return() error {
	if !b.IsBorrowed() {
		return ErrNotBorrowed
	}
	b.MemberID = nil
	b.UpdatedAt = time.Now()
	return nil
}

// Patch 部分更新参数
// nil字段表示不修改
type Patch struct {
	Title  *string
	Author *string
	Year   *int
}

// Validate 校验提供的字段
// 书名、作者、年份是必填字段，提供了就不能为空值
func (p Patch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Author != nil && *p.Author == "" {
		return ErrEmptyAuthor
	}
	if p.Year != nil && *p.Year == 0 {
		return ErrInvalidYear
	}
	return nil
}

// Apply 应用部分更新（不修改借阅人）
func (b *Book) Apply(p Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
	b.UpdatedAt = time.Now()
	return nil
}
