package member

import (
	"github.com/xiebiao/library/internal/domain/member"
)

// MemberResponse 会员响应DTO
// borrowed_books为当前借阅的图书ID（升序），没有借阅时为空数组
type MemberResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	BorrowedBooks []uint `json:"borrowed_books"`
}

// NewMemberResponse 领域实体 → 响应DTO
func NewMemberResponse(m *member.Member) *MemberResponse {
	books := m.BorrowedBooks
	if books == nil {
		books = []uint{}
	}
	return &MemberResponse{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		BorrowedBooks: books,
	}
}
