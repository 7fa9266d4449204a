package book

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// BookResponse 图书响应DTO
// borrowed_by为借阅会员ID，在架时为null
type BookResponse struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	BorrowedBy *uint  `json:"borrowed_by"`
}

// NewBookResponse 领域实体 → 响应DTO
func NewBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Year:       b.Year,
		BorrowedBy: b.MemberID,
	}
}
