package dto

// BorrowBookRequest HTTP借阅请求
type BorrowBookRequest struct {
	MemberID uint `json:"member_id" binding:"required" example:"1"`
}
