package dto

// CreateMemberRequest HTTP会员注册请求
type CreateMemberRequest struct {
	Name  string `json:"name" binding:"required,max=255" example:"Alice"`
	Email string `json:"email" binding:"required,max=255" example:"alice@example.com"`
}

// UpdateMemberRequest HTTP更新会员请求
type UpdateMemberRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=255" example:"Alice"`
	Email *string `json:"email" binding:"omitempty,min=1,max=255" example:"alice@example.com"`
}

// MemberResponse HTTP会员响应
type MemberResponse struct {
	ID            uint   `json:"id" example:"1"`
	Name          string `json:"name" example:"Alice"`
	Email         string `json:"email" example:"alice@example.com"`
	BorrowedBooks []uint `json:"borrowed_books"`
}
