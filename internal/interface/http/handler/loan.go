package handler

import (
	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	borrowUseCase *apploan.BorrowBookUseCase
	returnUseCase *apploan.ReturnBookUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(borrowUseCase *apploan.BorrowBookUseCase, returnUseCase *apploan.ReturnBookUseCase) *LoanHandler {
	return &LoanHandler{
		borrowUseCase: borrowUseCase,
		returnUseCase: returnUseCase,
	}
}

// BorrowBook 借阅图书
// @Summary      借阅图书
// @Description  检查顺序:图书存在 → 会员存在 → 图书在架
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.BorrowBookRequest true "借阅会员"
// @Success      200 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "图书已被借出"
// @Failure      404 {object} response.ErrorBody "图书或会员不存在"
// @Router       /books/{id}/borrow [post]
func (h *LoanHandler) BorrowBook(c *gin.Context) {
	bookID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.borrowUseCase.Execute(c.Request.Context(), apploan.BorrowBookRequest{
		BookID:   bookID,
		MemberID: req.MemberID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, result.Message)
}

// ReturnBook 归还图书
// @Summary      归还图书
// @Tags         借阅
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "图书未被借出"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /books/{id}/return [post]
func (h *LoanHandler) ReturnBook(c *gin.Context) {
	bookID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, result.Message)
}
