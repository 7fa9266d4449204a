package handler

import (
	"github.com/gin-gonic/gin"

	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// MemberHandler 会员HTTP处理器
type MemberHandler struct {
	registerUseCase *appmember.RegisterMemberUseCase
	getUseCase      *appmember.GetMemberUseCase
	listUseCase     *appmember.ListMembersUseCase
	updateUseCase   *appmember.UpdateMemberUseCase
	deleteUseCase   *appmember.DeleteMemberUseCase
}

// NewMemberHandler 创建会员处理器
func NewMemberHandler(
	registerUseCase *appmember.RegisterMemberUseCase,
	getUseCase *appmember.GetMemberUseCase,
	listUseCase *appmember.ListMembersUseCase,
	updateUseCase *appmember.UpdateMemberUseCase,
	deleteUseCase *appmember.DeleteMemberUseCase,
) *MemberHandler {
	return &MemberHandler{
		registerUseCase: registerUseCase,
		getUseCase:      getUseCase,
		listUseCase:     listUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
	}
}

// Register 会员注册
// @Summary      会员注册
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateMemberRequest true "会员信息"
// @Success      201 {object} dto.MemberResponse
// @Failure      400 {object} response.ErrorBody "缺少必填字段"
// @Failure      409 {object} response.ErrorBody "邮箱已存在"
// @Router       /members [post]
func (h *MemberHandler) Register(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appmember.RegisterMemberRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toMemberDTO(result))
}

// ListMembers 会员列表
// @Summary      会员列表
// @Description  返回全部会员及其当前借阅的图书ID
// @Tags         会员
// @Produce      json
// @Success      200 {array} dto.MemberResponse
// @Router       /members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.MemberResponse, len(result))
	for i, m := range result {
		list[i] = toMemberDTO(m)
	}
	response.OK(c, list)
}

// GetMember 会员详情
// @Summary      会员详情
// @Tags         会员
// @Produce      json
// @Param        id path int true "会员ID"
// @Success      200 {object} dto.MemberResponse
// @Failure      404 {object} response.ErrorBody "会员不存在"
// @Router       /members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMemberDTO(result))
}

// UpdateMember 更新会员
// @Summary      更新会员
// @Description  部分更新,修改邮箱时重新检查唯一性
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        id      path int                     true "会员ID"
// @Param        request body dto.UpdateMemberRequest true "需要修改的字段"
// @Success      200 {object} dto.MemberResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      404 {object} response.ErrorBody "会员不存在"
// @Failure      409 {object} response.ErrorBody "邮箱已存在"
// @Router       /members/{id} [put]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appmember.UpdateMemberRequest{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMemberDTO(result))
}

// DeleteMember 删除会员
// @Summary      删除会员
// @Description  仍有未归还图书的会员不能删除
// @Tags         会员
// @Produce      json
// @Param        id path int true "会员ID"
// @Success      200 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "会员仍有借阅"
// @Failure      404 {object} response.ErrorBody "会员不存在"
// @Router       /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	msg, err := h.deleteUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, msg)
}

func toMemberDTO(m *appmember.MemberResponse) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		BorrowedBooks: m.BorrowedBooks,
	}
}
