package member

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 会员领域错误定义
var (
	// ErrMemberNotFound 会员不存在
	ErrMemberNotFound = apperrors.New(apperrors.ErrCodeMemberNotFound, "Member not found")

	// ErrEmailDuplicate 邮箱已存在（唯一约束冲突）
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "Email already exists")

	// ErrMemberHasLoans 会员仍有未归还的图书，不能删除
	ErrMemberHasLoans = apperrors.New(apperrors.ErrCodeMemberHasLoans, "Member has borrowed books")

	// ErrEmptyName 姓名不能为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "name must not be empty")

	// ErrEmptyEmail 邮箱不能为空
	ErrEmptyEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "email must not be empty")
)
