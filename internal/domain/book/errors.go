package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrAlreadyBorrowed 图书已被借出
	ErrAlreadyBorrowed = apperrors.New(apperrors.ErrCodeBookAlreadyBorrowed, "Book is already borrowed")

	// ErrNotBorrowed 图书未被借出，不能归还
	ErrNotBorrowed = apperrors.New(apperrors.ErrCodeBookNotBorrowed, "Book is not borrowed")

	// ErrEmptyTitle 书名不能为空
	ErrEmptyTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "title must not be empty")

	// ErrEmptyAuthor 作者不能为空
	ErrEmptyAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "author must not be empty")

	// ErrInvalidYear 出版年份不能为0，与创建时year为0视为缺失保持一致
	ErrInvalidYear = apperrors.New(apperrors.ErrCodeInvalidParams, "year must not be 0")
)
