package book

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store/storetest"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type useCases struct {
	add    *AddBookUseCase
	get    *GetBookUseCase
	list   *ListBooksUseCase
	update *UpdateBookUseCase
	delete *DeleteBookUseCase
}

func newUseCases(t *testing.T) useCases {
	t.Helper()
	db := storetest.NewDB(t)
	svc := book.NewService(store.NewBookRepository(db))
	return useCases{
		add:    NewAddBookUseCase(svc),
		get:    NewGetBookUseCase(svc),
		list:   NewListBooksUseCase(svc),
		update: NewUpdateBookUseCase(svc, store.NewTxManager(db)),
		delete: NewDeleteBookUseCase(svc),
	}
}

func TestAddAndGetBook(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)

	created, err := uc.add.Execute(ctx, AddBookRequest{Title: "T", Author: "Au", Year: 2020})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Nil(t, created.BorrowedBy)

	got, err := uc.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = uc.get.Execute(ctx, 999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	_, err = uc.add.Execute(ctx, AddBookRequest{Title: "T"})
	assert.ErrorIs(t, err, apperrors.ErrMissingFields)
}

func TestListBooks(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)

	for i := 1; i <= 12; i++ {
		_, err := uc.add.Execute(ctx, AddBookRequest{Title: fmt.Sprintf("B%d", i), Author: "A", Year: 2000})
		require.NoError(t, err)
	}

	t.Run("默认分页", func(t *testing.T) {
		resp, err := uc.list.Execute(ctx, ListBooksRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Books, 5)
		assert.Equal(t, int64(12), resp.Total)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, book.DefaultPageSize, resp.PerPage)
	})

	t.Run("第3页剩余2本", func(t *testing.T) {
		resp, err := uc.list.Execute(ctx, ListBooksRequest{Page: 3, PerPage: 5})
		require.NoError(t, err)
		assert.Len(t, resp.Books, 2)
	})

	t.Run("超出范围返回空列表", func(t *testing.T) {
		resp, err := uc.list.Execute(ctx, ListBooksRequest{Page: 10, PerPage: 5})
		require.NoError(t, err)
		assert.NotNil(t, resp.Books)
		assert.Empty(t, resp.Books)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)

	created, err := uc.add.Execute(ctx, AddBookRequest{Title: "T", Author: "Au", Year: 2020})
	require.NoError(t, err)

	year := 2021
	updated, err := uc.update.Execute(ctx, UpdateBookRequest{ID: created.ID, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, "T", updated.Title)
	assert.Equal(t, 2021, updated.Year)

	got, err := uc.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2021, got.Year)

	empty := ""
	_, err = uc.update.Execute(ctx, UpdateBookRequest{ID: created.ID, Title: &empty})
	assert.ErrorIs(t, err, book.ErrEmptyTitle)

	_, err = uc.update.Execute(ctx, UpdateBookRequest{ID: 999, Year: &year})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)

	created, err := uc.add.Execute(ctx, AddBookRequest{Title: "T", Author: "Au", Year: 2020})
	require.NoError(t, err)

	msg, err := uc.delete.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Book deleted successfully", msg)

	_, err = uc.delete.Execute(ctx, created.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}
