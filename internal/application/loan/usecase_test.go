package loan

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store/storetest"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

type fixture struct {
	books   book.Repository
	members member.Repository
	borrow  *BorrowBookUseCase
	ret     *ReturnBookUseCase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := storetest.NewDB(t)
	txm := store.NewTxManager(db)
	books := store.NewBookRepository(db)
	members := store.NewMemberRepository(db)
	return fixture{
		books:   books,
		members: members,
		borrow:  NewBorrowBookUseCase(books, members, txm),
		ret:     NewReturnBookUseCase(books, txm),
	}
}

func (f fixture) addBook(t *testing.T, title string) *book.Book {
	t.Helper()
	b := book.NewBook(title, "Author", 2020)
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func (f fixture) addMember(t *testing.T, name, email string) *member.Member {
	t.Helper()
	m := member.NewMember(name, email)
	require.NoError(t, f.members.Create(context.Background(), m))
	return m
}

func TestBorrowAndReturn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.addBook(t, "Go")
	m := f.addMember(t, "Alice", "a@x.com")

	resp, err := f.borrow.Execute(ctx, BorrowBookRequest{BookID: b.ID, MemberID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, "Book 'Go' borrowed by member 'Alice'", resp.Message)

	stored, err := f.books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusBorrowed, stored.Status())

	t.Run("重复借阅", func(t *testing.T) {
		other := f.addMember(t, "Bob", "b@x.com")
		_, err := f.borrow.Execute(ctx, BorrowBookRequest{BookID: b.ID, MemberID: other.ID})
		assert.ErrorIs(t, err, book.ErrAlreadyBorrowed)

		stored, err := f.books.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, m.ID, *stored.MemberID, "借阅人不应被覆盖")
	})

	resp, err = f.ret.Execute(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Book 'Go' returned", resp.Message)

	_, err = f.ret.Execute(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrNotBorrowed)
}

func TestBorrowCheckOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.addBook(t, "Go")
	m := f.addMember(t, "Alice", "a@x.com")

	cases := []struct {
		name     string
		bookID   uint
		memberID uint
		want     error
	}{
		{"图书和会员都不存在时先报图书", 999, 999, book.ErrBookNotFound},
		{"会员不存在", b.ID, 999, member.ErrMemberNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.borrow.Execute(ctx, BorrowBookRequest{BookID: c.bookID, MemberID: c.memberID})
			assert.ErrorIs(t, err, c.want)
		})
	}

	t.Run("已借出且会员不存在时报会员", func(t *testing.T) {
		_, err := f.borrow.Execute(ctx, BorrowBookRequest{BookID: b.ID, MemberID: m.ID})
		require.NoError(t, err)

		_, err = f.borrow.Execute(ctx, BorrowBookRequest{BookID: b.ID, MemberID: 999})
		assert.ErrorIs(t, err, member.ErrMemberNotFound)
	})

	t.Run("归还不存在的图书", func(t *testing.T) {
		_, err := f.ret.Execute(ctx, 999)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestConcurrentBorrow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.addBook(t, "Go")
	alice := f.addMember(t, "Alice", "a@x.com")
	bob := f.addMember(t, "Bob", "b@x.com")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint{alice.ID, bob.ID} {
		wg.Add(1)
		go func(i int, memberID uint) {
			defer wg.Done()
			_, errs[i] = f.borrow.Execute(ctx, BorrowBookRequest{BookID: b.ID, MemberID: memberID})
		}(i, id)
	}
	wg.Wait()

	var success, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			success++
		case assert.ErrorIs(t, err, book.ErrAlreadyBorrowed):
			conflict++
		}
	}
	assert.Equal(t, 1, success)
	assert.Equal(t, 1, conflict)
}

func TestLoanObservability(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := tracing.NewProvider(tracing.Config{SampleRatio: 1}, sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx := context.Background()
	f := newFixture(t)
	b := f.addBook(t, "Go")
	m := f.addMember(t, "Alice", "a@x.com")

	metrics.InitMetrics()
	conflictBefore := counterValue(t, metrics.ActionReturn, metrics.ResultConflict)

	_, err := f.borrow.Execute(ctx, BorrowBookRequest{BookID: b.ID, MemberID: m.ID})
	require.NoError(t, err)
	_, err = f.ret.Execute(ctx, b.ID)
	require.NoError(t, err)
	_, err = f.ret.Execute(ctx, b.ID)
	require.ErrorIs(t, err, book.ErrNotBorrowed)

	spans := sr.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "loan.BorrowBook", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int64("member.id", int64(m.ID)))
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, "loan.ReturnBook", spans[2].Name())
	assert.Equal(t, codes.Error, spans[2].Status().Code)

	assert.Equal(t, conflictBefore+1, counterValue(t, metrics.ActionReturn, metrics.ResultConflict))
}

func counterValue(t *testing.T, action, result string) float64 {
	t.Helper()
	var m dto.Metric
	var c prometheus.Counter = metrics.LoanTransitionsTotal.WithLabelValues(action, result)
	require.NoError(t, c.Write(&m))
	return m.Counter.GetValue()
}
