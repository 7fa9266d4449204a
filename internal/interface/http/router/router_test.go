package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/library/internal/application/book"
	apploan "github.com/xiebiao/library/internal/application/loan"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store/storetest"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/response"
)

// 集成测试：真实的仓储、服务、用例、处理器，数据库为内存sqlite

type bookBody struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	BorrowedBy *uint  `json:"borrowed_by"`
}

type memberBody struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	BorrowedBooks []uint `json:"borrowed_books"`
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	db := storetest.NewDB(t)
	txm := store.NewTxManager(db)
	bookRepo := store.NewBookRepository(db)
	memberRepo := store.NewMemberRepository(db)
	bookSvc := book.NewService(bookRepo)
	memberSvc := member.NewService(memberRepo)

	bookHandler := handler.NewBookHandler(
		appbook.NewAddBookUseCase(bookSvc),
		appbook.NewGetBookUseCase(bookSvc),
		appbook.NewListBooksUseCase(bookSvc),
		appbook.NewUpdateBookUseCase(bookSvc, txm),
		appbook.NewDeleteBookUseCase(bookSvc),
	)
	memberHandler := handler.NewMemberHandler(
		appmember.NewRegisterMemberUseCase(memberSvc),
		appmember.NewGetMemberUseCase(memberSvc),
		appmember.NewListMembersUseCase(memberSvc),
		appmember.NewUpdateMemberUseCase(memberSvc, txm),
		appmember.NewDeleteMemberUseCase(memberSvc, txm),
	)
	loanHandler := handler.NewLoanHandler(
		apploan.NewBorrowBookUseCase(bookRepo, memberRepo, txm),
		apploan.NewReturnBookUseCase(bookRepo, txm),
	)

	cfg := &config.Config{Server: config.ServerConfig{Mode: gin.TestMode}}
	return New(cfg, logger.Discard(), store.NewHealthChecker(db), bookHandler, memberHandler, loanHandler)
}

// doJSON 发送请求，body为string时原样发送，其他类型序列化为JSON
func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status, code int) response.ErrorBody {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decode[response.ErrorBody](t, w)
	assert.Equal(t, code, body.Code)
	assert.NotEmpty(t, body.Error)
	return body
}

func createBook(t *testing.T, r http.Handler, title, author string, year int) bookBody {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/books", gin.H{"title": title, "author": author, "year": year})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[bookBody](t, w)
}

func createMember(t *testing.T, r http.Handler, name, email string) memberBody {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/members", gin.H{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[memberBody](t, w)
}

func TestBorrowReturnFlow(t *testing.T) {
	r := newTestEngine(t)

	m := createMember(t, r, "Alice", "alice@example.com")
	assert.Equal(t, uint(1), m.ID)
	assert.Equal(t, []uint{}, m.BorrowedBooks)

	b := createBook(t, r, "Go 101", "Tapir", 2020)
	assert.Equal(t, uint(1), b.ID)
	assert.Nil(t, b.BorrowedBy)

	t.Run("借阅", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/books/1/borrow", gin.H{"member_id": 1})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Book 'Go 101' borrowed by member 'Alice'", decode[response.MessageBody](t, w).Message)

		got := decode[bookBody](t, doJSON(t, r, http.MethodGet, "/books/1", nil))
		require.NotNil(t, got.BorrowedBy)
		assert.Equal(t, uint(1), *got.BorrowedBy)

		mem := decode[memberBody](t, doJSON(t, r, http.MethodGet, "/members/1", nil))
		assert.Equal(t, []uint{1}, mem.BorrowedBooks)
	})

	t.Run("重复借阅", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/books/1/borrow", gin.H{"member_id": 1})
		assertError(t, w, http.StatusBadRequest, 40001)
	})

	t.Run("有借阅的会员不能删除", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/members/1", nil)
		assertError(t, w, http.StatusBadRequest, 40003)
	})

	t.Run("归还", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/books/1/return", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Book 'Go 101' returned", decode[response.MessageBody](t, w).Message)

		got := decode[bookBody](t, doJSON(t, r, http.MethodGet, "/books/1", nil))
		assert.Nil(t, got.BorrowedBy)
		assert.Contains(t, doJSON(t, r, http.MethodGet, "/books/1", nil).Body.String(), `"borrowed_by":null`)
	})

	t.Run("重复归还", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/books/1/return", nil)
		assertError(t, w, http.StatusBadRequest, 40002)
	})

	t.Run("归还后可以删除会员", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/members/1", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Member deleted successfully", decode[response.MessageBody](t, w).Message)
	})
}

func TestBorrowValidation(t *testing.T) {
	r := newTestEngine(t)
	createMember(t, r, "Alice", "alice@example.com")
	createBook(t, r, "Go 101", "Tapir", 2020)

	t.Run("图书不存在", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/books/99/borrow", gin.H{"member_id": 1})
		assertError(t, w, http.StatusNotFound, 40401)
	})

	t.Run("会员不存在", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/books/1/borrow", gin.H{"member_id": 99})
		assertError(t, w, http.StatusNotFound, 40402)
	})

	t.Run("图书和会员都不存在时先报图书", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/books/99/borrow", gin.H{"member_id": 99})
		assertError(t, w, http.StatusNotFound, 40401)
	})

	t.Run("缺少member_id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/books/1/borrow", gin.H{})
		assertError(t, w, http.StatusBadRequest, 40012)
	})

	t.Run("归还不存在的图书", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/books/99/return", nil)
		assertError(t, w, http.StatusNotFound, 40401)
	})
}

func TestBookCRUD(t *testing.T) {
	r := newTestEngine(t)
	b := createBook(t, r, "Old", "Author", 1999)
	path := fmt.Sprintf("/books/%d", b.ID)

	t.Run("部分更新", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, path, gin.H{"title": "New"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[bookBody](t, w)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, "Author", got.Author)
		assert.Equal(t, 1999, got.Year)
	})

	t.Run("空书名", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, path, gin.H{"title": ""})
		body := assertError(t, w, http.StatusBadRequest, 40010)
		assert.Contains(t, body.Error, "title")
	})

	t.Run("年份为0与创建时一致被拒绝", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, path, gin.H{"year": 0})
		body := assertError(t, w, http.StatusBadRequest, 40010)
		assert.Equal(t, "year must not be 0", body.Error)

		w = doJSON(t, r, http.MethodPost, "/books", gin.H{"title": "T", "author": "A", "year": 0})
		assertError(t, w, http.StatusBadRequest, 40012)

		got := decode[bookBody](t, doJSON(t, r, http.MethodGet, path, nil))
		assert.Equal(t, 1999, got.Year)
	})

	t.Run("更新不存在的图书", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/books/99", gin.H{"title": "X"})
		assertError(t, w, http.StatusNotFound, 40401)
	})

	t.Run("删除两次", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Book deleted successfully", decode[response.MessageBody](t, w).Message)

		assertError(t, doJSON(t, r, http.MethodDelete, path, nil), http.StatusNotFound, 40401)
		assertError(t, doJSON(t, r, http.MethodGet, path, nil), http.StatusNotFound, 40401)
	})
}

func TestCreateBookValidation(t *testing.T) {
	r := newTestEngine(t)

	cases := []struct {
		name string
		body interface{}
		code int
	}{
		{"缺少作者", gin.H{"title": "T", "year": 2020}, 40012},
		{"年份为0", gin.H{"title": "T", "author": "A", "year": 0}, 40012},
		{"空请求体", "", 40012},
		{"JSON格式错误", "{not json", 40011},
		{"类型错误", gin.H{"title": "T", "author": "A", "year": "2020"}, 40011},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/books", c.body)
			assertError(t, w, http.StatusBadRequest, c.code)
		})
	}
}

func TestInvalidID(t *testing.T) {
	r := newTestEngine(t)

	for _, path := range []string{"/books/abc", "/books/0", "/books/-1", "/members/abc"} {
		t.Run(path, func(t *testing.T) {
			assertError(t, doJSON(t, r, http.MethodGet, path, nil), http.StatusBadRequest, 40013)
		})
	}
}

func TestListBooks(t *testing.T) {
	r := newTestEngine(t)
	for i := 1; i <= 12; i++ {
		createBook(t, r, fmt.Sprintf("Book %02d", i), "Author", 2000+i)
	}
	createBook(t, r, "The Go Programming Language", "Donovan", 2015)
	createBook(t, r, "Learning Python", "Lutz", 2013)

	t.Run("默认分页", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/books", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "14", w.Header().Get(response.HeaderTotalCount))
		assert.Equal(t, "1", w.Header().Get(response.HeaderPage))
		assert.Equal(t, "5", w.Header().Get(response.HeaderPerPage))

		books := decode[[]bookBody](t, w)
		require.Len(t, books, 5)
		for i, b := range books {
			assert.Equal(t, uint(i+1), b.ID, "按ID升序")
		}
	})

	t.Run("最后一页", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/books?page=3&per_page=5", nil)
		books := decode[[]bookBody](t, w)
		require.Len(t, books, 4)
		assert.Equal(t, uint(11), books[0].ID)
		assert.Equal(t, "3", w.Header().Get(response.HeaderPage))
	})

	t.Run("超出范围的页返回空数组", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/books?page=10", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
		assert.Equal(t, "14", w.Header().Get(response.HeaderTotalCount))
	})

	t.Run("非法分页参数使用默认值", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/books?page=abc&per_page=-3", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get(response.HeaderPage))
		assert.Equal(t, "5", w.Header().Get(response.HeaderPerPage))
		assert.Len(t, decode[[]bookBody](t, w), 5)
	})

	t.Run("搜索书名和作者不区分大小写", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/books?search=GO", nil)
		books := decode[[]bookBody](t, w)
		require.Len(t, books, 1)
		assert.Equal(t, "The Go Programming Language", books[0].Title)
		assert.Equal(t, "1", w.Header().Get(response.HeaderTotalCount))

		w = doJSON(t, r, http.MethodGet, "/books?search=lutz", nil)
		books = decode[[]bookBody](t, w)
		require.Len(t, books, 1)
		assert.Equal(t, "Learning Python", books[0].Title)
	})

	t.Run("超大页码返回空数组", func(t *testing.T) {
		for _, q := range []string{
			"page=4611686018427387904&per_page=4",
			"page=99999999999999999999999",
			"page=2&per_page=99999999999999999999999",
		} {
			w := doJSON(t, r, http.MethodGet, "/books?"+q, nil)
			require.Equal(t, http.StatusOK, w.Code, q)
			assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()), q)
			assert.Equal(t, "14", w.Header().Get(response.HeaderTotalCount), q)
		}
	})

	t.Run("搜索无结果", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/books?search=rust", nil)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
		assert.Equal(t, "0", w.Header().Get(response.HeaderTotalCount))
	})
}

func TestMemberCRUD(t *testing.T) {
	r := newTestEngine(t)
	alice := createMember(t, r, "Alice", "alice@example.com")
	bob := createMember(t, r, "Bob", "bob@example.com")

	t.Run("邮箱重复", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/members", gin.H{"name": "Other", "email": "alice@example.com"})
		assertError(t, w, http.StatusConflict, 40901)
	})

	t.Run("缺少字段", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/members", gin.H{"name": "NoEmail"})
		assertError(t, w, http.StatusBadRequest, 40012)
	})

	t.Run("列表", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/members", nil)
		require.Equal(t, http.StatusOK, w.Code)
		members := decode[[]memberBody](t, w)
		require.Len(t, members, 2)
		assert.Equal(t, alice.ID, members[0].ID)
		assert.Equal(t, bob.ID, members[1].ID)
	})

	t.Run("修改为他人邮箱", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/members/%d", bob.ID), gin.H{"email": "alice@example.com"})
		assertError(t, w, http.StatusConflict, 40901)
	})

	t.Run("部分更新", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/members/%d", bob.ID), gin.H{"name": "Robert"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[memberBody](t, w)
		assert.Equal(t, "Robert", got.Name)
		assert.Equal(t, "bob@example.com", got.Email)
	})

	t.Run("会员不存在", func(t *testing.T) {
		assertError(t, doJSON(t, r, http.MethodGet, "/members/99", nil), http.StatusNotFound, 40402)
		assertError(t, doJSON(t, r, http.MethodDelete, "/members/99", nil), http.StatusNotFound, 40402)
	})
}

func TestOperationalEndpoints(t *testing.T) {
	r := newTestEngine(t)

	t.Run("ping", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/ping", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", decode[map[string]string](t, w)["status"])
	})

	t.Run("请求ID", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/ping", nil)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-123")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "req-123", w.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("metrics", func(t *testing.T) {
		doJSON(t, r, http.MethodGet, "/books/1", nil)
		w := doJSON(t, r, http.MethodGet, "/metrics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/books/:id",status="404"}`)
	})

	t.Run("swagger", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/swagger/doc.json", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/books/{id}/borrow")
	})
}

func TestSearchNonASCII(t *testing.T) {
	r := newTestEngine(t)
	createBook(t, r, "Über Go", "Müller", 2021)
	createBook(t, r, "Learning Python", "Lutz", 2013)

	for _, kw := range []string{"Über", "über", "müller", "MÜLLER", "go"} {
		t.Run(kw, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/books?search="+url.QueryEscape(kw), nil)
			require.Equal(t, http.StatusOK, w.Code)
			books := decode[[]bookBody](t, w)
			require.Len(t, books, 1)
			assert.Equal(t, "Über Go", books[0].Title)
		})
	}
}
