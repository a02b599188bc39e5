package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	handler "github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/dto"
	mocks "github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/mocks"
)

func setupBookRouter(user *entity.User, books *mocks.MockBookUsecase, lending *mocks.MockLendingUsecase) *gin.Engine {
	h := handler.NewBookHandler(books, lending)
	r := gin.New()
	r.Use(asCaller(user))
	r.POST("/books", h.SaveBook)
	r.GET("/books", h.FindAllBooks)
	r.GET("/books/owner", h.FindAllBooksByOwner)
	r.GET("/books/borrowed", h.FindAllBorrowedBooks)
	r.GET("/books/returned", h.FindAllReturnedBooks)
	r.GET("/books/:bookID", h.FindBookByID)
	r.PATCH("/books/shareable/:bookID", h.UpdateShareableStatus)
	r.PATCH("/books/archived/:bookID", h.UpdateArchivedStatus)
	r.POST("/books/borrow/:bookID", h.BorrowBook)
	r.PATCH("/books/borrow/return/:bookID", h.ReturnBorrowedBook)
	r.PATCH("/books/borrow/return/approve/:bookID", h.ApproveReturnBorrowedBook)
	r.POST("/books/cover/:bookID", h.UploadBookCover)
	return r
}

func validBook() dto.BookRequest {
	return dto.BookRequest{
		Title:      "Dune",
		AuthorName: "Frank Herbert",
		ISBN:       "9780441172719",
		Synopsis:   "Spice.",
		Shareable:  true,
	}
}

func TestSaveBook(t *testing.T) {
	books := mocks.NewMockBookUsecase()
	r := setupBookRouter(caller, books, mocks.NewMockLendingUsecase())

	w := doJSON(r, http.MethodPost, "/books", validBook())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"book-1"}`, w.Body.String())
	assert.Equal(t, "Frank Herbert", books.LastInput.AuthorName)
	assert.Equal(t, caller.ID, books.LastUser.ID)
}

func TestSaveBook_Validation(t *testing.T) {
	r := setupBookRouter(caller, mocks.NewMockBookUsecase(), mocks.NewMockLendingUsecase())
	req := validBook()
	req.ISBN = "12345"
	req.Title = " "

	w := doJSON(r, http.MethodPost, "/books", req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Contains(t, resp.ValidationErrors, "isbn")
	assert.Equal(t, "title is mandatory", resp.ValidationErrors["title"])
}

func TestSaveBook_Anonymous(t *testing.T) {
	books := mocks.NewMockBookUsecase()
	r := setupBookRouter(nil, books, mocks.NewMockLendingUsecase())

	w := doJSON(r, http.MethodPost, "/books", validBook())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, books.LastUser)
}

func TestFindAllBooks_PageEnvelope(t *testing.T) {
	books := mocks.NewMockBookUsecase()
	r := setupBookRouter(caller, books, mocks.NewMockLendingUsecase())

	w := doJSON(r, http.MethodGet, "/books?page=0&size=1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var page dto.PageResponse[dto.BookResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Content, 1)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 1, page.Size)
	assert.EqualValues(t, 1, page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.First)
	assert.True(t, page.Last)
	assert.Equal(t, "Paul Atreides", page.Content[0].Owner)
	assert.Equal(t, 4.5, page.Content[0].Rate)
	assert.Equal(t, 1, books.LastSize)
}

func TestFindAllBooks_DefaultsAndBadParams(t *testing.T) {
	books := mocks.NewMockBookUsecase()
	r := setupBookRouter(caller, books, mocks.NewMockLendingUsecase())

	w := doJSON(r, http.MethodGet, "/books/owner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, books.LastPage)
	assert.Equal(t, 10, books.LastSize)

	w = doJSON(r, http.MethodGet, "/books?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	books.Err = entity.ErrInvalidPagination
	w = doJSON(r, http.MethodGet, "/books?size=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFindBorrowedAndReturnedBooks(t *testing.T) {
	r := setupBookRouter(caller, mocks.NewMockBookUsecase(), mocks.NewMockLendingUsecase())

	for _, path := range []string{"/books/borrowed", "/books/returned"} {
		w := doJSON(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)

		var page dto.PageResponse[dto.BorrowedBookResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Len(t, page.Content, 1)
		assert.Equal(t, "book-1", page.Content[0].ID)
		assert.True(t, page.Content[0].Returned)
		assert.False(t, page.Content[0].ReturnApproved)
	}
}

func TestFindBookByID(t *testing.T) {
	books := mocks.NewMockBookUsecase()
	r := setupBookRouter(caller, books, mocks.NewMockLendingUsecase())

	w := doJSON(r, http.MethodGet, "/books/book-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "book-1", books.LastBookID)
	require.NotNil(t, books.LastUser)
	assert.Equal(t, caller.ID, books.LastUser.ID)

	books.Err = entity.ErrBookNotFound
	w = doJSON(r, http.MethodGet, "/books/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleStatus(t *testing.T) {
	books := mocks.NewMockBookUsecase()
	r := setupBookRouter(caller, books, mocks.NewMockLendingUsecase())

	w := doJSON(r, http.MethodPatch, "/books/shareable/book-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"book-1"}`, w.Body.String())

	books.Err = entity.ErrNotBookOwner
	w = doJSON(r, http.MethodPatch, "/books/archived/book-1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLendingTransitions(t *testing.T) {
	lending := mocks.NewMockLendingUsecase()
	r := setupBookRouter(caller, mocks.NewMockBookUsecase(), lending)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/books/borrow/book-1"},
		{http.MethodPatch, "/books/borrow/return/book-1"},
		{http.MethodPatch, "/books/borrow/return/approve/book-1"},
	} {
		w := doJSON(r, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.JSONEq(t, `{"id":"tx-1"}`, w.Body.String())
		assert.Equal(t, "book-1", lending.LastBookID)
	}
}

func TestLendingTransitions_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{entity.ErrBookAlreadyBorrowed, http.StatusConflict},
		{entity.ErrBookNotBorrowable, http.StatusConflict},
		{entity.ErrSelfBorrow, http.StatusConflict},
		{entity.ErrReturnNotPending, http.StatusConflict},
		{entity.ErrNotBookOwner, http.StatusForbidden},
		{entity.ErrBookNotFound, http.StatusNotFound},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		lending := mocks.NewMockLendingUsecase()
		lending.Err = tt.err
		r := setupBookRouter(caller, mocks.NewMockBookUsecase(), lending)

		w := doJSON(r, http.MethodPost, "/books/borrow/book-1", nil)

		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		assert.NotContains(t, w.Body.String(), "mongo")
	}
}

func TestUploadBookCover(t *testing.T) {
	books := mocks.NewMockBookUsecase()
	r := setupBookRouter(caller, books, mocks.NewMockLendingUsecase())

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "cover.PNG")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/books/cover/book-1", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []byte("png-bytes"), books.UploadedData)
	assert.Equal(t, "cover.PNG", books.UploadedName)
	assert.Equal(t, "book-1", books.LastBookID)
}

func TestUploadBookCover_MissingFile(t *testing.T) {
	books := mocks.NewMockBookUsecase()
	r := setupBookRouter(caller, books, mocks.NewMockLendingUsecase())

	w := doJSON(r, http.MethodPost, "/books/cover/book-1", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, books.UploadedData)
}
