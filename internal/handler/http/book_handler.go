package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

// MaxCoverSize bounds an uploaded cover image.
const MaxCoverSize = 5 << 20

type BookHandler struct {
	bookUsecase    usecasecontract.IBookUseCase
	lendingUsecase usecasecontract.ILendingUseCase
}

func NewBookHandler(bookUsecase usecasecontract.IBookUseCase, lendingUsecase usecasecontract.ILendingUseCase) *BookHandler {
	return &BookHandler{
		bookUsecase:    bookUsecase,
		lendingUsecase: lendingUsecase,
	}
}

func (h *BookHandler) SaveBook(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.BookRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	id, err := h.bookUsecase.SaveBook(c.Request.Context(), user, req.ToInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.IDResponse{ID: id})
}

func (h *BookHandler) FindBookByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	details, err := h.bookUsecase.FindBookByID(c.Request.Context(), user, c.Param("bookID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToBookResponse(*details))
}

func (h *BookHandler) FindAllBooks(c *gin.Context) {
	h.listBooks(c, h.bookUsecase.FindAllBooks)
}

func (h *BookHandler) FindAllBooksByOwner(c *gin.Context) {
	h.listBooks(c, h.bookUsecase.FindAllBooksByOwner)
}

func (h *BookHandler) FindAllBorrowedBooks(c *gin.Context) {
	h.listBorrowed(c, h.bookUsecase.FindAllBorrowedBooks)
}

func (h *BookHandler) FindAllReturnedBooks(c *gin.Context) {
	h.listBorrowed(c, h.bookUsecase.FindAllReturnedBooks)
}

type bookLister func(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BookDetails], error)

type borrowedLister func(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BorrowedBook], error)

func (h *BookHandler) listBooks(c *gin.Context, list bookLister) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := list(c.Request.Context(), user, page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPageResponse(result, dto.ToBookResponse))
}

func (h *BookHandler) listBorrowed(c *gin.Context, list borrowedLister) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := list(c.Request.Context(), user, page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPageResponse(result, dto.ToBorrowedBookResponse))
}

func (h *BookHandler) UpdateShareableStatus(c *gin.Context) {
	h.command(c, "", h.bookUsecase.UpdateShareableStatus)
}

func (h *BookHandler) UpdateArchivedStatus(c *gin.Context) {
	h.command(c, "", h.bookUsecase.UpdateArchivedStatus)
}

func (h *BookHandler) BorrowBook(c *gin.Context) {
	h.command(c, "borrow", h.lendingUsecase.BorrowBook)
}

func (h *BookHandler) ReturnBorrowedBook(c *gin.Context) {
	h.command(c, "return", h.lendingUsecase.ReturnBorrowedBook)
}

func (h *BookHandler) ApproveReturnBorrowedBook(c *gin.Context) {
	h.command(c, "approve_return", h.lendingUsecase.ApproveReturnBorrowedBook)
}

// command runs a per-book action for the caller and answers with the touched id.
// A non-empty action is counted as a lending transition.
func (h *BookHandler) command(c *gin.Context, action string, run func(ctx context.Context, user *entity.User, bookID string) (string, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := run(c.Request.Context(), user, c.Param("bookID"))
	if action != "" {
		recordTransition(action, err)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.IDResponse{ID: id})
}

func (h *BookHandler) UploadBookCover(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	if fileHeader.Size > MaxCoverSize {
		ErrorHandler(c, http.StatusBadRequest, fmt.Sprintf("cover must not exceed %d bytes", MaxCoverSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleServiceError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxCoverSize))
	if err != nil {
		handleServiceError(c, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	if err := h.bookUsecase.UploadBookCover(c.Request.Context(), user, c.Param("bookID"), data, fileHeader.Filename); err != nil {
		handleServiceError(c, err)
		return
	}
	MessageHandler(c, http.StatusAccepted, "cover uploaded")
}
