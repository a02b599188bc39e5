package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

type FeedbackHandler struct {
	feedbackUsecase usecasecontract.IFeedbackUseCase
}

func NewFeedbackHandler(feedbackUsecase usecasecontract.IFeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{feedbackUsecase: feedbackUsecase}
}

func (h *FeedbackHandler) SaveFeedback(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.FeedbackRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	id, err := h.feedbackUsecase.SaveFeedback(c.Request.Context(), user, req.BookID, *req.Note, req.Comment)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.IDResponse{ID: id})
}

func (h *FeedbackHandler) FindAllFeedbacksByBook(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.feedbackUsecase.FindAllFeedbacksByBook(c.Request.Context(), user, c.Param("bookID"), page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPageResponse(result, dto.ToFeedbackResponse))
}
