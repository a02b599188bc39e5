package dto

import usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"

// FeedbackRequest is the body of POST /feedbacks. Note is a pointer so that 0 is accepted.
type FeedbackRequest struct {
	Note    *float64 `json:"note" binding:"required,gte=0,lte=5"`
	Comment string   `json:"comment" binding:"required,notblank"`
	BookID  string   `json:"bookId" binding:"required,notblank"`
}

type FeedbackResponse struct {
	Note        float64 `json:"note"`
	Comment     string  `json:"comment"`
	OwnFeedback bool    `json:"ownFeedback"`
}

func ToFeedbackResponse(f usecasecontract.FeedbackItem) FeedbackResponse {
	return FeedbackResponse{
		Note:        f.Note,
		Comment:     f.Comment,
		OwnFeedback: f.OwnFeedback,
	}
}
