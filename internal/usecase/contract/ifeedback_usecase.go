package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

// FeedbackItem is a feedback as seen by a given reader.
type FeedbackItem struct {
	Note        float64
	Comment     string
	OwnFeedback bool
}

type IFeedbackUseCase interface {
	SaveFeedback(ctx context.Context, user *entity.User, bookID string, note float64, comment string) (string, error)
	FindAllFeedbacksByBook(ctx context.Context, user *entity.User, bookID string, page, size int) (entity.Page[FeedbackItem], error)
}
