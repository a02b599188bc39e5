package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

type FeedbackUsecase struct {
	feedbackRepo  contract.IFeedbackRepository
	bookRepo      contract.IBookRepository
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	cache         contract.IBookCache
	now           func() time.Time
}

func NewFeedbackUsecase(
	feedbackRepo contract.IFeedbackRepository,
	bookRepo contract.IBookRepository,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *FeedbackUsecase {
	return &FeedbackUsecase{
		feedbackRepo:  feedbackRepo,
		bookRepo:      bookRepo,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		now:           time.Now,
	}
}

var _ usecasecontract.IFeedbackUseCase = (*FeedbackUsecase)(nil)

// SetBookCache lets new feedback evict the cached rating of its book.
func (uc *FeedbackUsecase) SetBookCache(cache contract.IBookCache) {
	uc.cache = cache
}

func (uc *FeedbackUsecase) SaveFeedback(ctx context.Context, user *entity.User, bookID string, note float64, comment string) (string, error) {
	book, err := uc.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	if !book.IsLendable() {
		return "", entity.ErrFeedbackNotAllowed
	}
	if book.IsOwnedBy(user.ID) {
		return "", entity.ErrSelfFeedback
	}

	now := uc.now().UTC()
	feedback := &entity.Feedback{
		ID:        uc.uuidGenerator.NewUUID(),
		Note:      note,
		Comment:   comment,
		BookID:    book.ID,
		CreatedBy: user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.feedbackRepo.CreateFeedback(ctx, feedback); err != nil {
		uc.logger.Errorf("failed to save feedback: %v", err)
		return "", fmt.Errorf("failed to save feedback: %w", err)
	}
	if uc.cache != nil {
		if err := uc.cache.InvalidateBook(ctx, book.ID); err != nil {
			uc.logger.Warnf("failed to invalidate cached book %s: %v", book.ID, err)
		}
	}
	return feedback.ID, nil
}

func (uc *FeedbackUsecase) FindAllFeedbacksByBook(ctx context.Context, user *entity.User, bookID string, page, size int) (entity.Page[usecasecontract.FeedbackItem], error) {
	req, err := newPageRequest(page, size)
	if err != nil {
		return entity.Page[usecasecontract.FeedbackItem]{}, err
	}
	feedbacks, total, err := uc.feedbackRepo.FindFeedbacksByBook(ctx, bookID, req)
	if err != nil {
		return entity.Page[usecasecontract.FeedbackItem]{}, fmt.Errorf("failed to list feedbacks: %w", err)
	}
	items := make([]usecasecontract.FeedbackItem, 0, len(feedbacks))
	for _, f := range feedbacks {
		items = append(items, usecasecontract.FeedbackItem{
			Note:        f.Note,
			Comment:     f.Comment,
			OwnFeedback: f.CreatedBy == user.ID,
		})
	}
	return entity.NewPage(items, page, size, total), nil
}
