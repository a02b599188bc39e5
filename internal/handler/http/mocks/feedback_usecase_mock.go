package mocks

import (
	"context"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

type MockFeedbackUsecase struct {
	Err  error
	Page entity.Page[usecasecontract.FeedbackItem]

	LastBookID  string
	LastNote    float64
	LastComment string
}

var _ usecasecontract.IFeedbackUseCase = (*MockFeedbackUsecase)(nil)

func NewMockFeedbackUsecase() *MockFeedbackUsecase {
	return &MockFeedbackUsecase{
		Page: entity.NewPage([]usecasecontract.FeedbackItem{
			{Note: 4, Comment: "great", OwnFeedback: true},
			{Note: 2, Comment: "meh"},
		}, 0, 10, 2),
	}
}

func (m *MockFeedbackUsecase) SaveFeedback(ctx context.Context, user *entity.User, bookID string, note float64, comment string) (string, error) {
	m.LastBookID, m.LastNote, m.LastComment = bookID, note, comment
	if m.Err != nil {
		return "", m.Err
	}
	return "feedback-1", nil
}

func (m *MockFeedbackUsecase) FindAllFeedbacksByBook(ctx context.Context, user *entity.User, bookID string, page, size int) (entity.Page[usecasecontract.FeedbackItem], error) {
	m.LastBookID = bookID
	if m.Err != nil {
		return entity.Page[usecasecontract.FeedbackItem]{}, m.Err
	}
	return m.Page, nil
}
