package mocks

import (
	"context"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

// MockBookUsecase returns canned pages and records the last call's input.
type MockBookUsecase struct {
	Err error

	Details      *usecasecontract.BookDetails
	BooksPage    entity.Page[usecasecontract.BookDetails]
	BorrowedPage entity.Page[usecasecontract.BorrowedBook]
	SavedID      string

	LastUser     *entity.User
	LastInput    usecasecontract.BookInput
	LastBookID   string
	LastPage     int
	LastSize     int
	UploadedData []byte
	UploadedName string
}

var _ usecasecontract.IBookUseCase = (*MockBookUsecase)(nil)

func NewMockBookUsecase() *MockBookUsecase {
	book := &entity.Book{
		ID:         "book-1",
		Title:      "Dune",
		AuthorName: "Frank Herbert",
		ISBN:       "9780441172719",
		Synopsis:   "Spice.",
		Shareable:  true,
		OwnerID:    "owner-id",
	}
	details := usecasecontract.BookDetails{Book: book, Rate: 4.5, OwnerName: "Paul Atreides"}
	return &MockBookUsecase{
		Details:   &details,
		BooksPage: entity.NewPage([]usecasecontract.BookDetails{details}, 0, 1, 1),
		BorrowedPage: entity.NewPage([]usecasecontract.BorrowedBook{{
			Transaction: &entity.BookTransaction{ID: "tx-1", BookID: book.ID, UserID: "mock-user-id", Returned: true},
			Book:        book,
			Rate:        4.5,
		}}, 0, 10, 1),
		SavedID: "book-1",
	}
}

func (m *MockBookUsecase) SaveBook(ctx context.Context, user *entity.User, input usecasecontract.BookInput) (string, error) {
	m.LastUser, m.LastInput = user, input
	if m.Err != nil {
		return "", m.Err
	}
	return m.SavedID, nil
}

func (m *MockBookUsecase) FindBookByID(ctx context.Context, user *entity.User, bookID string) (*usecasecontract.BookDetails, error) {
	m.LastUser, m.LastBookID = user, bookID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Details, nil
}

func (m *MockBookUsecase) FindAllBooks(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BookDetails], error) {
	return m.books(user, page, size)
}

func (m *MockBookUsecase) FindAllBooksByOwner(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BookDetails], error) {
	return m.books(user, page, size)
}

func (m *MockBookUsecase) FindAllBorrowedBooks(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BorrowedBook], error) {
	return m.borrowed(user, page, size)
}

func (m *MockBookUsecase) FindAllReturnedBooks(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BorrowedBook], error) {
	return m.borrowed(user, page, size)
}

func (m *MockBookUsecase) UpdateShareableStatus(ctx context.Context, user *entity.User, bookID string) (string, error) {
	return m.toggle(user, bookID)
}

func (m *MockBookUsecase) UpdateArchivedStatus(ctx context.Context, user *entity.User, bookID string) (string, error) {
	return m.toggle(user, bookID)
}

func (m *MockBookUsecase) UploadBookCover(ctx context.Context, user *entity.User, bookID string, data []byte, filename string) error {
	m.LastUser, m.LastBookID = user, bookID
	m.UploadedData, m.UploadedName = data, filename
	return m.Err
}

func (m *MockBookUsecase) books(user *entity.User, page, size int) (entity.Page[usecasecontract.BookDetails], error) {
	m.LastUser, m.LastPage, m.LastSize = user, page, size
	if m.Err != nil {
		return entity.Page[usecasecontract.BookDetails]{}, m.Err
	}
	return m.BooksPage, nil
}

func (m *MockBookUsecase) borrowed(user *entity.User, page, size int) (entity.Page[usecasecontract.BorrowedBook], error) {
	m.LastUser, m.LastPage, m.LastSize = user, page, size
	if m.Err != nil {
		return entity.Page[usecasecontract.BorrowedBook]{}, m.Err
	}
	return m.BorrowedPage, nil
}

func (m *MockBookUsecase) toggle(user *entity.User, bookID string) (string, error) {
	m.LastUser, m.LastBookID = user, bookID
	if m.Err != nil {
		return "", m.Err
	}
	return bookID, nil
}

// MockLendingUsecase answers every transition with TransactionID or Err.
type MockLendingUsecase struct {
	Err           error
	TransactionID string
	LastBookID    string
}

var _ usecasecontract.ILendingUseCase = (*MockLendingUsecase)(nil)

func NewMockLendingUsecase() *MockLendingUsecase {
	return &MockLendingUsecase{TransactionID: "tx-1"}
}

func (m *MockLendingUsecase) BorrowBook(ctx context.Context, user *entity.User, bookID string) (string, error) {
	return m.transition(bookID)
}

func (m *MockLendingUsecase) ReturnBorrowedBook(ctx context.Context, user *entity.User, bookID string) (string, error) {
	return m.transition(bookID)
}

func (m *MockLendingUsecase) ApproveReturnBorrowedBook(ctx context.Context, user *entity.User, bookID string) (string, error) {
	return m.transition(bookID)
}

func (m *MockLendingUsecase) transition(bookID string) (string, error) {
	m.LastBookID = bookID
	if m.Err != nil {
		return "", m.Err
	}
	return m.TransactionID, nil
}
