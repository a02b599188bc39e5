package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

// BookInput is the caller supplied part of a book. ID is set only when updating.
type BookInput struct {
	ID         string
	Title      string
	AuthorName string
	ISBN       string
	Synopsis   string
	Shareable  bool
}

// BookDetails is a book as presented to readers.
type BookDetails struct {
	Book      *entity.Book
	Rate      float64
	OwnerName string
	Cover     []byte
}

// BorrowedBook is a transaction joined with its book.
type BorrowedBook struct {
	Transaction *entity.BookTransaction
	Book        *entity.Book
	Rate        float64
}

type IBookUseCase interface {
	SaveBook(ctx context.Context, user *entity.User, input BookInput) (string, error)
	FindBookByID(ctx context.Context, user *entity.User, bookID string) (*BookDetails, error)
	FindAllBooks(ctx context.Context, user *entity.User, page, size int) (entity.Page[BookDetails], error)
	FindAllBooksByOwner(ctx context.Context, user *entity.User, page, size int) (entity.Page[BookDetails], error)
	FindAllBorrowedBooks(ctx context.Context, user *entity.User, page, size int) (entity.Page[BorrowedBook], error)
	FindAllReturnedBooks(ctx context.Context, user *entity.User, page, size int) (entity.Page[BorrowedBook], error)
	UpdateShareableStatus(ctx context.Context, user *entity.User, bookID string) (string, error)
	UpdateArchivedStatus(ctx context.Context, user *entity.User, bookID string) (string, error)
	UploadBookCover(ctx context.Context, user *entity.User, bookID string, data []byte, filename string) error
}

// ILendingUseCase drives the borrow, return and approve-return transitions.
type ILendingUseCase interface {
	BorrowBook(ctx context.Context, user *entity.User, bookID string) (string, error)
	ReturnBorrowedBook(ctx context.Context, user *entity.User, bookID string) (string, error)
	ApproveReturnBorrowedBook(ctx context.Context, user *entity.User, bookID string) (string, error)
}
