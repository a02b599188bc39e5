package contract

import (
	"context"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

type IBookRepository interface {
	CreateBook(ctx context.Context, book *entity.Book) error
	UpdateBook(ctx context.Context, book *entity.Book) error
	GetBookByID(ctx context.Context, id string) (*entity.Book, error)
	GetBooksByIDs(ctx context.Context, ids []string) (map[string]*entity.Book, error)
	// FindDisplayableBooks lists shareable, non-archived books not owned by excludeOwnerID, newest first.
	FindDisplayableBooks(ctx context.Context, excludeOwnerID string, page entity.PageRequest) ([]*entity.Book, int64, error)
	FindBooksByOwner(ctx context.Context, ownerID string, page entity.PageRequest) ([]*entity.Book, int64, error)
}

type IFeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback *entity.Feedback) error
	FindFeedbacksByBook(ctx context.Context, bookID string, page entity.PageRequest) ([]*entity.Feedback, int64, error)
	// RatingStatsByBooks aggregates note sum and count per book id.
	RatingStatsByBooks(ctx context.Context, bookIDs []string) (map[string]entity.RatingStats, error)
}

type IBookTransactionRepository interface {
	// CreateTransaction inserts an open transaction; it returns entity.ErrBookAlreadyBorrowed
	// when one is already open for the same book and user.
	CreateTransaction(ctx context.Context, tx *entity.BookTransaction) error
	HasOpenTransaction(ctx context.Context, bookID, userID string) (bool, error)
	// MarkReturned flips returned on the open transaction of (bookID, userID).
	MarkReturned(ctx context.Context, bookID, userID string) (*entity.BookTransaction, error)
	// MarkReturnApproved flips returnApproved on a returned, unapproved transaction of a book owned by ownerID.
	MarkReturnApproved(ctx context.Context, bookID, ownerID string) (*entity.BookTransaction, error)
	FindBorrowedByUser(ctx context.Context, userID string, page entity.PageRequest) ([]*entity.BookTransaction, int64, error)
	FindReturnedToOwner(ctx context.Context, ownerID string, page entity.PageRequest) ([]*entity.BookTransaction, int64, error)
}
