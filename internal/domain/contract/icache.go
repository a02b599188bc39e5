package contract

import (
	"context"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

// IBookCache caches book details by id.
type IBookCache interface {
	GetBook(ctx context.Context, id string) (*entity.Book, bool, error)
	SetBook(ctx context.Context, book *entity.Book) error
	GetRatingStats(ctx context.Context, bookID string) (entity.RatingStats, bool, error)
	SetRatingStats(ctx context.Context, bookID string, stats entity.RatingStats) error
	InvalidateBook(ctx context.Context, id string) error
}
