package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

type BookCacheStore struct {
	rdb       *redis.Client
	detailTTL time.Duration
	ratingTTL time.Duration
}

var _ contract.IBookCache = (*BookCacheStore)(nil)

func NewBookCacheStore(rdb *redis.Client) *BookCacheStore {
	return &BookCacheStore{
		rdb:       rdb,
		detailTTL: 60 * time.Minute,
		ratingTTL: 10 * time.Minute,
	}
}

func bookDetailKey(id string) string { return fmt.Sprintf("book:id:%s", id) }
func bookRatingKey(id string) string { return fmt.Sprintf("book:rating:%s", id) }

func (c *BookCacheStore) GetBook(ctx context.Context, id string) (*entity.Book, bool, error) {
	var book entity.Book
	ok, err := c.get(ctx, bookDetailKey(id), &book)
	if !ok || err != nil {
		return nil, false, err
	}
	return &book, true, nil
}

func (c *BookCacheStore) SetBook(ctx context.Context, book *entity.Book) error {
	return c.set(ctx, bookDetailKey(book.ID), book, c.detailTTL)
}

func (c *BookCacheStore) GetRatingStats(ctx context.Context, bookID string) (entity.RatingStats, bool, error) {
	var stats entity.RatingStats
	ok, err := c.get(ctx, bookRatingKey(bookID), &stats)
	if !ok || err != nil {
		return entity.RatingStats{}, false, err
	}
	return stats, true, nil
}

func (c *BookCacheStore) SetRatingStats(ctx context.Context, bookID string, stats entity.RatingStats) error {
	return c.set(ctx, bookRatingKey(bookID), stats, c.ratingTTL)
}

// InvalidateBook drops both the detail and the rating of a book.
func (c *BookCacheStore) InvalidateBook(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, bookDetailKey(id), bookRatingKey(id)).Err()
}

// get decodes key into dst. A missing or undecodable entry is a miss.
func (c *BookCacheStore) get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *BookCacheStore) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}
