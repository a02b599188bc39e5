package usecase

import "github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func newPageRequest(page, size int) (entity.PageRequest, error) {
	if page < 0 || size < 1 || size > MaxPageSize {
		return entity.PageRequest{}, entity.ErrInvalidPagination
	}
	return entity.PageRequest{Page: page, Size: size}, nil
}
