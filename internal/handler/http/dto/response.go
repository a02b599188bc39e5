package dto

import "github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"

// PageResponse is the JSON envelope of every paginated listing.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// ToPageResponse maps the page content with fn and copies the envelope.
func ToPageResponse[T, R any](p entity.Page[T], fn func(T) R) PageResponse[R] {
	mapped := entity.MapPage(p, fn)
	return PageResponse[R]{
		Content:       mapped.Content,
		Number:        mapped.Number,
		Size:          mapped.Size,
		TotalElements: mapped.TotalElements,
		TotalPages:    mapped.TotalPages,
		First:         mapped.First,
		Last:          mapped.Last,
	}
}

// IDResponse carries the id of the entity a command touched.
type IDResponse struct {
	ID string `json:"id"`
}

// MessageResponse is a generic response for success/error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	BusinessErrorCode        int               `json:"businessErrorCode,omitempty"`
	BusinessErrorDescription string            `json:"businessErrorDescription,omitempty"`
	Error                    string            `json:"error,omitempty"`
	ValidationErrors         map[string]string `json:"validationErrors,omitempty"`
}
