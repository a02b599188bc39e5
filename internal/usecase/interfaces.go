package usecase

import (
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

// JWTService defines the interface for JWT operations.
type JWTService interface {
	GenerateAccessToken(user *entity.User) (string, error)
	ParseAccessToken(token string) (*entity.Claims, error)
}
