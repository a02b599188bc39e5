package jwt

import (
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) usecase.JWTService {
	return &JWTServiceAdapter{mgr: mgr}
}

// GenerateAccessToken issues a token whose subject is the user's email.
func (a *JWTServiceAdapter) GenerateAccessToken(user *entity.User) (string, error) {
	return a.mgr.GenerateToken(user.Email, user.FullName(), user.Roles)
}

// ParseAccessToken validates an access token and returns Claims.
func (a *JWTServiceAdapter) ParseAccessToken(tokenStr string) (*entity.Claims, error) {
	return a.mgr.VerifyToken(tokenStr)
}
