package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/dto"
)

// PrincipalKey is the gin context key holding the authenticated *entity.User.
const PrincipalKey = "principal"

// PublicPathPrefix is never inspected by JWTFilter.
const PublicPathPrefix = "/api/v1/auth"

// PrincipalResolver turns a bearer token into the user it was issued for.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, accessToken string) (*entity.User, error)
}

// JWTFilter attaches the principal when a valid bearer token is present.
// Requests without a usable token continue anonymously; RequireAuthenticated decides whether that is allowed.
func JWTFilter(resolver PrincipalResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, PublicPathPrefix) {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		user, err := resolver.ResolvePrincipal(c.Request.Context(), tokenString)
		if err != nil {
			log.Debug("bearer token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Next()
			return
		}

		c.Set(PrincipalKey, user)
		c.Next()
	}
}

// RequireAuthenticated aborts anonymous requests with 401.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Principal(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: entity.ErrUnauthenticated.Message,
			})
			return
		}
		c.Next()
	}
}

// Principal returns the user set by JWTFilter.
func Principal(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}
