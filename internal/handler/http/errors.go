package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/dto"
)

// handleServiceError writes the error body for err and aborts the request.
// Anything that is not an *entity.AppError is treated as internal and its message is hidden.
func handleServiceError(c *gin.Context, err error) {
	var appErr *entity.AppError
	if !errors.As(err, &appErr) || appErr.Kind == entity.KindInternal {
		_ = c.Error(err)
		apiErrorsTotal.WithLabelValues(kindLabel(entity.KindInternal)).Inc()
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "internal error, please contact the admin",
		})
		return
	}

	apiErrorsTotal.WithLabelValues(kindLabel(appErr.Kind)).Inc()
	resp := dto.ErrorResponse{Error: appErr.Message}
	if appErr.Code != entity.CodeNone {
		resp.BusinessErrorCode = int(appErr.Code)
		resp.BusinessErrorDescription = appErr.Code.Description()
	}
	c.AbortWithStatusJSON(statusFor(appErr), resp)
}

func statusFor(appErr *entity.AppError) int {
	switch appErr.Kind {
	case entity.KindValidation:
		return http.StatusBadRequest
	case entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindPermission:
		return http.StatusForbidden
	case entity.KindConflict:
		return http.StatusConflict
	case entity.KindAuthentication:
		switch appErr.Code {
		case entity.CodeAccountLocked, entity.CodeAccountDisabled:
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func kindLabel(kind entity.ErrorKind) string {
	switch kind {
	case entity.KindValidation:
		return "validation"
	case entity.KindNotFound:
		return "not_found"
	case entity.KindPermission:
		return "permission"
	case entity.KindConflict:
		return "conflict"
	case entity.KindAuthentication:
		return "authentication"
	}
	return "internal"
}
