package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/dto"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/middleware"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/usecase"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it.
// Field level failures are reported in validationErrors keyed by JSON name.
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			apiErrorsTotal.WithLabelValues(kindLabel(entity.KindValidation)).Inc()
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:            "request validation failed",
				ValidationErrors: validationMessages(verrs),
			})
			return err
		}
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

func validationMessages(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is mandatory", fe.Field())
	case "email":
		return "email is not well formatted"
	case "isbn":
		return "isbn is not a valid ISBN-10 or ISBN-13"
	case "min":
		return fmt.Sprintf("%s should be %s characters long minimum", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
}

// pageParams reads ?page and ?size. Range checks are left to the usecases.
func pageParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		handleServiceError(c, entity.ErrInvalidPagination)
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(usecase.DefaultPageSize)))
	if err != nil {
		handleServiceError(c, entity.ErrInvalidPagination)
		return 0, 0, false
	}
	return page, size, true
}

// currentUser returns the authenticated caller or writes a 401.
func currentUser(c *gin.Context) (*entity.User, bool) {
	user, ok := middleware.Principal(c)
	if !ok {
		handleServiceError(c, entity.ErrUnauthenticated)
		return nil, false
	}
	return user, true
}
