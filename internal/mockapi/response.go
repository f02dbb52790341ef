package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Haleralex/storefront/internal/pkg/apierror"
)

// ============================================
// Error Envelope
// ============================================

// Error отправляет {message, details?, traceId} со статусом status.
func Error(c *gin.Context, status int, message string, details ...apierror.ErrorDetail) {
	c.AbortWithStatusJSON(status, apierror.ErrorResponse{
		Message: message,
		Details: details,
		TraceID: uuid.NewString(),
	})
}

// NotFoundResponse создаёт ответ для 404.
func NotFoundResponse(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// BadRequestResponse создаёт ответ для некорректного запроса.
func BadRequestResponse(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalErrorResponse создаёт ответ для внутренней ошибки.
func InternalErrorResponse(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// ValidationErrorResponse - 400 "Validation failed" with one detail per field.
func ValidationErrorResponse(c *gin.Context, details []apierror.ErrorDetail) {
	Error(c, http.StatusBadRequest, "Validation failed", details...)
}

// HandleStoreError преобразует ошибку хранилища в HTTP ответ.
func HandleStoreError(c *gin.Context, err error) {
	var f *Failure
	if errors.As(err, &f) {
		Error(c, f.Status, f.Message)
		return
	}
	_ = c.Error(err)
	InternalErrorResponse(c)
}

// HandleBindError answers a failed ShouldBindJSON.
func HandleBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		BadRequestResponse(c, "Malformed JSON request")
		return
	}

	details := make([]apierror.ErrorDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apierror.ErrorDetail{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	ValidationErrorResponse(c, details)
}

// fieldMessage mirrors the wording of bean validation messages.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "min":
		return "size must be at least " + fe.Param()
	case "max":
		return "size must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "currency_code":
		return "must be a 3-letter ISO currency code"
	default:
		return "is invalid"
	}
}
