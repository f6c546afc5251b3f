package serverutils

import (
	"errors"
	"fmt"

	"rag-postgres-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

var validate = validator.New()

// ValidateRequest checks struct tags on a request DTO and converts the first
// violation into a 400 with a readable message.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("field '%s' failed validation '%s'", first.Field(), first.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

// ErrorHandlerMiddleware maps domain errors to HTTP statuses. Store
// credentials never appear in error chains, so messages are safe to return.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(Response{
				Status:  "error",
				Message: fiberErr.Message,
			})
		}

		code := fiber.StatusInternalServerError
		switch apperrors.KindOf(err) {
		case apperrors.KindConfiguration, apperrors.KindMalformedFilter:
			code = fiber.StatusBadRequest
		case apperrors.KindStoreUnavailable:
			code = fiber.StatusServiceUnavailable
		case apperrors.KindEmbeddingCapability, apperrors.KindGenerationCapability:
			code = fiber.StatusBadGateway
		}

		return c.Status(code).JSON(Response{
			Status:  "error",
			Message: err.Error(),
		})
	}
}
