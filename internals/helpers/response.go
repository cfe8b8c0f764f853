package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Every endpoint answers with the same envelope:
// success -> {result: "success", data, message}
// failure -> {result: "fail", data: null, message, code}

func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result":  "success",
		"data":    data,
		"message": "request successful",
	})
}

func Fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"result":  "fail",
		"data":    nil,
		"message": message,
		"code":    code,
	})
}

// JsonError funnels any error from a service into the failure envelope.
// Unclassified errors are reported as G0001 without leaking internals.
func JsonError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return Fail(c, appErr.Status, appErr.Code, appErr.Message)
	}
	if fe, ok := err.(*fiber.Error); ok {
		return Fail(c, fe.Code, ErrUnknown.Code, fe.Message)
	}
	logrus.WithError(err).Error("unhandled error")
	return Fail(c, ErrUnknown.Status, ErrUnknown.Code, ErrUnknown.Message)
}

// ValidationError renders validator.v10 failures field by field.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Fail(c, ErrInvalidRequest.Status, ErrInvalidRequest.Code, ErrInvalidRequest.Message)
	}

	errorsMap := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"result":  "fail",
		"data":    nil,
		"message": "validation failed",
		"code":    ErrInvalidRequest.Code,
		"errors":  errorsMap,
	})
}
