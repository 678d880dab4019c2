package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/types"
	"github.com/localnerve/foodtrack/internal/utils"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders every error in the common envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	var domainErr *types.Error
	if errors.As(err, &domainErr) {
		switch {
		case domainErr.Kind == types.KindStorage:
			log.Error().Err(err).Str("url", c.OriginalURL()).Msg("Storage failure")
		case domainErr.Kind == types.KindAuth:
			log.Info().Str("reason", string(domainErr.Reason)).Str("url", c.OriginalURL()).Msg(domainErr.Message)
		}
		return utils.DomainErrorResponse(c, domainErr)
	}

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		return utils.ErrorResponse(c, customErr.Message, customErr.Code, customErr.Type)
	}

	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	errorType := "unknown"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
		errorType = "http"
	} else {
		log.Error().Err(err).Str("url", c.OriginalURL()).Msg("Unhandled error")
	}

	return utils.ErrorResponse(c, message, code, errorType)
}
