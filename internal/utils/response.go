package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// DomainErrorResponse renders a *types.Error using its status hint.
// Storage failures are reported without detail.
func DomainErrorResponse(c *fiber.Ctx, err *types.Error) error {
	status := err.Status()
	message := err.Message
	if err.Kind == types.KindStorage {
		message = "Internal Server Error"
	}
	if err.Kind == types.KindAuth && (err.Reason == types.ReasonUnknownUser || err.Reason == types.ReasonWrongPassword) {
		message = "invalid username or password"
	}
	return ErrorResponse(c, message, status, string(err.Kind))
}

// MessageResponse sends a success response carrying only a message
func MessageResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(MessageResponseStruct{
		Message:   message,
		Ok:        true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// MessageResponseStruct defines the schema for delete responses
type MessageResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
}
