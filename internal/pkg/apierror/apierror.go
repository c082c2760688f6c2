package apierror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an operation failure so callers can react without parsing
// the message (e.g. "try a smaller file" on timeout vs. "retry" on upstream).
type Kind string

const (
	KindValidation Kind = "validation_error"
	KindNotFound   Kind = "not_found"
	KindTimeout    Kind = "upstream_timeout"
	KindUpstream   Kind = "upstream_failure"
	KindConversion Kind = "conversion_error"
)

// Error is the structured error carried across operation boundaries.
type Error struct {
	Kind           Kind
	Message        string
	Detail         string
	UpstreamStatus int // HTTP/API status from the remote service, 0 if n/a
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation creates a validation error with a caller-facing message.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// NotFound creates a not-found error for the given entity description.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// HTTPStatus maps the error kind to the response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindTimeout:
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err as an {"error": ..., "message": ...} JSON body.
// Unclassified errors become a generic 500 without leaking internals.
func Respond(c *fiber.Ctx, err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "Unexpected error",
		})
	}

	body := fiber.Map{
		"error":   string(apiErr.Kind),
		"message": apiErr.Message,
	}
	if apiErr.Detail != "" {
		body["details"] = apiErr.Detail
	}
	if apiErr.UpstreamStatus != 0 {
		body["upstream_status"] = apiErr.UpstreamStatus
	}
	return c.Status(apiErr.HTTPStatus()).JSON(body)
}
