package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
)

// Envelope is the uniform response wrapper. Every endpoint answers with
// it; auth endpoints additionally carry token and user at the top level,
// matching the frontend contract.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Token   string      `json:"token,omitempty"`
	User    interface{} `json:"user,omitempty"`
}

// respond writes a success envelope.
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps a domain error to its status code and writes a
// failure envelope. Unknown errors surface as a generic 500; raw error
// text never leaks for those.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, Envelope{
		Success: false,
		Message: httpErr.Message,
		Error:   httpErr.Code,
	})
}

// respondValidation writes a 400 failure envelope with a field-level
// message.
func respondValidation(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: message,
		Error:   "VALIDATION_ERROR",
	})
}
