package common

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response shape returned by every handler. The HTTP
// status code always mirrors the Status field.
type Envelope struct {
	Status       int `json:"status"`
	ResponseData any `json:"responseData"`
	Errors       any `json:"errors"`
}

// Respond writes a success envelope.
func Respond(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Status: status, ResponseData: data, Errors: nil})
}

// Fail writes a failure envelope derived from a domain error. Extra messages
// are appended after the error's own message.
func Fail(c echo.Context, err error, messages ...string) error {
	status := StatusOf(err)
	msgs := make([]string, 0, len(messages)+1)
	if err != nil {
		msgs = append(msgs, err.Error())
	}
	msgs = append(msgs, messages...)
	return c.JSON(status, Envelope{Status: status, ResponseData: nil, Errors: msgs})
}

// FailStatus writes a failure envelope with an explicit status code.
func FailStatus(c echo.Context, status int, messages ...string) error {
	return c.JSON(status, Envelope{Status: status, ResponseData: nil, Errors: messages})
}

// FailFields writes a validation failure with a per-field error payload.
func FailFields(c echo.Context, status int, fields map[string]string) error {
	return c.JSON(status, Envelope{Status: status, ResponseData: nil, Errors: fields})
}
