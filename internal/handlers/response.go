package handlers

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response shape. The error detail is only exposed
// outside production.
type Envelope struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
	Count    *int64      `json:"count,omitempty"`
	Error    string      `json:"error,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
}

// Responder is embedded by every handler to carry the environment gate.
type Responder struct {
	Production bool
}

func (r Responder) ok(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Envelope{Success: true, Message: message, Data: data})
}

func (r Responder) okCount(c echo.Context, code int, message string, data interface{}, count int64) error {
	return c.JSON(code, Envelope{Success: true, Message: message, Data: data, Count: &count})
}

func (r Responder) okWarn(c echo.Context, code int, message string, data interface{}, warnings []string) error {
	return c.JSON(code, Envelope{Success: true, Message: message, Data: data, Warnings: warnings})
}

func (r Responder) fail(c echo.Context, code int, message string, err error) error {
	env := Envelope{Success: false, Message: message}
	if err != nil && !r.Production {
		env.Error = err.Error()
	}
	return c.JSON(code, env)
}
