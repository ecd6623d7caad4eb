package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const statusSuccess = "success"

// successResponse is the envelope for every 2xx body: {status, code, data}.
type successResponse struct {
	Status string `json:"status" example:"success"`
	Code   int    `json:"code" example:"200"`
	Data   any    `json:"data,omitempty"`
}

// errorResponse documents the error envelope rendered by the HTTP error handler.
type errorResponse struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"401"`
	Message string `json:"message" example:"not authorized"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, successResponse{Status: statusSuccess, Code: code, Data: data})
}

// bindAndValidate decodes the body (and query params) into req and runs the
// registered validator. Both failures are 400s.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
