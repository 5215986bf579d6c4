package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"kidpoints/internal/model"
	"kidpoints/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

func callerFromContext(c echo.Context) (service.Caller, bool) {
	uid, _ := c.Get("uid").(string)
	role, _ := c.Get("role").(string)
	if uid == "" || role == "" {
		return service.Caller{}, false
	}
	return service.Caller{ID: uid, Role: model.Role(role)}, true
}

func jsonError(c echo.Context, err error) error {
	var (
		status int
		code   string
	)
	switch {
	case errors.Is(err, service.ErrValidation):
		status, code = http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		status, code = http.StatusConflict, "conflict"
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "internal server error"))
	}
	return c.JSON(status, NewErrorResponse(code, err.Error()))
}
