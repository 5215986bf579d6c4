package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kidpoints/internal/service"
)

type AuthHandler struct {
	auth service.AuthService
	svc  service.UserService
}

func NewAuthHandler(auth service.AuthService, svc service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, svc: svc}
}

type loginRequest struct {
	// Parents send their email; kids their username. Email is accepted as an
	// alias so browser password managers keep working.
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var body loginRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	identifier := body.Username
	if identifier == "" {
		identifier = body.Email
	}
	token, u, err := h.auth.Login(c.Request().Context(), identifier, body.Password)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: toUserResponse(u)})
}

func (h *AuthHandler) Me(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	u, err := h.svc.Get(c.Request().Context(), caller.ID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}
