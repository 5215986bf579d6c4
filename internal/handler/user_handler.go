package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"kidpoints/internal/model"
	"kidpoints/internal/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type UserResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Email         *string `json:"email,omitempty"`
	ChildUsername *string `json:"childUsername,omitempty"`
	Avatar        string  `json:"avatar"`
	ParentID      *string `json:"parentId,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

type UserSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         *string `json:"email,omitempty"`
	ChildUsername *string `json:"childUsername,omitempty"`
	Avatar        string  `json:"avatar"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Role:          string(u.Role),
		Email:         u.Email,
		ChildUsername: u.ChildUsername,
		Avatar:        u.Avatar,
		ParentID:      u.ParentID,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

func toUserSummary(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		ChildUsername: u.ChildUsername,
		Avatar:        u.Avatar,
	}
}

type registerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ChildUsername string `json:"childUsername"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	ParentID      string `json:"parentId"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var body registerRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}

	var (
		u   *model.User
		err error
	)
	switch model.Role(body.Role) {
	case model.RoleParent:
		u, err = h.svc.RegisterParent(c.Request().Context(), body.Name, body.Email, body.Password)
	case model.RoleKid:
		if body.ParentID == "" {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "parentId is required for kids"))
		}
		u, err = h.svc.RegisterChild(c.Request().Context(), body.ParentID, body.Name, body.ChildUsername, body.Password)
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "role must be PARENT or KID"))
	}
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

type createChildRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type createChildResponse struct {
	UserResponse
	// Echoed back exactly once so the parent can hand them to the kid.
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) CreateChild(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	if caller.Role != model.RoleParent {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "parent role required"))
	}
	var body createChildRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.RegisterChild(c.Request().Context(), caller.ID, body.Name, body.Username, body.Password)
	if err != nil {
		return jsonError(c, err)
	}
	resp := createChildResponse{UserResponse: toUserResponse(u)}
	if u.ChildUsername != nil {
		resp.Username = *u.ChildUsername
	}
	if u.PlainPassword != nil {
		resp.Password = *u.PlainPassword
	}
	return c.JSON(http.StatusCreated, resp)
}

type childSummaryResponse struct {
	UserResponse
	TotalPoints int64 `json:"totalPoints"`
}

func (h *UserHandler) ListChildren(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	children, err := h.svc.ListChildren(c.Request().Context(), caller)
	if err != nil {
		return jsonError(c, err)
	}
	resp := make([]childSummaryResponse, 0, len(children))
	for _, child := range children {
		resp = append(resp, childSummaryResponse{
			UserResponse: toUserResponse(&child.User),
			TotalPoints:  child.TotalPoints,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type childCredentialsResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ChildUsername string `json:"childUsername"`
	PlainPassword string `json:"plainPassword"`
	CreatedAt     string `json:"createdAt"`
}

func (h *UserHandler) Credentials(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	creds, err := h.svc.Credentials(c.Request().Context(), caller)
	if err != nil {
		return jsonError(c, err)
	}
	children := make([]childCredentialsResponse, 0, len(creds))
	for _, cred := range creds {
		children = append(children, childCredentialsResponse{
			ID:            cred.User.ID,
			Name:          cred.User.Name,
			ChildUsername: cred.Username,
			PlainPassword: cred.PlainPassword,
			CreatedAt:     cred.User.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"children": children})
}

func (h *UserHandler) DeleteChild(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	if err := h.svc.DeleteChild(c.Request().Context(), caller, c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
