package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"kidpoints/internal/model"
	"kidpoints/internal/service"
)

type PointHandler struct {
	svc service.PointService
}

func NewPointHandler(svc service.PointService) *PointHandler {
	return &PointHandler{svc: svc}
}

type PointResponse struct {
	ID          string       `json:"id"`
	Amount      int          `json:"amount"`
	Description string       `json:"description,omitempty"`
	UserID      string       `json:"userId"`
	GivenByID   string       `json:"givenById"`
	User        *UserSummary `json:"user,omitempty"`
	GivenBy     *UserSummary `json:"givenBy,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

func toPointResponse(p *model.Point) PointResponse {
	return PointResponse{
		ID:          p.ID,
		Amount:      p.Amount,
		Description: p.Description,
		UserID:      p.UserID,
		GivenByID:   p.GivenByID,
		User:        toUserSummary(p.User),
		GivenBy:     toUserSummary(p.GivenBy),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func (h *PointHandler) List(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	list, err := h.svc.ListForCaller(c.Request().Context(), caller, c.QueryParam("userId"))
	if err != nil {
		return jsonError(c, err)
	}
	resp := make([]PointResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toPointResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type createPointRequest struct {
	UserID      string `json:"userId"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

func (h *PointHandler) Create(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	var body createPointRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "valid amount is required"))
	}
	p, err := h.svc.Award(c.Request().Context(), caller, body.UserID, body.Amount, body.Description)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, toPointResponse(p))
}

func (h *PointHandler) Delete(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	id := c.QueryParam("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "point id is required"))
	}
	if err := h.svc.Revoke(c.Request().Context(), caller, id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
