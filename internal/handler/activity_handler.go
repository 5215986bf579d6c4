package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"kidpoints/internal/model"
	"kidpoints/internal/service"
)

type ActivityHandler struct {
	svc service.ActivityService
}

func NewActivityHandler(svc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

type ActivityRequestResponse struct {
	ID            string         `json:"id"`
	Activity      string         `json:"activity"`
	Description   string         `json:"description"`
	ActivityDate  string         `json:"activityDate"`
	Status        string         `json:"status"`
	RequestedByID string         `json:"requestedById"`
	RequestedBy   *UserSummary   `json:"requestedBy,omitempty"`
	ReviewedBy    *UserSummary   `json:"reviewedBy,omitempty"`
	ReviewedAt    *string        `json:"reviewedAt,omitempty"`
	PointID       *string        `json:"pointId,omitempty"`
	Point         *PointResponse `json:"point,omitempty"`
	CreatedAt     string         `json:"createdAt"`
}

func toActivityRequestResponse(ar *model.ActivityRequest) ActivityRequestResponse {
	resp := ActivityRequestResponse{
		ID:            ar.ID,
		Activity:      ar.Activity,
		Description:   ar.Description,
		ActivityDate:  ar.ActivityDate.Format("2006-01-02"),
		Status:        string(ar.Status),
		RequestedByID: ar.RequestedByID,
		RequestedBy:   toUserSummary(ar.RequestedBy),
		ReviewedBy:    toUserSummary(ar.ReviewedBy),
		PointID:       ar.PointID,
		CreatedAt:     ar.CreatedAt.Format(time.RFC3339),
	}
	if ar.ReviewedAt != nil {
		val := ar.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &val
	}
	if ar.Point != nil {
		pt := toPointResponse(ar.Point)
		resp.Point = &pt
	}
	return resp
}

func (h *ActivityHandler) List(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	list, err := h.svc.ListForCaller(c.Request().Context(), caller)
	if err != nil {
		return jsonError(c, err)
	}
	resp := make([]ActivityRequestResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toActivityRequestResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type submitRequest struct {
	Activity     string `json:"activity"`
	Description  string `json:"description"`
	ActivityDate string `json:"activityDate"`
	ChildID      string `json:"childId"`
}

func (h *ActivityHandler) Submit(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	var body submitRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	activityDate, err := parseDate(body.ActivityDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid activityDate"))
	}
	ar, err := h.svc.Submit(c.Request().Context(), caller, service.SubmitInput{
		Activity:     body.Activity,
		Description:  body.Description,
		ActivityDate: activityDate,
		ChildID:      body.ChildID,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, toActivityRequestResponse(ar))
}

type reviewRequest struct {
	Status string `json:"status"`
	Points int    `json:"points"`
}

func (h *ActivityHandler) Review(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing session"))
	}
	var body reviewRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	ar, err := h.svc.Review(c.Request().Context(), caller, c.Param("id"), model.ActivityStatus(body.Status), body.Points)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toActivityRequestResponse(ar))
}

// parseDate accepts a bare date or a full RFC3339 timestamp; clients send both.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
