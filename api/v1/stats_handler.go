package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/thesrcielos/exambuddy/api/middleware"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
	"github.com/thesrcielos/exambuddy/internal/stats"
)

type StatsHandler struct {
	service *stats.StatsService
}

func NewStatsHandler(service *stats.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) RegisterStatsRoutes(g *echo.Group) {
	g.GET("", h.GetStatsHandler)
	g.POST("", h.RecordAnswerHandler)
	g.POST("/reset", h.ResetStatsHandler)
	g.GET("/dashboard", h.DashboardHandler)
}

func (h *StatsHandler) GetStatsHandler(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	current, err := h.service.GetStats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, current)
}

func (h *StatsHandler) RecordAnswerHandler(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req stats.AnswerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("topic and correct (boolean) are required")
	}
	if req.Correct == nil {
		return apperrors.Validation("correct must be a boolean")
	}

	updated, err := h.service.RecordAnswer(c.Request().Context(), userID, req.Topic, *req.Correct)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *StatsHandler) ResetStatsHandler(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	if err := h.service.ResetStats(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats.ResetResponse{Status: "reset"})
}

func (h *StatsHandler) DashboardHandler(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	dashboard, err := h.service.GetDashboard(c.Request().Context(), userID, parseTopics(c.QueryParam("topics")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

func parseTopics(raw string) []string {
	if raw == "" {
		return nil
	}
	return lo.Compact(lo.Map(strings.Split(raw, ","), func(t string, _ int) string {
		return strings.TrimSpace(t)
	}))
}
