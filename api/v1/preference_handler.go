package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/exambuddy/api/middleware"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
	"github.com/thesrcielos/exambuddy/internal/preference"
)

type PreferenceHandler struct {
	service *preference.PreferenceService
}

func NewPreferenceHandler(service *preference.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

func (h *PreferenceHandler) RegisterPreferenceRoutes(g *echo.Group) {
	g.GET("", h.GetPreferenceHandler)
	g.POST("", h.UpdatePreferenceHandler)
}

func (h *PreferenceHandler) GetPreferenceHandler(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	pref, err := h.service.GetPreference(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pref)
}

func (h *PreferenceHandler) UpdatePreferenceHandler(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req preference.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation(INVALID_REQUEST)
	}
	pref, err := h.service.UpdatePreference(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pref)
}
