package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/exambuddy/api/middleware"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
	"github.com/thesrcielos/exambuddy/internal/user"
)

const INVALID_REQUEST = "invalid request"

type UserHandler struct {
	service *user.UserService
}

func NewUserHandler(service *user.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterUserRoutes mounts the public auth routes. authed is the group
// guarded by the JWT middleware.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, authed echo.MiddlewareFunc) {
	g.POST("/register", h.RegisterHandler)
	g.POST("/login", h.LoginHandler)
	g.GET("/me", h.MeHandler, authed)
}

func (h *UserHandler) RegisterHandler(c echo.Context) error {
	var creds user.Credentials
	if err := c.Bind(&creds); err != nil {
		return apperrors.Validation(INVALID_REQUEST)
	}
	res, err := h.service.Register(c.Request().Context(), creds)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *UserHandler) LoginHandler(c echo.Context) error {
	var creds user.Credentials
	if err := c.Bind(&creds); err != nil {
		return apperrors.Validation(INVALID_REQUEST)
	}
	res, err := h.service.Login(c.Request().Context(), creds)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *UserHandler) MeHandler(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	found, err := h.service.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, found)
}
