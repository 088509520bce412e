package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/thesrcielos/exambuddy/api/middleware"
	v1 "github.com/thesrcielos/exambuddy/api/v1"
	"github.com/thesrcielos/exambuddy/internal/preference"
	"github.com/thesrcielos/exambuddy/internal/question"
	"github.com/thesrcielos/exambuddy/internal/stats"
	"github.com/thesrcielos/exambuddy/internal/user"
	"github.com/thesrcielos/exambuddy/websocket"
)

type Dependencies struct {
	Tokens      *user.TokenIssuer
	Users       *user.UserService
	Stats       *stats.StatsService
	Preferences *preference.PreferenceService
	Questions   *question.Generator
	// Live is optional; without it the websocket route is not mounted.
	Live *websocket.Handler
	// RequestLogging enables echo's access log.
	RequestLogging bool
}

func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.HTTPErrorHandler

	if deps.RequestLogging {
		e.Use(echomw.Logger())
	}
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	authed := middleware.SetupJWTMiddleware(deps.Tokens)
	api := e.Group("/api")

	v1.NewUserHandler(deps.Users).RegisterUserRoutes(api.Group("/auth"), authed)

	if deps.Live != nil {
		// outside the JWT group: the token arrives as a query param
		api.GET("/user-stats/live", deps.Live.Handle)
	}
	v1.NewStatsHandler(deps.Stats).RegisterStatsRoutes(api.Group("/user-stats", authed))

	v1.NewPreferenceHandler(deps.Preferences).RegisterPreferenceRoutes(api.Group("/user-preference", authed))
	v1.NewQuestionHandler(deps.Questions).RegisterQuestionRoutes(api)

	return e
}
