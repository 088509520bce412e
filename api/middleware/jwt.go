package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
	"github.com/thesrcielos/exambuddy/internal/user"
)

const userContextKey = "user"

func SetupJWTMiddleware(tokens *user.TokenIssuer) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(user.JwtCustomClaims)
		},
		SigningKey: tokens.Secret(),
		ContextKey: userContextKey,
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.NewAppError(http.StatusUnauthorized, "invalid or missing token", err)
		},
	})
}

// UserID returns the authenticated user's id. It fails when the route is not
// behind SetupJWTMiddleware or the token carries no userId.
func UserID(c echo.Context) (string, error) {
	token, ok := c.Get(userContextKey).(*jwt.Token)
	if !ok {
		return "", apperrors.Authentication("authentication required")
	}
	claims, ok := token.Claims.(*user.JwtCustomClaims)
	if !ok || claims.UserID == "" {
		return "", apperrors.Authentication("invalid token claims")
	}
	return claims.UserID, nil
}
