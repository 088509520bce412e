package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HTTPErrorHandler renders every error as {"error": ...}.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := ErrorResponse{Error: "internal server error"}

	if appErr, ok := apperrors.As(err); ok {
		code = appErr.Code
		body = ErrorResponse{Error: appErr.Message, Details: appErr.Details}
		if code >= http.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}
	} else if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		body = ErrorResponse{Error: fmt.Sprint(he.Message)}
	} else {
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, body)
	}
	if writeErr != nil {
		log.Println("Error writing error response:", writeErr)
	}
}
