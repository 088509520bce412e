package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
	"github.com/thesrcielos/exambuddy/internal/question"
)

type QuestionHandler struct {
	generator *question.Generator
}

func NewQuestionHandler(generator *question.Generator) *QuestionHandler {
	return &QuestionHandler{generator: generator}
}

func (h *QuestionHandler) RegisterQuestionRoutes(g *echo.Group) {
	g.POST("/generate-question", h.GenerateHandler)
	g.POST("/evaluate-answer", h.EvaluateHandler)
}

// GenerateHandler passes the request context down so a client disconnect
// cancels the provider call.
func (h *QuestionHandler) GenerateHandler(c echo.Context) error {
	var req question.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation(INVALID_REQUEST)
	}
	q, err := h.generator.Generate(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, q)
}

func (h *QuestionHandler) EvaluateHandler(c echo.Context) error {
	var req question.EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation(INVALID_REQUEST)
	}
	res, err := question.Evaluate(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
