package question

import (
	"fmt"
	"strings"

	"github.com/thesrcielos/exambuddy/internal/apperrors"
)

// Evaluate compares the answers ignoring case and surrounding whitespace.
func Evaluate(req EvaluateRequest) (*EvaluateResponse, error) {
	if strings.TrimSpace(req.UserAnswer) == "" || strings.TrimSpace(req.CorrectAnswer) == "" {
		return nil, apperrors.Validation("userAnswer and correctAnswer are required")
	}

	isCorrect := strings.EqualFold(strings.TrimSpace(req.UserAnswer), strings.TrimSpace(req.CorrectAnswer))

	var feedback string
	if isCorrect {
		feedback = "Correct! " + req.Explanation
	} else {
		feedback = fmt.Sprintf("Incorrect. The correct answer is %s. %s", req.CorrectAnswer, req.Explanation)
	}
	return &EvaluateResponse{
		IsCorrect: isCorrect,
		Feedback:  strings.TrimSpace(feedback),
	}, nil
}
