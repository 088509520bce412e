package question

import "encoding/json"

// Question is a single multiple-choice item. Answer is always one of Choices.
type Question struct {
	Question    string   `json:"question" jsonschema:"description=The question text"`
	Choices     []string `json:"choices" jsonschema:"minItems=4,maxItems=4,description=Exactly four distinct answer options"`
	Answer      string   `json:"answer" jsonschema:"description=The correct option copied verbatim from choices"`
	Explanation string   `json:"explanation" jsonschema:"description=Why the answer is correct"`
}

type GenerateRequest struct {
	Topic   string `json:"topic"`
	Subject string `json:"subject"`
}

type EvaluateRequest struct {
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

type EvaluateResponse struct {
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
}

// SampleQuestion is what the mock LLM provider replays during local
// development.
var SampleQuestion = json.RawMessage(`{
	"question": "Which principle requires expenses to be recorded in the period they help generate revenue?",
	"choices": ["Matching principle", "Going concern", "Materiality", "Conservatism"],
	"answer": "Matching principle",
	"explanation": "The matching principle pairs expenses with the revenues they produce."
}`)
