package question

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write practice questions for professional certification exams.
Return one multiple-choice question with exactly four distinct options.
The "answer" field must repeat the correct option exactly as written in "choices".
Keep the explanation to two or three sentences.`

func buildPrompt(req GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	if req.Subject != "" {
		fmt.Fprintf(&b, "Exam: %s\n", req.Subject)
	}
	b.WriteString("Write a question that tests understanding rather than recall of a definition.")
	return b.String()
}
