package grading

import (
	"context"
	"fmt"
	"strings"

	"llm-quiz/config"
	"llm-quiz/internal/core/generate"
	"llm-quiz/pkg/logger"
)

// CheckAnswer asks the model server whether a user's answer matches the
// correct one in meaning. It reuses the generation client; the judge prompt
// asks for a bare True/False verdict.
func CheckAnswer(ctx context.Context, client generate.ModelClient, userAnswer, correctAnswer string, questionType generate.QuestionType) (bool, error) {
	prompt := fmt.Sprintf(
		"You are an intelligent assistant that evaluates the similarity between two answers based on their meaning. "+
			"Given a user's answer and the correct answer for a %s question, determine if the user's answer is correct. "+
			"If the user's answer is not exist, None or blank, please reply with 'False'.\n\n"+
			"Please reply with 'True' if the user's answer is correct or really similar to the correct answer, otherwise reply with 'False'.",
		questionType,
	)
	contextText := fmt.Sprintf("Correct answer: %s\nUser's answer: %s\n", correctAnswer, userAnswer)

	response, err := client.Complete(ctx, prompt, contextText)
	if err != nil {
		logger.Error(err, "%v: answer check call failed", config.ModuleGrading)
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "true", "참", "정답":
		return true, nil
	}
	return false, nil
}
