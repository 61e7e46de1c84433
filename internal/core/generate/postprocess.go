package generate

import (
	"regexp"
	"strings"

	"llm-quiz/config"
	"llm-quiz/pkg/logger"
)

var optionPattern = regexp.MustCompile(`[a-d]\).*`)

const explanationMarker = "해설:"

// splitAnswer separates the answer text from its explanation. The raw string
// arrives without the leading answer marker (the parser consumed it).
func splitAnswer(raw string) Answer {
	parts := strings.SplitN(raw, explanationMarker, 2)
	ans := Answer{Text: strings.TrimSpace(parts[0])}
	if len(parts) == 2 {
		ans.Explanation = strings.TrimSpace(parts[1])
	}
	return ans
}

// PostProcess applies the per-type structural rules to raw question/answer
// pairs and converts survivors into typed records. It is purely a filter:
// malformed items are dropped with a warning and nothing is repaired. The
// returned maps stay index-aligned per type.
func PostProcess(questions, answers map[QuestionType][]string) (map[QuestionType][]Question, map[QuestionType][]Answer) {
	outQ := make(map[QuestionType][]Question, len(questions))
	outA := make(map[QuestionType][]Answer, len(questions))

	for qt, rawQuestions := range questions {
		rawAnswers := answers[qt]
		outQ[qt] = []Question{}
		outA[qt] = []Answer{}

		for i, rawQ := range rawQuestions {
			if i >= len(rawAnswers) {
				break
			}
			ans := splitAnswer(rawAnswers[i])
			if strings.TrimSpace(rawQ) == "" || ans.Text == "" {
				logger.Warn("%v: empty question or answer text for %q, item dropped", config.ModuleGenerate, qt)
				continue
			}

			switch qt {
			case MultipleChoice:
				options := optionPattern.FindAllString(rawQ, -1)
				if len(options) != 4 {
					logger.Warn("%v: multiple-choice question does not have exactly 4 options (%d), item dropped", config.ModuleGenerate, len(options))
					continue
				}
				stem := strings.TrimSpace(optionPattern.ReplaceAllString(rawQ, ""))
				for j := range options {
					options[j] = strings.TrimSpace(options[j])
				}
				outQ[qt] = append(outQ[qt], Question{Type: qt, Text: stem, Options: options})
				outA[qt] = append(outA[qt], ans)

			case FillInTheBlank:
				if strings.Count(rawQ, "_") < 2 {
					logger.Warn("%v: fill-in-the-blank question does not contain a blank, item dropped", config.ModuleGenerate)
					continue
				}
				outQ[qt] = append(outQ[qt], Question{Type: qt, Text: strings.TrimSpace(rawQ)})
				outA[qt] = append(outA[qt], ans)

			case ShortAnswer, TrueFalse:
				outQ[qt] = append(outQ[qt], Question{Type: qt, Text: strings.TrimSpace(rawQ)})
				outA[qt] = append(outA[qt], ans)

			default:
				logger.Warn("%v: unknown question type %q, item dropped", config.ModuleGenerate, qt)
			}
		}
	}
	return outQ, outA
}
