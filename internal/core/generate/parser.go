package generate

import (
	"regexp"
	"strings"

	"llm-quiz/config"
	"llm-quiz/pkg/logger"
)

var (
	// typeTagPattern matches a bracketed upper-case block label such as
	// [MULTIPLE-CHOICE] or [TRUE/FALSE].
	typeTagPattern = regexp.MustCompile(`\[([A-Z /-]+)\]`)
	// questionMarkerPattern separates the numbered questions inside a block.
	questionMarkerPattern = regexp.MustCompile(`문제\s*\d+\.\s*`)
	// answerMarkerPattern splits one question unit into question and answer.
	answerMarkerPattern = regexp.MustCompile(`정답:\s*`)
)

// normalizeTag maps a raw block label to its canonical QuestionType. The
// mapping is insensitive to case, spaces and slashes.
func normalizeTag(tag string) (QuestionType, bool) {
	key := strings.ToLower(strings.TrimSpace(tag))
	key = strings.ReplaceAll(key, " ", "-")
	key = strings.ReplaceAll(key, "/", "-")
	switch key {
	case "multiple-choice":
		return MultipleChoice, true
	case "short-answer":
		return ShortAnswer, true
	case "true-false":
		return TrueFalse, true
	case "fill-in-the-blank":
		return FillInTheBlank, true
	}
	return "", false
}

// ParseResponse splits raw model output into per-type raw question and answer
// strings. Blocks with unknown or unexpected tags are dropped with a warning,
// as are question units that lack the answer marker. The two returned maps
// are index-aligned per type.
func ParseResponse(raw string, want []QuestionType) (map[QuestionType][]string, map[QuestionType][]string) {
	questions := make(map[QuestionType][]string, len(want))
	answers := make(map[QuestionType][]string, len(want))
	wanted := make(map[QuestionType]bool, len(want))
	for _, qt := range want {
		questions[qt] = []string{}
		answers[qt] = []string{}
		wanted[qt] = true
	}

	tags := typeTagPattern.FindAllStringSubmatchIndex(raw, -1)
	for i, tag := range tags {
		label := raw[tag[2]:tag[3]]
		blockStart := tag[1]
		blockEnd := len(raw)
		if i+1 < len(tags) {
			blockEnd = tags[i+1][0]
		}
		content := strings.TrimSpace(raw[blockStart:blockEnd])

		qt, ok := normalizeTag(label)
		if !ok || !wanted[qt] {
			logger.Warn("%v: unknown question type %q in model output, block dropped", config.ModuleGenerate, label)
			continue
		}

		units := questionMarkerPattern.Split(content, -1)
		for _, unit := range units[1:] {
			loc := answerMarkerPattern.FindStringIndex(unit)
			if loc == nil {
				logger.Warn("%v: could not separate question and answer in %q block, item dropped", config.ModuleGenerate, qt)
				continue
			}
			q := strings.TrimSpace(unit[:loc[0]])
			a := strings.TrimSpace(unit[loc[1]:])
			questions[qt] = append(questions[qt], q)
			answers[qt] = append(answers[qt], a)
		}
	}
	return questions, answers
}
