package generate

import (
	"fmt"
	"strings"
)

// Per-type output grammars. The markers 문제 {n}., 정답: and 해설: together
// with the bracketed upper-case type tags form the de facto wire format
// between this builder and the response parser; changing either side alone
// breaks round-tripping.
var questionFormats = map[QuestionType]string{
	MultipleChoice: `
For multiple-choice questions:
    - Provide exactly 4 options (a, b, c, d).
    - Place each option on a new line.
    - Do not repeat the options in the question text.
    - Use the following format:

문제 {n}. [Question]
a) [Option 1]
b) [Option 2]
c) [Option 3]
d) [Option 4]

정답: [Correct option]
해설: [Simple commentary]
`,
	ShortAnswer: `
For short answer questions:
    - Ensure that the answers length should be 1-5 words long.
    - Use the following format:

문제 {n}. [Question]

정답: [Correct answer]
해설: [Simple commentary]
`,
	TrueFalse: `
For true/false questions:
    - The answer should be either '참' or '거짓'.
    - Use the following format:

문제 {n}. [Question]

정답: [Correct answer]
해설: [Simple commentary]
`,
	FillInTheBlank: `
For fill-in-the-blank questions:
    - Do not include the answer within the blank in the question text.
    - Replace a key term or concept with '_____' in each question.
    - Ensure that the blank is for a single word or short phrase.
    - Generate questions that have exactly one blank to be filled in.
    - Do not use any other symbols such as '()', '{}', '<>', or '[]' to represent blanks.
    - Do not generate short answer questions in this format.
    - Use the following format:

문제 {n}. [Question]

정답: [Correct answer]
해설: [Simple commentary]
`,
}

// BuildPrompt renders the generation instruction for every type with a
// positive remaining count. The output is deterministic for a given input:
// types are emitted in canonical order and nothing else varies.
func BuildPrompt(remaining map[QuestionType]int) string {
	var counts strings.Builder
	var formats strings.Builder
	var tags []string
	for _, qt := range AllTypes {
		n, ok := remaining[qt]
		if !ok || n <= 0 {
			continue
		}
		fmt.Fprintf(&counts, "- %s: %d ", qt, n)
		fmt.Fprintf(&formats, "\n[%s]\n%s\n", qt.Tag(), strings.TrimSpace(questionFormats[qt]))
		tags = append(tags, "["+qt.Tag()+"]")
	}

	var b strings.Builder
	b.WriteString("\nGenerate questions and answers in Korean based on the given text for multiple question types.\n")
	b.WriteString("Adhere strictly to the following guidelines:\n\n")
	b.WriteString("1. Create EXACTLY the following number of questions for each type:\n")
	b.WriteString(strings.TrimSpace(counts.String()))
	b.WriteString("\n\n")
	b.WriteString("2. Each question must be directly and solely based on the provided text content.\n")
	b.WriteString("3. Do not invent, assume, or infer any additional information or context that is not explicitly present in the provided text.\n")
	b.WriteString("4. Ensure that all questions are unique and non-repetitive across all types.\n")
	b.WriteString("5. Do not include any question numbering or 'Question:', '[Question]' prefix.\n")
	b.WriteString("6. If the given text contains content related to programming languages, include coding-related questions where appropriate.\n")
	b.WriteString("7. Use clear and concise language.\n")
	b.WriteString("8. Ensure all text is in Korean, including code comments.\n")
	b.WriteString("9. Every questions and answers should separated never combine questions or answers.\n\n")
	b.WriteString("10. **STRICTLY** use the following format for each question type:\n")
	b.WriteString(formats.String())
	b.WriteString("\n11. Label each question clearly with its type (e.g., ")
	b.WriteString(strings.Join(tags, ", "))
	b.WriteString(").\n\n")
	b.WriteString("**IMPORTANT:** It is **CRUCIAL** to generate **EXACTLY** the specified number of questions for **EACH** type. Double-check your output before returning it.\n")
	return b.String()
}
