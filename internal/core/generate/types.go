package generate

import "strings"

// QuestionType discriminates the four supported question shapes. The string
// value doubles as the canonical key used in prompts, parsing and storage.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	ShortAnswer    QuestionType = "short answer"
	TrueFalse      QuestionType = "true/false"
	FillInTheBlank QuestionType = "fill-in-the-blank"
)

// AllTypes fixes the canonical ordering. Prompt rendering and result
// application iterate in this order so a given input always produces the same
// prompt and the same apply order.
var AllTypes = []QuestionType{MultipleChoice, ShortAnswer, TrueFalse, FillInTheBlank}

func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, ShortAnswer, TrueFalse, FillInTheBlank:
		return true
	}
	return false
}

// Tag returns the upper-case block label the model is told to emit, without
// brackets, e.g. "MULTIPLE-CHOICE".
func (t QuestionType) Tag() string {
	return strings.ToUpper(string(t))
}

// Question is one validated question. Options holds exactly 4 entries for
// multiple-choice and is nil for every other type.
type Question struct {
	Type    QuestionType
	Text    string
	Options []string
}

// Answer pairs the answer text with its explanation.
type Answer struct {
	Text        string
	Explanation string
}

// QA bundles a banked question with its answer in the extra pool.
type QA struct {
	Question Question
	Answer   Answer
}

// Quotas maps subtopic -> question type -> target count. Callers that want a
// substitution surplus inflate the counts before handing them in.
type Quotas map[string]map[QuestionType]int

// Inflate returns a copy of q with every count multiplied by factor and
// truncated, the caller-side surplus convention of the platform.
func (q Quotas) Inflate(factor float64) Quotas {
	if factor <= 0 {
		factor = 1
	}
	out := make(Quotas, len(q))
	for sub, types := range q {
		out[sub] = make(map[QuestionType]int, len(types))
		for qt, n := range types {
			out[sub][qt] = int(float64(n) * factor)
		}
	}
	return out
}

// Result accumulates generated output per (subtopic, question type).
// Questions and Answers stay index-aligned at all times; Extras holds the
// overflow banked for later substitution.
type Result struct {
	Questions map[string]map[QuestionType][]Question
	Answers   map[string]map[QuestionType][]Answer
	Extras    map[string]map[QuestionType][]QA
}

func NewResult(quotas Quotas) *Result {
	r := &Result{
		Questions: make(map[string]map[QuestionType][]Question, len(quotas)),
		Answers:   make(map[string]map[QuestionType][]Answer, len(quotas)),
		Extras:    make(map[string]map[QuestionType][]QA, len(quotas)),
	}
	for sub, types := range quotas {
		r.Questions[sub] = make(map[QuestionType][]Question, len(types))
		r.Answers[sub] = make(map[QuestionType][]Answer, len(types))
		r.Extras[sub] = make(map[QuestionType][]QA, len(types))
		for qt := range types {
			r.Questions[sub][qt] = []Question{}
			r.Answers[sub][qt] = []Answer{}
			r.Extras[sub][qt] = []QA{}
		}
	}
	return r
}

func (r *Result) collected(sub string, qt QuestionType) int {
	return len(r.Questions[sub][qt])
}

// apply appends up to remaining validated items to the collected sequences
// and banks the surplus in the extra pool, preserving arrival order.
func (r *Result) apply(sub string, qt QuestionType, remaining int, qs []Question, as []Answer) {
	if remaining <= 0 || len(qs) == 0 {
		return
	}
	n := remaining
	if n > len(qs) {
		n = len(qs)
	}
	r.Questions[sub][qt] = append(r.Questions[sub][qt], qs[:n]...)
	r.Answers[sub][qt] = append(r.Answers[sub][qt], as[:n]...)
	for i := n; i < len(qs); i++ {
		r.Extras[sub][qt] = append(r.Extras[sub][qt], QA{Question: qs[i], Answer: as[i]})
	}
}

// finalize caps every collected sequence at its target quota. Items gathered
// between target and target+margin move to the front of the extra pool; they
// arrived before anything already banked there.
func (r *Result) finalize(quotas Quotas) {
	for sub, types := range quotas {
		for qt, target := range types {
			qs := r.Questions[sub][qt]
			if len(qs) <= target {
				continue
			}
			as := r.Answers[sub][qt]
			overflow := make([]QA, 0, len(qs)-target)
			for i := target; i < len(qs); i++ {
				overflow = append(overflow, QA{Question: qs[i], Answer: as[i]})
			}
			r.Questions[sub][qt] = qs[:target]
			r.Answers[sub][qt] = as[:target]
			r.Extras[sub][qt] = append(overflow, r.Extras[sub][qt]...)
		}
	}
}

// satisfied reports whether every (subtopic, type) pair has reached
// target+margin, i.e. no further model call can contribute anything.
func (r *Result) satisfied(quotas Quotas, margin int) bool {
	for sub, types := range quotas {
		for qt, target := range types {
			if r.collected(sub, qt) < target+margin {
				return false
			}
		}
	}
	return true
}
