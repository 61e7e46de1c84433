package grading

import "strings"

// NormalizedEqual compares two answers after case folding and trimming. For
// option-letter answers it also strips the ")" decoration, so "a", "a)" and
// "A) 서울" all match an answer keyed on option a.
func NormalizedEqual(got, want string) bool {
	g := normalize(got)
	w := normalize(want)
	if g == "" || w == "" {
		return g == w
	}
	if g == w {
		return true
	}
	// Option-letter comparison for multiple-choice style answers.
	if gl, ok := optionLetter(g); ok {
		if wl, wok := optionLetter(w); wok {
			return gl == wl
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// optionLetter extracts the leading a-d option marker, if any.
func optionLetter(s string) (byte, bool) {
	if len(s) == 0 {
		return 0, false
	}
	c := s[0]
	if c < 'a' || c > 'd' {
		return 0, false
	}
	if len(s) == 1 || s[1] == ')' || s[1] == '.' || s[1] == ' ' {
		return c, true
	}
	return 0, false
}
