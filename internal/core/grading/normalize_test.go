package grading

import "testing"

func TestNormalizedEqual(t *testing.T) {
	cases := []struct {
		got, want string
		equal     bool
	}{
		{"참", "참", true},
		{" 참 ", "참", true},
		{"거짓", "참", false},
		{"a) 서울", "a) 서울", true},
		{"a", "a) 서울", true},
		{"A)", "a) 서울", true},
		{"b", "a) 서울", false},
		{"서울", "a) 서울", false},
		{"", "참", false},
		{"", "", true},
	}
	for _, tc := range cases {
		if got := NormalizedEqual(tc.got, tc.want); got != tc.equal {
			t.Errorf("NormalizedEqual(%q, %q) = %v, want %v", tc.got, tc.want, got, tc.equal)
		}
	}
}
