package helper

import "testing"

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Annual General Meeting", "annual-general-meeting"},
		{"  Leading & Trailing  ", "leading-trailing"},
		{"Workshop: Go 101!", "workshop-go-101"},
		{"snake_case_title", "snake-case-title"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"UPPER", "upper"},
		{"dashes — and – more", "dashes-and-more"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := GenerateSlug(tc.in); got != tc.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
