package slug_test

import (
	"regexp"
	"testing"

	"go-jobboard-backend/pkg/slug"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Software Engineering", "software-engineering"},
		{"punctuation runs", "C++ / Systems  Programming!", "c-systems-programming"},
		{"leading and trailing junk", "  --Data Science-- ", "data-science"},
		{"already a slug", "backend-development", "backend-development"},
		{"digits kept", "Web3 & Crypto", "web3-crypto"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Make(tc.in))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Software Engineering",
		"Quản trị kinh doanh",
		"UI/UX Design (Senior)",
		"---",
		"already-slugged-value",
	}

	for _, in := range inputs {
		once := slug.Make(in)
		assert.Equal(t, once, slug.Make(once), "Make must be idempotent for %q", in)
	}
}

func TestMakePattern(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	inputs := []string{
		"Software Engineering",
		"   IT & Telecom   ",
		"a",
		"Sales/Marketing - Junior",
	}

	for _, in := range inputs {
		got := slug.Make(in)
		assert.Regexp(t, pattern, got, "slug for %q must match the slug pattern", in)
	}
}
