package services

import (
	"errors"
	"strings"
	"testing"
)

func TestSignUpPasswordPolicy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		password string
		strong   bool
	}{
		{name: "too short", password: "Skin1ab"},
		{name: "no upper-case", password: "glowing-skin-1"},
		{name: "no lower-case", password: "GLOWING-SKIN-1"},
		{name: "no digit", password: "GlowingSkin"},
		{name: "too long", password: "Aa1" + strings.Repeat("x", 126)},
		{name: "minimum length", password: "Skin1abc", strong: true},
		{name: "maximum length", password: "Aa1" + strings.Repeat("x", 125), strong: true},
		{name: "non-ascii letters", password: "Ünïcode9", strong: true},
	}

	for _, tc := range cases {
		err := ValidatePasswordStrength(tc.password)
		if tc.strong && err != nil {
			t.Fatalf("%s: expected %q to pass, got %v", tc.name, tc.password, err)
		}
		if !tc.strong && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("%s: expected ErrWeakPassword for %q, got %v", tc.name, tc.password, err)
		}
	}
}
