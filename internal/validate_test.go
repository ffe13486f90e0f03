package internal

import (
	"strings"
	"testing"
)

func TestValidateEmailAccepted(t *testing.T) {
	cases := []string{
		"alice@example.com",
		"a.b+tag@sub.example.org",
		"x@localhost",
	}
	for _, email := range cases {
		if err := ValidateEmail(email); err != nil {
			t.Fatalf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}
}

func TestValidateEmailRejected(t *testing.T) {
	cases := []string{
		"",
		"no-at-sign",
		"two words@example.com",
		"Alice <alice@example.com>",
		"a@" + strings.Repeat("x", 260) + ".com",
	}
	for _, email := range cases {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	got := NormalizeEmail("  Alice@Example.COM \n")
	if got != "alice@example.com" {
		t.Fatalf("NormalizeEmail returned %q", got)
	}
}
