package security

import (
	"errors"
	"testing"
)

func TestNormalizeMobileNumberValid(t *testing.T) {
	cases := []string{
		"9876543210",
		" 9876543210 ",
		"+919876543210",
	}
	for _, raw := range cases {
		got, err := NormalizeMobileNumber(raw, "IN")
		if err != nil {
			t.Fatalf("NormalizeMobileNumber(%q): %v", raw, err)
		}
		if got == "" {
			t.Fatalf("expected non-empty result for %q", raw)
		}
	}
}

func TestNormalizeMobileNumberInvalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"123",
		"abcdefghij",
		"12345678901234567890",
	}
	for _, raw := range cases {
		if _, err := NormalizeMobileNumber(raw, "IN"); !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("NormalizeMobileNumber(%q): expected ErrInvalidPhone, got %v", raw, err)
		}
	}
}

func TestNormalizeMobileNumberTrimsInput(t *testing.T) {
	got, err := NormalizeMobileNumber("  9876543210", "IN")
	if err != nil {
		t.Fatal(err)
	}
	if got != "9876543210" {
		t.Fatalf("expected trimmed number, got %q", got)
	}
}
