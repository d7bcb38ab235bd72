// File: stringx_test.go
// Title: String Utility Tests
// Description: Tests for the string helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial tests
// - 2025-10-19 v0.2.0: Word/digit predicates

package stringx

import "testing"

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{" x ", false},
		{"2+3", false},
	}
	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if got := IsNotBlank(tt.input); got == tt.want {
			t.Errorf("IsNotBlank(%q) = %v", tt.input, got)
		}
	}
	if !IsEmpty("") || IsEmpty(" ") {
		t.Error("IsEmpty mismatch")
	}
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0", true},
		{"12345", true},
		{"", false},
		{"12a", false},
		{"-1", false},
		{"1.5", false},
		{"٣", false}, // non-ASCII digits are not numbers here
	}
	for _, tt := range tests {
		if got := IsDigits(tt.input); got != tt.want {
			t.Errorf("IsDigits(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsWordByte(t *testing.T) {
	for _, b := range []byte("azAZ09_") {
		if !IsWordByte(b) {
			t.Errorf("IsWordByte(%q) = false", b)
		}
	}
	for _, b := range []byte(" +-*/%=;.()$") {
		if IsWordByte(b) {
			t.Errorf("IsWordByte(%q) = true", b)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		ellipsis string
		want     string
	}{
		{"short", 10, "...", "short"},
		{"int total = 1 + 2 ;", 10, "...", "int tot..."},
		{"abcdef", 2, "...", "ab"},
		{"abc", 0, "...", ""},
		{"äöüäöü", 4, "…", "äöü…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.input, tt.maxLen, tt.ellipsis); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestFirstNonBlank(t *testing.T) {
	if got := FirstNonBlank("", "  ", "calc", "other"); got != "calc" {
		t.Errorf("FirstNonBlank() = %q", got)
	}
	if got := FirstNonBlank(" "); got != "" {
		t.Errorf("FirstNonBlank() = %q, want empty", got)
	}
}
