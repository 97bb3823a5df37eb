package validate_test

import (
	"strings"
	"testing"

	"taskman/internal/service"
	"taskman/internal/validate"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "Username is required"},
		{"too short", "ab", "Username must be at least 3 characters long"},
		{"min length", "abc", ""},
		{"underscore and digits", "bob_42", ""},
		{"max length", strings.Repeat("a", 20), ""},
		{"too long", strings.Repeat("a", 21), "Username must be at most 20 characters long"},
		{"space", "bob smith", "Username can only contain letters, numbers, and underscores"},
		{"dash", "bob-42", "Username can only contain letters, numbers, and underscores"},
		{"non-ascii", "böb", "Username can only contain letters, numbers, and underscores"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Username(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q", tt.wantErr)
			}
			if service.KindOf(err) != service.KindValidation {
				t.Errorf("expected validation kind, got %v", service.KindOf(err))
			}
			if service.Message(err) != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, service.Message(err))
			}
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "Task title is required"},
		{"whitespace", "   ", "Task title is required"},
		{"too short", "ab", "Task title must be at least 3 characters long"},
		{"short after trim", "  ab  ", "Task title must be at least 3 characters long"},
		{"min", "abc", ""},
		{"max", strings.Repeat("x", 100), ""},
		{"too long", strings.Repeat("x", 101), "Task title must be at most 100 characters long"},
		{"multibyte counts runes", strings.Repeat("é", 100), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Title(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || service.Message(err) != tt.wantErr {
				t.Errorf("expected %q, got %v", tt.wantErr, err)
			}
		})
	}
}
