package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "surrounding spaces",
			email:   "  parent@example.com ",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "display name",
			email:   "Parent <parent@example.com>",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePlayerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "single name",
			input:   "Ada",
			wantErr: false,
		},
		{
			name:    "short name",
			input:   "Jo",
			wantErr: false,
		},
		{
			name:    "name with hyphen and apostrophe",
			input:   "Mary-Jo O'Neil",
			wantErr: false,
		},
		{
			name:    "accented letters",
			input:   "Zoë",
			wantErr: false,
		},
		{
			name:    "blank",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   strings.Repeat("a", MaxNameLength+1),
			wantErr: true,
		},
		{
			name:    "markup",
			input:   "<b>Ada</b>",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlayerName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlayerName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorWrapsErrInvalid(t *testing.T) {
	err := ValidatePlayerName("")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if err.Error() != "name: name is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
