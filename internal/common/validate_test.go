package common

import "testing"

func TestValidNationalID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"nine digits", "123456789", true},
		{"five digits", "12345", false},
		{"ten digits", "1234567890", false},
		{"empty", "", false},
		{"letters", "12345678a", false},
		{"spaces", " 123456789", false},
		{"signed", "+12345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidNationalID(tt.in); got != tt.want {
				t.Fatalf("ValidNationalID(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
