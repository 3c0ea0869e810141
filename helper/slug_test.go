package helper

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "punctuation and digits",
			input:    "Hello, World! 2024",
			expected: "hello-world-2024",
		},
		{
			name:     "accents folded",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "whitespace runs",
			input:    "Hello   World",
			expected: "hello-world",
		},
		{
			name:     "existing hyphens",
			input:    "Hello - World",
			expected: "hello-world",
		},
		{
			name:     "leading and trailing noise",
			input:    " !Hello World? ",
			expected: "hello-world",
		},
		{
			name:     "only symbols",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"hello", "hello-world", "a-1-b-2", "2024"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-hello", "hello-", "hello--world", "Hello", "hello world", "héllo"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}
