package instrumentation

import "testing"

func TestExtractUserDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"jane@example.com", "example.com"},
		{"user@acme.io", "acme.io"},
		{"invalid", "unknown"},
		{"", "unknown"},
		{"trailing@", "unknown"},
		{"two@at@signs", "unknown"},
	}

	for _, tt := range tests {
		if got := ExtractUserDomain(tt.email); got != tt.expected {
			t.Errorf("ExtractUserDomain(%q) = %q, want %q", tt.email, got, tt.expected)
		}
	}
}
