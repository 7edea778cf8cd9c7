package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// versionRegex accepts x.y.z with an optional pre-release letter
var versionRegex = regexp.MustCompile(`^\d+\.\d+\.\d+[a-z]?$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Blaze", Blaze},
		{"Lexer", Lexer},
		{"Parser", Parser},
		{"Server", Server},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !versionRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match x.y.z[a]", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		component string
		expected  string
	}{
		{"lexer", Lexer},
		{"parser", Parser},
		{"server", Server},
		{"unknown", Blaze},
		{"", Blaze},
	}

	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			if got := ComponentVersion(tt.component); got != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	s := String()

	if !strings.HasPrefix(s, "Blaze 0.0.1a (commit ") {
		t.Errorf("String() = %q, want Blaze 0.0.1a prefix", s)
	}
	if !strings.Contains(s, runtime.GOOS) {
		t.Errorf("String() = %q, missing GOOS", s)
	}
}
