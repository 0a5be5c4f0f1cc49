package escape

import "testing"

func TestShellQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Morning Routine", "'Morning Routine'"},
		{"empty", "", "''"},
		{"single quote", "it's here", `'it'\''s here'`},
		{"only quotes", "''", `''\'''\'''`},
		{"injection attempt", "x'; rm -rf ~ '", `'x'\''; rm -rf ~ '\'''`},
		{"dollar and backtick stay literal", "$HOME `id`", "'$HOME `id`'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShellQuote(tt.input); got != tt.want {
				t.Errorf("ShellQuote(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAppleScriptString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"double quote", `say "hi"`, `say \"hi\"`},
		{"backslash", `a\b`, `a\\b`},
		{"backslash before quote", `\"`, `\\\"`},
		{"already escaped quote is not double-escaped", `\\`, `\\\\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AppleScriptString(tt.input); got != tt.want {
				t.Errorf("AppleScriptString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
