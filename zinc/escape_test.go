package zinc

import "testing"

func TestUnescape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		uri  bool
		want string
	}{
		{"no backslash", "plain text", false, "plain text"},
		{"newline", `a\nb`, false, "a\nb"},
		{"controls", `\b\f\r\t`, false, "\b\f\r\t"},
		{"quote", `say \"hi\"`, false, `say "hi"`},
		{"backslash", `c:\\dir`, false, `c:\dir`},
		{"dollar", `\$5`, false, "$5"},
		{"unicode lower", `caf\u00e9`, false, "café"},
		{"unicode upper", `\U00E9t\U00E9`, false, "été"},
		{"short unicode", `\u00`, false, "u00"},
		{"lone surrogate not decoded", `\uD83D`, false, "uD83D"},
		{"last bmp before surrogates", `\uD7FF`, false, "\uD7FF"},
		{"trailing backslash", `abc\`, false, `abc\`},
		{"uri hash keeps backslash", `a\#b`, true, `a\#b`},
		{"string hash drops backslash", `a\#b`, false, "a#b"},
		{"uri other escape", `a\$b`, true, "a$b"},
		{"escaped multibyte", `\é`, false, "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unescape(tt.in, tt.uri)
			if got != tt.want {
				t.Errorf("Unescape(%q, %v) = %q, want %q", tt.in, tt.uri, got, tt.want)
			}
		})
	}
}

func TestUnescapeNoBackslashIsIdentity(t *testing.T) {
	inputs := []string{"", "abc", "ünïcödé", `"quoted"`, "`uri`", "a\nb"}
	for _, in := range inputs {
		for _, uri := range []bool{false, true} {
			if got := Unescape(in, uri); got != in {
				t.Errorf("Unescape(%q, %v) = %q, want input unchanged", in, uri, got)
			}
		}
	}
}

func TestHasSurrogateEscape(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`plain`, false},
		{`\u00e9`, false},
		{`\uD83D`, true},
		{`x\Udc00y`, true},
		{`\\uD83D`, false},
		{`\uE000`, false},
		{`\uD8`, false},
	}
	for _, tt := range tests {
		if got := hasSurrogateEscape(tt.in); got != tt.want {
			t.Errorf("hasSurrogateEscape(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
