package zinc

import (
	"reflect"
	"testing"
)

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"simple", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `a,"b,c",d`, []string{"a", `"b,c"`, "d"}},
		{"trimmed", "  a ,  b  ", []string{"a", "b"}},
		{"trailing comma", "a,b,", []string{"a", "b", ""}},
		{"empty middle", "a,,b", []string{"a", "", "b"}},
		{"whitespace only", "   ", []string{""}},
		{"uri comma", "`http://x/?a=1,2`,b", []string{"`http://x/?a=1,2`", "b"}},
		{"coord parens", "C(1.5,-2.5),N", []string{"C(1.5,-2.5)", "N"}},
		{"nested parens", "Foo(Bar(1,2),3),x", []string{"Foo(Bar(1,2),3)", "x"}},
		{"escaped quote", `"a\",b",c`, []string{`"a\",b"`, "c"}},
		{"backtick inside string", "\"a`b,c\",d", []string{"\"a`b,c\"", "d"}},
		{"quote inside uri", "`a\"b,c`,d", []string{"`a\"b,c`", "d"}},
		{"paren inside string", `"(",x`, []string{`"("`, "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitFields(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitFields(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitFieldsBackslashOutsideQuotes(t *testing.T) {
	// Outside a string a backslash is an ordinary character.
	got := SplitFields(`a\,b`)
	want := []string{`a\`, "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
