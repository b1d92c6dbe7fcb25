package zinc

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Unescape decodes the narrow backslash set the fast path accepts:
// \uXXXX or \UXXXX (four hex digits, not a UTF-16 surrogate), \b \f \n
// \r \t, and any other escaped character as itself. In uriMode an escaped '#' keeps its
// backslash. Text without a backslash is returned unchanged.
func Unescape(s string, uriMode bool) string {
	i := strings.IndexByte(s, '\\')
	if i < 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteString(s[:i])

	for i < len(s) {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			i++
			continue
		}

		esc := s[i+1]
		switch esc {
		case 'u', 'U':
			if r, ok := hex4(s, i+2); ok {
				sb.WriteRune(r)
				i += 6
				continue
			}
			sb.WriteByte(esc)
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		default:
			if uriMode && esc == '#' {
				sb.WriteByte('\\')
			}
			// Copy a whole UTF-8 sequence so multi-byte characters survive.
			_, size := utf8.DecodeRuneInString(s[i+1:])
			sb.WriteString(s[i+1 : i+1+size])
			i += 1 + size
			continue
		}
		i += 2
	}

	return sb.String()
}

func hex4(s string, at int) (rune, bool) {
	r, ok := hexRune(s, at)
	if !ok || utf16.IsSurrogate(r) {
		return 0, false
	}
	return r, true
}

func hexRune(s string, at int) (rune, bool) {
	if at+4 > len(s) {
		return 0, false
	}
	var r rune
	for _, c := range []byte(s[at : at+4]) {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(d)
	}
	return r, true
}

// hasSurrogateEscape reports whether s holds a \u escape of a lone UTF-16
// surrogate, which Unescape cannot decode to a rune.
func hasSurrogateEscape(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '\\' {
			continue
		}
		if c := s[i+1]; c == 'u' || c == 'U' {
			if r, ok := hexRune(s, i+2); ok && utf16.IsSurrogate(r) {
				return true
			}
		}
		i++
	}
	return false
}
