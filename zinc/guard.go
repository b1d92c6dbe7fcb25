package zinc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// headerSample is how much of the input is searched for list brackets.
const headerSample = 200

var (
	// A date-time with a numeric offset followed by a bare word: the
	// offset+zone form the fast path does not decode in metadata.
	offsetZoneRe = regexp.MustCompile(`T\d{2}:\d{2}:\d{2}[^,\n]*[+-]\d{2}:\d{2}[ \t]+[A-Za-z_]`)
	// Whitespace then two or more capitals on the column line usually means
	// a metadata tag the tag grammar would refuse.
	upperTagRe = regexp.MustCompile(`\s[A-Z][A-Z]+`)
	// Identifier directly followed by '(' (XStr, Bin, Coord shapes).
	callShapeRe = regexp.MustCompile(`^[a-zA-Z_]\w*\(`)
)

// IsFastPathEligible reports whether text stays inside the fast-path
// subset. False negatives only cost a fallback; a true result for text the
// fast path would decode differently from the full grammar is a bug.
func IsFastPathEligible(text string) bool {
	return CheckEligibility(text) == nil
}

// CheckEligibility is IsFastPathEligible with the reason. It returns nil
// or a KindRejected *Error.
func CheckEligibility(text string) error {
	if err := checkText(text); err != nil {
		return err
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 1 {
		if err := checkColumnLine(lines[1]); err != nil {
			return err
		}
	}
	for i := 2; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if err := checkRowFields(SplitFields(line), i+1); err != nil {
			return err
		}
	}
	return nil
}

// checkText runs the whole-input scans.
func checkText(text string) error {
	if strings.Contains(text, "<<") {
		return rejectf(0, "nested grid")
	}
	if strings.IndexByte(text, '{') >= 0 {
		return rejectf(0, "dict literal")
	}
	if strings.IndexByte(sample(text, headerSample), '[') >= 0 {
		return rejectf(0, "list near header")
	}
	if strings.Contains(text, "\\`") {
		return rejectf(0, "escaped backtick")
	}
	first := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
	}
	if offsetZoneRe.MatchString(first) {
		return rejectf(1, "date-time with both offset and zone name in metadata")
	}
	return nil
}

func checkColumnLine(line string) error {
	if upperTagRe.MatchString(line) {
		return rejectf(2, "suspicious column metadata")
	}
	return nil
}

// checkRowFields rejects unquoted fields that no scalar shape starts with.
func checkRowFields(fields []string, line int) error {
	for _, f := range fields {
		if f == "" || hasScalarIntro(f[0]) {
			continue
		}
		switch f {
		case "INF", "-INF", "NaN", "NA":
			continue
		}
		if callShapeRe.MatchString(f) {
			continue
		}
		e := rejectf(line, "unquoted value")
		e.Token = f
		return e
	}
	return nil
}

func hasScalarIntro(c byte) bool {
	switch c {
	case '"', '`', '@', 'M', 'N', 'T', 'F', 'R', 'C', 'B', '-', '+':
		return true
	}
	return isDigit(c)
}

// sample returns at most n characters (not bytes) from the start of s.
func sample(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for count := 0; count < n && i < len(s); count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}
