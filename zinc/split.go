package zinc

import "strings"

// SplitFields splits a line at top-level commas. Commas inside "strings",
// `uris` or parentheses (nested) do not split; a backslash inside a string
// or uri protects the next character. Fields are trimmed, and a trailing
// comma yields one extra empty field. An empty line yields no fields.
func SplitFields(line string) []string {
	if line == "" {
		return nil
	}

	fields := make([]string, 0, strings.Count(line, ",")+1)
	var (
		inStr  bool
		inURI  bool
		escape bool
		depth  int
		start  int
	)

	for i := 0; i < len(line); i++ {
		c := line[i]

		if escape {
			escape = false
			continue
		}

		switch {
		case c == '\\' && (inStr || inURI):
			escape = true
		case c == '"' && !inURI:
			inStr = !inStr
		case c == '`' && !inStr:
			inURI = !inURI
		case inStr || inURI:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			fields = append(fields, strings.TrimSpace(line[start:i]))
			start = i + 1
		}
	}

	fields = append(fields, strings.TrimSpace(line[start:]))
	return fields
}
