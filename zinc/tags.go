package zinc

// ParseTags parses a space-separated tag list: bare names become Marker,
// name:value pairs decode value as a scalar. Values may contain spaces
// inside "strings" or `uris`. The first ':' before any quote or backtick
// ends the name. Every name must satisfy IsTagName.
//
// Values go through the grid-path decoder, so a value the fast decoder can
// only pass through as an opaque string is reported as malformed.
func ParseTags(text string) (*Dict, error) {
	return parseTags(text, DefaultZones())
}

func parseTags(text string, zones ZoneResolver) (*Dict, error) {
	d := NewDict()
	tp := tagParser{input: text}

	for {
		name, value, hasValue, ok := tp.next()
		if !ok {
			break
		}
		if !IsTagName(name) {
			return nil, malformed(name, "invalid tag name")
		}
		if !hasValue {
			d.Set(name, Marker{})
			continue
		}
		if value == "" {
			return nil, malformed(name+":", "tag has no value")
		}
		v, err := decodeStrict(value, zones)
		if err != nil {
			return nil, err
		}
		d.Set(name, v)
	}

	if tp.inStr || tp.inURI {
		return nil, malformed(text, "unterminated string in tags")
	}
	return d, nil
}

// tagParser walks a tag list one token at a time.
type tagParser struct {
	input string
	pos   int
	inStr bool
	inURI bool
}

// next returns the next tag token. ok is false at end of input.
func (tp *tagParser) next() (name, value string, hasValue, ok bool) {
	for tp.pos < len(tp.input) && isTagSpace(tp.input[tp.pos]) {
		tp.pos++
	}
	if tp.pos >= len(tp.input) {
		return "", "", false, false
	}

	start := tp.pos
	colon := -1
	escape := false
	quoted := false

	for ; tp.pos < len(tp.input); tp.pos++ {
		c := tp.input[tp.pos]
		if escape {
			escape = false
			continue
		}
		switch {
		case c == '\\':
			escape = true
		case c == '"' && !tp.inURI:
			tp.inStr = !tp.inStr
			quoted = true
		case c == '`' && !tp.inStr:
			tp.inURI = !tp.inURI
			quoted = true
		case tp.inStr || tp.inURI:
		case c == ':' && colon < 0 && !quoted:
			colon = tp.pos
		case isTagSpace(c):
			return tp.split(start, tp.pos, colon)
		}
	}
	return tp.split(start, tp.pos, colon)
}

func (tp *tagParser) split(start, end, colon int) (string, string, bool, bool) {
	if colon < 0 {
		return tp.input[start:end], "", false, true
	}
	return tp.input[start:colon], tp.input[colon+1 : end], true, true
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsTagName reports whether s matches ^[a-z][a-zA-Z0-9_]*$.
func IsTagName(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}
