package zinc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Compiled once at init and never mutated.
var (
	coordRe    = regexp.MustCompile(`^C\(\s*([+-]?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?)\s*,\s*([+-]?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?)\s*\)$`)
	refRe      = regexp.MustCompile(`^@([\w:.\-~]+)(?: "((?:[^"\\]|\\.)+)")?$`)
	binRe      = regexp.MustCompile(`^Bin\(([^)]*)\)$`)
	xstrRe     = regexp.MustCompile(`^([A-Za-z_]\w*)\("([^"]*)"\)$`)
	uriRe      = regexp.MustCompile("^`([^`]*)`$")
	strRe      = regexp.MustCompile(`^"((?:[^"\\\x00-\x1f\x7f]|\\[bfnrt\\"$]|\\[uU](?:[0-9a-cA-Ce-fE-F][0-9a-fA-F]{3}|[dD][0-7][0-9a-fA-F]{2}))*)"$`)
	dateTimeRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2}))(?: ([A-Za-z][\w\-+]*))?$`)
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe     = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,9}))?$`)
	numberRe   = regexp.MustCompile(`^([+-]?(?:\d+_)*\d+(?:\.\d+)?(?:[eE][+-]?\d+)?)([a-zA-Z%_/$\x{80}-\x{10FFFF}]+)?$`)
)

// DecodeScalar decodes one Zinc token. Empty input is Null. Tokens that
// need the full grammar (lists, dicts, nested grids) and tokens of a known
// shape with invalid content return an error. Anything unrecognised is
// passed through as Str(token).
func DecodeScalar(token string) (Scalar, error) {
	v, _, err := decodeScalar(token, DefaultZones())
	return v, err
}

// decodeStrict is the grid-path decoder: an opaque pass-through is an error.
func decodeStrict(token string, zones ZoneResolver) (Scalar, error) {
	v, opaque, err := decodeScalar(token, zones)
	if err != nil {
		return nil, err
	}
	if opaque {
		return nil, malformed(token, "unrecognised value")
	}
	return v, nil
}

// decodeScalar tries each shape in order; the first match wins. The bool
// result marks an opaque pass-through.
func decodeScalar(token string, zones ZoneResolver) (Scalar, bool, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return Null{}, false, nil
	}

	switch s[0] {
	case '[', '{':
		return nil, false, malformed(s, "collection needs the full grammar")
	case '<':
		if strings.HasPrefix(s, "<<") {
			return nil, false, malformed(s, "nested grid needs the full grammar")
		}
	}

	switch s {
	case "M":
		return Marker{}, false, nil
	case "N":
		return Null{}, false, nil
	case "NA":
		return NA{}, false, nil
	case "R":
		return Remove{}, false, nil
	case "T":
		return Bool(true), false, nil
	case "F":
		return Bool(false), false, nil
	case "INF":
		return Number{Val: math.Inf(1)}, false, nil
	case "-INF":
		return Number{Val: math.Inf(-1)}, false, nil
	case "NaN":
		return Number{Val: math.NaN()}, false, nil
	}

	if strings.HasPrefix(s, "C(") {
		if m := coordRe.FindStringSubmatch(s); m != nil {
			lat, err1 := strconv.ParseFloat(m[1], 64)
			lng, err2 := strconv.ParseFloat(m[2], 64)
			if err1 != nil || err2 != nil {
				return nil, false, malformed(s, "invalid coordinate")
			}
			return Coord{Lat: lat, Lng: lng}, false, nil
		}
	}

	if s[0] == '@' {
		if m := refRe.FindStringSubmatch(s); m != nil && !hasSurrogateEscape(m[2]) {
			return Ref{ID: m[1], Dis: Unescape(m[2], false)}, false, nil
		}
	}

	if strings.HasPrefix(s, "Bin(") {
		if m := binRe.FindStringSubmatch(s); m != nil {
			return Bin{Mime: m[1]}, false, nil
		}
	}

	if strings.HasSuffix(s, ")") && strings.IndexByte(s, '(') > 0 && !strings.HasPrefix(s, "C(") {
		if m := xstrRe.FindStringSubmatch(s); m != nil && !hasSurrogateEscape(m[2]) {
			return XStr{Type: m[1], Val: Unescape(m[2], false)}, false, nil
		}
	}

	switch s[0] {
	case '`':
		if m := uriRe.FindStringSubmatch(s); m != nil && !hasSurrogateEscape(m[1]) {
			return URI(Unescape(m[1], true)), false, nil
		}
	case '"':
		if m := strRe.FindStringSubmatch(s); m != nil {
			return Str(Unescape(m[1], false)), false, nil
		}
	}

	if strings.IndexByte(s, 'T') >= 0 && (isDigit(s[0]) || s[0] == '-') {
		if m := dateTimeRe.FindStringSubmatch(s); m != nil {
			dt, err := decodeDateTime(m[1], m[2], zones)
			if err != nil {
				return nil, false, malformed(s, "invalid date-time")
			}
			return dt, false, nil
		}
	}

	if dateRe.MatchString(s) {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, false, malformed(s, "invalid date")
		}
		return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, false, nil
	}

	if m := timeRe.FindStringSubmatch(s); m != nil {
		t, ok := decodeTime(m[1], m[2], m[3], m[4])
		if !ok {
			return nil, false, malformed(s, "invalid time")
		}
		return t, false, nil
	}

	if m := numberRe.FindStringSubmatch(s); m != nil {
		f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], "_", ""), 64)
		if err != nil {
			return nil, false, malformed(s, "invalid number")
		}
		return Number{Val: f, Unit: m[2]}, false, nil
	}

	return Str(s), true, nil
}

// decodeDateTime parses the offset form first; a zone name that resolves
// re-expresses the instant there, one that does not is ignored.
func decodeDateTime(stamp, zone string, zones ZoneResolver) (DateTime, error) {
	t, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return DateTime{}, err
	}
	if zone == "" || zones == nil {
		return DateTime{Time: t}, nil
	}
	loc, err := zones.Resolve(zone)
	if err != nil || loc == nil {
		Logger().Debug("zinc: time zone not resolved, keeping offset",
			zap.String("zone", zone),
			zap.Error(err))
		return DateTime{Time: t}, nil
	}
	return DateTime{Time: t.In(loc), Zone: zone}, nil
}

func decodeTime(hh, mm, ss, frac string) (Time, bool) {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	sec, _ := strconv.Atoi(ss)
	if h > 23 || m > 59 || sec > 59 {
		return Time{}, false
	}
	var ns int
	if frac != "" {
		ns, _ = strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
	}
	return Time{Hour: h, Minute: m, Second: sec, Nanosecond: ns}, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
