package zinc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the active variant of a Scalar.
type Kind uint8

const (
	KindNull Kind = iota
	KindMarker
	KindRemove
	KindNA
	KindBool
	KindNumber // includes INF, -INF and NaN
	KindStr
	KindURI
	KindBin
	KindXStr
	KindCoord
	KindRef
	KindDate
	KindTime
	KindDateTime
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindMarker:
		return "marker"
	case KindRemove:
		return "remove"
	case KindNA:
		return "na"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindStr:
		return "str"
	case KindURI:
		return "uri"
	case KindBin:
		return "bin"
	case KindXStr:
		return "xstr"
	case KindCoord:
		return "coord"
	case KindRef:
		return "ref"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Scalar is a decoded Zinc value. The set of implementations is closed:
// switch on the concrete type (or on Kind) to handle every variant.
type Scalar interface {
	Kind() Kind
	String() string
	scalar()
}

// ============================================================
// Singletons
// ============================================================

// Null is the absent value.
type Null struct{}

// Marker means "tag present, no value".
type Marker struct{}

// Remove asks a diff/patch consumer to delete the tag.
type Remove struct{}

// NA is "not available", distinct from Null.
type NA struct{}

func (Null) Kind() Kind   { return KindNull }
func (Marker) Kind() Kind { return KindMarker }
func (Remove) Kind() Kind { return KindRemove }
func (NA) Kind() Kind     { return KindNA }

func (Null) String() string   { return "N" }
func (Marker) String() string { return "M" }
func (Remove) String() string { return "R" }
func (NA) String() string     { return "NA" }

// ============================================================
// Primitive Scalars
// ============================================================

// Bool is T or F.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

func (b Bool) String() string {
	if b {
		return "T"
	}
	return "F"
}

// Number is a double with an optional, unvalidated unit.
type Number struct {
	Val  float64
	Unit string
}

func (Number) Kind() Kind { return KindNumber }

func (n Number) String() string {
	switch {
	case math.IsNaN(n.Val):
		return "NaN"
	case math.IsInf(n.Val, 1):
		return "INF"
	case math.IsInf(n.Val, -1):
		return "-INF"
	}
	return strconv.FormatFloat(n.Val, 'g', -1, 64) + n.Unit
}

// Str is a decoded string.
type Str string

func (Str) Kind() Kind { return KindStr }

func (s Str) String() string { return strconv.Quote(string(s)) }

// URI is a decoded backtick literal.
type URI string

func (URI) Kind() Kind { return KindURI }

func (u URI) String() string { return "`" + string(u) + "`" }

// Bin carries the raw text between the parentheses of Bin(...).
type Bin struct {
	Mime string
}

func (Bin) Kind() Kind { return KindBin }

func (b Bin) String() string { return "Bin(" + b.Mime + ")" }

// XStr is an extended string: a type tag plus an opaque payload.
type XStr struct {
	Type string
	Val  string
}

func (XStr) Kind() Kind { return KindXStr }

func (x XStr) String() string { return x.Type + "(" + strconv.Quote(x.Val) + ")" }

// Coord is a latitude/longitude pair.
type Coord struct {
	Lat float64
	Lng float64
}

func (Coord) Kind() Kind { return KindCoord }

func (c Coord) String() string {
	return "C(" + strconv.FormatFloat(c.Lat, 'g', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'g', -1, 64) + ")"
}

// Ref is an entity reference. Dis is empty when the source had no display text.
type Ref struct {
	ID  string
	Dis string
}

func (Ref) Kind() Kind { return KindRef }

func (r Ref) String() string {
	if r.Dis == "" {
		return "@" + r.ID
	}
	return "@" + r.ID + " " + strconv.Quote(r.Dis)
}

// ============================================================
// Temporal Scalars
// ============================================================

// Date is a calendar date with no zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (Date) Kind() Kind { return KindDate }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time is a wall-clock time with no date or zone.
type Time struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

func (Time) Kind() Kind { return KindTime }

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond == 0 {
		return s
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", t.Nanosecond), "0")
	return s + "." + frac
}

// DateTime is an instant. Zone names the resolved time zone, or is empty
// when the literal carried only an offset (or the name did not resolve).
type DateTime struct {
	Time time.Time
	Zone string
}

func (DateTime) Kind() Kind { return KindDateTime }

func (dt DateTime) String() string {
	s := dt.Time.Format(time.RFC3339Nano)
	if dt.Zone != "" {
		s += " " + dt.Zone
	}
	return s
}

func (Null) scalar()     {}
func (Marker) scalar()   {}
func (Remove) scalar()   {}
func (NA) scalar()       {}
func (Bool) scalar()     {}
func (Number) scalar()   {}
func (Str) scalar()      {}
func (URI) scalar()      {}
func (Bin) scalar()      {}
func (XStr) scalar()     {}
func (Coord) scalar()    {}
func (Ref) scalar()      {}
func (Date) scalar()     {}
func (Time) scalar()     {}
func (DateTime) scalar() {}

// IsNull reports whether s is nil or Null.
func IsNull(s Scalar) bool {
	if s == nil {
		return true
	}
	_, ok := s.(Null)
	return ok
}
