package zinc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ============================================================
// Haystack JSON Encoding
// ============================================================
//
// Scalars map to JSON strings with a one-letter type prefix, following
// the Haystack JSON (v3) convention:
//
//	Marker "m:"   Remove "-:"   NA "z:"   Number "n:12.5 kWh"
//	Ref "r:id dis"   URI "u:..."   Bin "b:mime"   XStr "x:Type:val"
//	Coord "c:lat,lng"   Date "d:..."   Time "h:..."   DateTime "t:... Zone"
//
// Null is JSON null, Bool is a JSON bool. A Str that would be mistaken
// for a prefixed value gets an explicit "s:" prefix.

// ScalarJSON returns the JSON-ready value for s: nil, bool or string.
func ScalarJSON(s Scalar) any {
	switch v := s.(type) {
	case nil, Null:
		return nil
	case Marker:
		return "m:"
	case Remove:
		return "-:"
	case NA:
		return "z:"
	case Bool:
		return bool(v)
	case Number:
		if v.Unit == "" {
			return "n:" + v.String()
		}
		// String glues the unit on; Haystack JSON separates it.
		return "n:" + Number{Val: v.Val}.String() + " " + v.Unit
	case Str:
		s := string(v)
		if len(s) >= 2 && s[1] == ':' {
			return "s:" + s
		}
		return s
	case URI:
		return "u:" + string(v)
	case Bin:
		return "b:" + v.Mime
	case XStr:
		return "x:" + v.Type + ":" + v.Val
	case Coord:
		return "c:" + strconv.FormatFloat(v.Lat, 'g', -1, 64) + "," + strconv.FormatFloat(v.Lng, 'g', -1, 64)
	case Ref:
		if v.Dis == "" {
			return "r:" + v.ID
		}
		return "r:" + v.ID + " " + v.Dis
	case Date:
		return "d:" + v.String()
	case Time:
		return "h:" + v.String()
	case DateTime:
		t := "t:" + v.Time.Format(time.RFC3339Nano)
		if v.Zone != "" {
			t += " " + v.Zone
		}
		return t
	default:
		return fmt.Sprintf("%v", s)
	}
}

// MarshalJSON encodes the dict as an object with keys in insertion order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDictJSON(&buf, d, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON encodes the grid as {"meta": {...}, "cols": [...], "rows": [...]}.
// The version is written as meta.ver and each column name as name; grid
// tags named ver and column tags named name are left out.
func (g *Grid) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"meta":`)
	ver := []Entry{{Name: "ver", Value: Str(g.Version)}}
	if err := writeDictJSON(&buf, g.Meta, ver); err != nil {
		return nil, err
	}

	buf.WriteString(`,"cols":[`)
	for i, c := range g.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		name := []Entry{{Name: "name", Value: Str(c.Name)}}
		if err := writeDictJSON(&buf, c.Meta, name); err != nil {
			return nil, err
		}
	}

	buf.WriteString(`],"rows":[`)
	for i, r := range g.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		first := true
		for j, c := range g.Columns {
			// Haystack JSON omits null cells.
			if IsNull(r.vals[j]) {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeMember(&buf, c.Name, r.vals[j]); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]}")

	return buf.Bytes(), nil
}

// writeDictJSON writes lead then d. A tag in d named like a lead entry is
// dropped so each key appears once and the lead value wins.
func writeDictJSON(buf *bytes.Buffer, d *Dict, lead []Entry) error {
	buf.WriteByte('{')
	n := 0
	for _, e := range lead {
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		if err := writeMember(buf, e.Name, e.Value); err != nil {
			return err
		}
	}
outer:
	for _, e := range d.Entries() {
		for _, l := range lead {
			if e.Name == l.Name {
				continue outer
			}
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		if err := writeMember(buf, e.Name, e.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeMember(buf *bytes.Buffer, name string, v Scalar) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	val, err := json.Marshal(ScalarJSON(v))
	if err != nil {
		return fmt.Errorf("zinc: encode %s: %w", name, err)
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}
