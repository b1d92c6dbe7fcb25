package zinc

import (
	"fmt"
	"regexp"
	"strings"
)

var versionRe = regexp.MustCompile(`^ver:"([^"]+)"`)

// ParseFast decodes text with the fast path only, using DefaultZones.
// It returns a KindRejected or KindMalformed *Error for anything it does
// not cover and never a partial grid.
func ParseFast(text string) (*Grid, error) {
	return parseFast(text, DefaultZones())
}

func parseFast(text string, zones ZoneResolver) (g *Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			g = nil
			err = &Error{Kind: KindMalformed, Msg: fmt.Sprintf("decoder panic: %v", r)}
		}
	}()

	if err := checkText(text); err != nil {
		return nil, err
	}
	a := &assembler{
		lines: strings.Split(text, "\n"),
		zones: newZoneMemo(zones),
	}
	return a.run()
}

// ============================================================
// Grid Assembler
// ============================================================

// assembler walks the lines: version, column header, then rows.
type assembler struct {
	lines []string
	zones ZoneResolver
}

func (a *assembler) run() (*Grid, error) {
	version, meta, err := a.versionLine(a.lines[0])
	if err != nil {
		return nil, atLine(err, 1)
	}

	if len(a.lines) < 2 {
		return nil, &Error{Kind: KindMalformed, Line: 2, Msg: "missing column headers"}
	}
	cols, err := a.columnLine(a.lines[1])
	if err != nil {
		return nil, atLine(err, 2)
	}

	g := NewGrid(version, meta, cols)
	for i := 2; i < len(a.lines); i++ {
		line := strings.TrimSpace(a.lines[i])
		if line == "" {
			continue
		}
		if err := a.row(g, line, i+1); err != nil {
			return nil, atLine(err, i+1)
		}
	}
	return g, nil
}

// versionLine parses: ver:"3.0" [grid meta tags]
func (a *assembler) versionLine(line string) (string, *Dict, error) {
	m := versionRe.FindStringSubmatchIndex(line)
	if m == nil {
		return "", nil, malformed(sample(line, 32), "missing version")
	}
	version := line[m[2]:m[3]]
	meta, err := parseTags(strings.TrimSpace(line[m[1]:]), a.zones)
	if err != nil {
		return "", nil, err
	}
	return version, meta, nil
}

// columnLine parses: name [tags], name [tags], ...
func (a *assembler) columnLine(line string) ([]Column, error) {
	if err := checkColumnLine(line); err != nil {
		return nil, err
	}
	fields := SplitFields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return nil, malformed("", "no columns")
	}

	cols := make([]Column, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		name, tags := f, ""
		if i := strings.IndexAny(f, " \t"); i >= 0 {
			name, tags = f[:i], f[i+1:]
		}
		if !IsTagName(name) {
			return nil, malformed(name, "invalid column name")
		}
		if seen[name] {
			return nil, malformed(name, "duplicate column")
		}
		seen[name] = true

		meta, err := parseTags(strings.TrimSpace(tags), a.zones)
		if err != nil {
			return nil, err
		}
		cols = append(cols, Column{Name: name, Meta: meta})
	}
	return cols, nil
}

// row decodes one data line. Short rows are padded with Null and extra
// fields are ignored.
func (a *assembler) row(g *Grid, line string, lineNo int) error {
	fields := SplitFields(line)
	if err := checkRowFields(fields, lineNo); err != nil {
		return err
	}

	cells := make([]Scalar, len(g.Columns))
	for i := range cells {
		if i >= len(fields) {
			cells[i] = Null{}
			continue
		}
		v, err := decodeStrict(fields[i], a.zones)
		if err != nil {
			return err
		}
		cells[i] = v
	}
	g.Rows = append(g.Rows, Row{grid: g, vals: cells})
	return nil
}
