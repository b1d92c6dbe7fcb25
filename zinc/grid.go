package zinc

import (
	"math"
)

// ============================================================
// Dict
// ============================================================

// Entry is one tag in a Dict.
type Entry struct {
	Name  string
	Value Scalar
}

// Dict is an insertion-ordered tag map. Overwriting a name keeps its
// original position.
type Dict struct {
	entries []Entry
	index   map[string]int
}

// NewDict creates a Dict from entries, in order. Later duplicates overwrite
// earlier ones in place.
func NewDict(entries ...Entry) *Dict {
	d := &Dict{}
	for _, e := range entries {
		d.Set(e.Name, e.Value)
	}
	return d
}

// Set adds or overwrites a tag.
func (d *Dict) Set(name string, v Scalar) {
	if i, ok := d.index[name]; ok {
		d.entries[i].Value = v
		return
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	d.index[name] = len(d.entries)
	d.entries = append(d.entries, Entry{Name: name, Value: v})
}

// Get returns the value for name.
func (d *Dict) Get(name string) (Scalar, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.entries[i].Value, true
}

// Has reports whether name is present.
func (d *Dict) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Len returns the number of tags.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Keys returns tag names in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Name
	}
	return keys
}

// Entries returns the tags in insertion order. The slice must not be modified.
func (d *Dict) Entries() []Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

// Each calls fn for every tag in order until fn returns false.
func (d *Dict) Each(fn func(name string, v Scalar) bool) {
	for _, e := range d.Entries() {
		if !fn(e.Name, e.Value) {
			return
		}
	}
}

// ============================================================
// Grid
// ============================================================

// Column is a column definition.
type Column struct {
	Name string
	Meta *Dict
}

// Grid is a decoded Zinc grid. Columns are fixed before the first row and
// every row holds exactly one cell per column.
type Grid struct {
	Version string
	Meta    *Dict
	Columns []Column
	Rows    []Row

	colIndex map[string]int
}

// NewGrid creates an empty grid with the given columns.
func NewGrid(version string, meta *Dict, columns []Column) *Grid {
	if meta == nil {
		meta = NewDict()
	}
	g := &Grid{
		Version:  version,
		Meta:     meta,
		Columns:  make([]Column, len(columns)),
		colIndex: make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if c.Meta == nil {
			c.Meta = NewDict()
		}
		g.Columns[i] = c
		g.colIndex[c.Name] = i
	}
	return g
}

// AddRow appends a row. Missing trailing cells become Null, extra cells are
// dropped.
func (g *Grid) AddRow(cells ...Scalar) {
	vals := make([]Scalar, len(g.Columns))
	for i := range vals {
		if i < len(cells) && cells[i] != nil {
			vals[i] = cells[i]
		} else {
			vals[i] = Null{}
		}
	}
	g.Rows = append(g.Rows, Row{grid: g, vals: vals})
}

// Column returns the column named name.
func (g *Grid) Column(name string) (Column, bool) {
	i, ok := g.colIndex[name]
	if !ok {
		return Column{}, false
	}
	return g.Columns[i], true
}

// ColumnNames returns column names in declared order.
func (g *Grid) ColumnNames() []string {
	names := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		names[i] = c.Name
	}
	return names
}

// Row is one grid row.
type Row struct {
	grid *Grid
	vals []Scalar
}

// Get returns the cell for the named column.
func (r Row) Get(name string) (Scalar, bool) {
	i, ok := r.grid.colIndex[name]
	if !ok {
		return nil, false
	}
	return r.vals[i], true
}

// At returns the i-th cell in column order.
func (r Row) At(i int) Scalar {
	return r.vals[i]
}

// Len returns the number of cells, always the column count.
func (r Row) Len() int {
	return len(r.vals)
}

// Values returns the cells in column order. The slice must not be modified.
func (r Row) Values() []Scalar {
	return r.vals
}

// ============================================================
// Equality
// ============================================================

// Equal reports whether two grids are observably the same: version,
// metadata (in order), columns and rows.
func Equal(a, b *Grid) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Version != b.Version || !DictEqual(a.Meta, b.Meta) {
		return false
	}
	if len(a.Columns) != len(b.Columns) || len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Columns {
		if a.Columns[i].Name != b.Columns[i].Name || !DictEqual(a.Columns[i].Meta, b.Columns[i].Meta) {
			return false
		}
	}
	for i := range a.Rows {
		ra, rb := a.Rows[i].vals, b.Rows[i].vals
		for j := range ra {
			if !ScalarEqual(ra[j], rb[j]) {
				return false
			}
		}
	}
	return true
}

// DictEqual compares two dicts including tag order.
func DictEqual(a, b *Dict) bool {
	if a.Len() != b.Len() {
		return false
	}
	ea, eb := a.Entries(), b.Entries()
	for i := range ea {
		if ea[i].Name != eb[i].Name || !ScalarEqual(ea[i].Value, eb[i].Value) {
			return false
		}
	}
	return true
}

// ScalarEqual compares two scalars. NaN equals NaN and DateTimes compare by
// instant and zone name.
func ScalarEqual(a, b Scalar) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Number:
		bv := b.(Number)
		if av.Unit != bv.Unit {
			return false
		}
		if math.IsNaN(av.Val) || math.IsNaN(bv.Val) {
			return math.IsNaN(av.Val) && math.IsNaN(bv.Val)
		}
		return av.Val == bv.Val
	case DateTime:
		bv := b.(DateTime)
		return av.Time.Equal(bv.Time) && av.Zone == bv.Zone
	default:
		return a == b
	}
}
