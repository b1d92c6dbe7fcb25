package zinc

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

const siteGrid = `ver:"3.0" database:"demo" hisStart:2020-01-01T00:00:00Z
id,dis,area unit:"ft²",geoCoord,tz,built
@p:hq "Headquarters","HQ, Main",12_000ft²,C(37.55,-122.31),"New_York",2009-06-01
@p:lab,"Lab",4500ft²,N,"Chicago"

@p:depot,"Depot \"North\"",,C(1,2),"Denver",2015-01-15,99,"ignored"
`

func TestParseFastSiteGrid(t *testing.T) {
	g, err := ParseFast(siteGrid)
	if err != nil {
		t.Fatalf("ParseFast error: %v", err)
	}

	if g.Version != "3.0" {
		t.Errorf("Version = %q, want 3.0", g.Version)
	}
	if !reflect.DeepEqual(g.Meta.Keys(), []string{"database", "hisStart"}) {
		t.Errorf("meta keys = %v", g.Meta.Keys())
	}
	if v, _ := g.Meta.Get("hisStart"); !ScalarEqual(v, DateTime{Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}) {
		t.Errorf("hisStart = %v", v)
	}

	wantCols := []string{"id", "dis", "area", "geoCoord", "tz", "built"}
	if !reflect.DeepEqual(g.ColumnNames(), wantCols) {
		t.Errorf("columns = %v, want %v", g.ColumnNames(), wantCols)
	}
	area, _ := g.Column("area")
	if u, _ := area.Meta.Get("unit"); u != Str("ft²") {
		t.Errorf("area unit = %v, want ft²", u)
	}
	if id, _ := g.Column("id"); id.Meta.Len() != 0 {
		t.Errorf("id meta len = %d, want 0", id.Meta.Len())
	}

	if len(g.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(g.Rows))
	}

	hq := g.Rows[0]
	checks := []struct {
		col  string
		want Scalar
	}{
		{"id", Ref{ID: "p:hq", Dis: "Headquarters"}},
		{"dis", Str("HQ, Main")},
		{"area", Number{Val: 12000, Unit: "ft²"}},
		{"geoCoord", Coord{Lat: 37.55, Lng: -122.31}},
		{"tz", Str("New_York")},
		{"built", Date{Year: 2009, Month: time.June, Day: 1}},
	}
	for _, c := range checks {
		got, ok := hq.Get(c.col)
		if !ok {
			t.Errorf("row 0 missing %s", c.col)
			continue
		}
		if !ScalarEqual(got, c.want) {
			t.Errorf("row 0 %s = %v, want %v", c.col, got, c.want)
		}
	}

	lab := g.Rows[1]
	if v, _ := lab.Get("geoCoord"); !IsNull(v) {
		t.Errorf("lab geoCoord = %v, want null", v)
	}
	if v, _ := lab.Get("built"); !IsNull(v) {
		t.Errorf("lab built = %v, want null (padded)", v)
	}

	depot := g.Rows[2]
	if depot.Len() != len(wantCols) {
		t.Errorf("depot has %d cells, want %d", depot.Len(), len(wantCols))
	}
	if v, _ := depot.Get("dis"); v != Str(`Depot "North"`) {
		t.Errorf("depot dis = %v", v)
	}
	if v, _ := depot.Get("area"); !IsNull(v) {
		t.Errorf("depot area = %v, want null", v)
	}
}

func TestParseFastPadsShortRows(t *testing.T) {
	g, err := ParseFast("ver:\"3.0\"\na,b,c,d\n1,2\n")
	if err != nil {
		t.Fatalf("ParseFast error: %v", err)
	}
	row := g.Rows[0]
	want := []Scalar{Number{Val: 1}, Number{Val: 2}, Null{}, Null{}}
	for i, w := range want {
		if !ScalarEqual(row.At(i), w) {
			t.Errorf("cell %d = %v, want %v", i, row.At(i), w)
		}
	}
}

func TestParseFastTrailingComma(t *testing.T) {
	g, err := ParseFast("ver:\"3.0\"\na,b\nM,\n")
	if err != nil {
		t.Fatalf("ParseFast error: %v", err)
	}
	if v := g.Rows[0].At(0); v != (Marker{}) {
		t.Errorf("a = %v, want marker", v)
	}
	if !IsNull(g.Rows[0].At(1)) {
		t.Errorf("b = %v, want null", g.Rows[0].At(1))
	}
}

func TestParseFastCRLF(t *testing.T) {
	g, err := ParseFast("ver:\"3.0\" x\r\na,b\r\n1,\"two\"\r\n")
	if err != nil {
		t.Fatalf("ParseFast error: %v", err)
	}
	if !g.Meta.Has("x") {
		t.Error("grid meta missing x")
	}
	if !reflect.DeepEqual(g.ColumnNames(), []string{"a", "b"}) {
		t.Errorf("columns = %v", g.ColumnNames())
	}
	if v := g.Rows[0].At(1); v != Str("two") {
		t.Errorf("b = %v, want two", v)
	}
}

func TestParseFastNoRows(t *testing.T) {
	g, err := ParseFast("ver:\"3.0\"\nempty")
	if err != nil {
		t.Fatalf("ParseFast error: %v", err)
	}
	if len(g.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(g.Rows))
	}
}

func TestParseFastFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
		line int
	}{
		{"missing version", "a,b\n1,2\n", ErrMalformed, 1},
		{"unquoted version", "ver:3.0\na\n1\n", ErrMalformed, 1},
		{"missing columns", `ver:"3.0"`, ErrMalformed, 2},
		{"bad grid tag", "ver:\"3.0\" Foo\na\n1\n", ErrMalformed, 1},
		{"bad column name", "ver:\"3.0\"\nBad\n1\n", ErrMalformed, 2},
		{"empty column name", "ver:\"3.0\"\na,,b\n1\n", ErrMalformed, 2},
		{"duplicate column", "ver:\"3.0\"\na,a\n1,2\n", ErrMalformed, 2},
		{"bare word row", "ver:\"3.0\"\na\nxyz\n", ErrRejected, 3},
		{"bad date", "ver:\"3.0\"\na\n2020-02-31\n", ErrMalformed, 3},
		{"opaque value", "ver:\"3.0\"\na\nMxyz\n", ErrMalformed, 3},
		{"lone surrogate escape", "ver:\"3.0\"\na\n\"\\uD83D\"\n", ErrMalformed, 3},
		{"lone surrogate in tag", "ver:\"3.0\" dis:\"\\uDC00\"\na\n1\n", ErrMalformed, 1},
		{"nested grid", "ver:\"3.0\"\na\n<<\n>>\n", ErrRejected, 0},
		{"dict", "ver:\"3.0\"\na\n{}\n", ErrRejected, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseFast(tt.text)
			if err == nil {
				t.Fatalf("ParseFast succeeded: %+v", g)
			}
			if g != nil {
				t.Error("ParseFast returned a partial grid")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error %v, want %v", err, tt.want)
			}
			var ze *Error
			if errors.As(err, &ze) && ze.Line != tt.line {
				t.Errorf("line = %d, want %d", ze.Line, tt.line)
			}
		})
	}
}
