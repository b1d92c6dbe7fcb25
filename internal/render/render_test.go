package render

import (
	"strings"
	"testing"
	"time"

	"github.com/Neumenon/zinc/zinc"
	tea "github.com/charmbracelet/bubbletea"
)

func sampleGrid(t *testing.T) *zinc.Grid {
	t.Helper()
	g, err := zinc.ParseFast("ver:\"3.0\" site\nid,dis,area unit:\"ft²\",opened\n" +
		"@p:hq \"HQ\",\"Headquarters\",12000ft²,2009-06-01\n" +
		"@p:lab,\"Lab\",,2015-01-15\n" +
		"@p:depot,\"Depot\",800ft²,\n")
	if err != nil {
		t.Fatalf("ParseFast error: %v", err)
	}
	return g
}

func TestCell(t *testing.T) {
	tests := []struct {
		v    zinc.Scalar
		want string
	}{
		{nil, ""},
		{zinc.Null{}, ""},
		{zinc.Str("plain"), "plain"},
		{zinc.URI("http://x"), "http://x"},
		{zinc.Ref{ID: "p:a", Dis: "A"}, "@p:a A"},
		{zinc.Number{Val: 3, Unit: "kW"}, "3kW"},
		{zinc.Date{Year: 2024, Month: time.May, Day: 2}, "2024-05-02"},
		{zinc.Marker{}, "M"},
	}

	for _, tt := range tests {
		if got := Cell(tt.v); got != tt.want {
			t.Errorf("Cell(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestTable(t *testing.T) {
	g := sampleGrid(t)
	out := Table(g, Options{ShowMeta: true})

	for _, want := range []string{"area (ft²)", "opened", "@p:hq HQ", "Headquarters", "12000ft²", "2015-01-15", `ver:"3.0" site`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableMaxRows(t *testing.T) {
	g := sampleGrid(t)
	out := Table(g, Options{MaxRows: 1})

	if strings.Contains(out, "Depot") {
		t.Errorf("row beyond MaxRows rendered:\n%s", out)
	}
	if !strings.Contains(out, "1 of 3 rows") {
		t.Errorf("missing truncation note:\n%s", out)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowserNavigation(t *testing.T) {
	b := NewBrowser("sites.zinc", sampleGrid(t))

	if !strings.Contains(b.View(), "3 rows, 4 columns") {
		t.Errorf("view missing summary:\n%s", b.View())
	}

	b.Update(key("down"))
	if b.Selected() != 1 {
		t.Fatalf("Selected() = %d, want 1", b.Selected())
	}

	b.Update(key("enter"))
	view := b.View()
	if !strings.Contains(view, "Lab") || !strings.Contains(view, "null") {
		t.Errorf("detail view for row 1:\n%s", view)
	}

	// Keys other than esc/enter/q do not move the cursor in detail view.
	b.Update(key("down"))
	if b.Selected() != 1 {
		t.Errorf("cursor moved in detail view: %d", b.Selected())
	}

	b.Update(key("esc"))
	if strings.Contains(b.View(), "esc: back") {
		t.Error("still in detail view after esc")
	}
}

func TestBrowserQuit(t *testing.T) {
	b := NewBrowser("x", sampleGrid(t))
	_, cmd := b.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q command produced %T, want tea.QuitMsg", cmd())
	}
}

func TestBrowserEmptyGrid(t *testing.T) {
	g := zinc.NewGrid("3.0", nil, []zinc.Column{{Name: "v"}})
	b := NewBrowser("empty", g)
	b.Update(key("enter"))
	if !strings.Contains(b.View(), "no row selected") {
		t.Errorf("view:\n%s", b.View())
	}
}
