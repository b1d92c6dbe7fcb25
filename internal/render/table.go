// Package render draws grids for the terminal: a static lipgloss table for
// `zinc view` and an interactive bubbletea browser for `zinc browse`.
package render

import (
	"fmt"
	"os"

	"github.com/Neumenon/zinc/zinc"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	nullStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#666666"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

// Options controls Table output.
type Options struct {
	// Width caps the table width. Zero means unlimited.
	Width int
	// MaxRows limits the rows drawn. Zero means all.
	MaxRows int
	// ShowMeta prints the version and grid metadata above the table.
	ShowMeta bool
}

// Cell returns the display text of a value: strings and URIs unquoted,
// null as empty, everything else in its Zinc form.
func Cell(v zinc.Scalar) string {
	switch v := v.(type) {
	case nil, zinc.Null:
		return ""
	case zinc.Str:
		return string(v)
	case zinc.URI:
		return string(v)
	case zinc.Ref:
		if v.Dis != "" {
			return "@" + v.ID + " " + v.Dis
		}
		return "@" + v.ID
	default:
		return v.String()
	}
}

// Header returns a column title: the name, plus its unit when the column
// declares one.
func Header(c zinc.Column) string {
	if u, ok := c.Meta.Get("unit"); ok {
		if s, ok := u.(zinc.Str); ok && s != "" {
			return c.Name + " (" + string(s) + ")"
		}
	}
	return c.Name
}

// Table renders g as a bordered table.
func Table(g *zinc.Grid, opts Options) string {
	headers := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		headers[i] = Header(c)
	}

	rows := g.Rows
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		rows = rows[:opts.MaxRows]
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, r.Len())
		for j, v := range r.Values() {
			line[j] = Cell(v)
		}
		cells[i] = line
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && zinc.IsNull(rows[row].At(col)) {
				return nullStyle
			}
			return cellStyle
		})
	if opts.Width > 0 {
		t = t.Width(opts.Width)
	}

	out := t.String()
	if opts.ShowMeta {
		out = metaStyle.Render(metaLine(g)) + "\n" + out
	}
	if len(rows) < len(g.Rows) {
		out += fmt.Sprintf("\n%d of %d rows", len(rows), len(g.Rows))
	}
	return out
}

func metaLine(g *zinc.Grid) string {
	s := fmt.Sprintf("ver:%q", g.Version)
	for _, e := range g.Meta.Entries() {
		if _, ok := e.Value.(zinc.Marker); ok {
			s += " " + e.Name
			continue
		}
		s += " " + e.Name + ":" + e.Value.String()
	}
	return s
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal on f, or 0 when f is not
// a terminal.
func TerminalWidth(f *os.File) int {
	if !IsTerminal(f) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
