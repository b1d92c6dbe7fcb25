package render

import (
	"fmt"
	"strings"

	"github.com/Neumenon/zinc/zinc"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxColumnWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Browser is a bubbletea model for paging through a grid. Enter shows every
// cell of the selected row, esc returns to the table, q quits.
type Browser struct {
	grid   *zinc.Grid
	title  string
	table  table.Model
	detail bool
}

// NewBrowser creates a browser for g.
func NewBrowser(title string, g *zinc.Grid) *Browser {
	cols := make([]table.Column, len(g.Columns))
	for i, c := range g.Columns {
		cols[i] = table.Column{Title: Header(c), Width: lipgloss.Width(Header(c))}
	}

	rows := make([]table.Row, len(g.Rows))
	for i, r := range g.Rows {
		row := make(table.Row, r.Len())
		for j, v := range r.Values() {
			row[j] = Cell(v)
			if w := lipgloss.Width(row[j]); w > cols[j].Width {
				cols[j].Width = min(w, maxColumnWidth)
			}
		}
		rows[i] = row
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 20)),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))
	t.SetStyles(styles)

	return &Browser{grid: g, title: title, table: t}
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if h := msg.Height - 4; h > 2 {
			b.table.SetHeight(h)
		}
		b.table.SetWidth(msg.Width)
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return b, tea.Quit
		case "enter":
			b.detail = !b.detail
			return b, nil
		case "esc":
			b.detail = false
			return b, nil
		}
	}

	if b.detail {
		return b, nil
	}
	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View implements tea.Model.
func (b *Browser) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(b.title))
	sb.WriteString(fmt.Sprintf("  %d rows, %d columns\n\n", len(b.grid.Rows), len(b.grid.Columns)))

	if b.detail {
		sb.WriteString(b.detailView())
		sb.WriteString(helpStyle.Render("\nesc: back  q: quit"))
		return sb.String()
	}

	sb.WriteString(b.table.View())
	sb.WriteString(helpStyle.Render("\n↑/↓: move  enter: row detail  q: quit"))
	return sb.String()
}

// Selected returns the index of the highlighted row.
func (b *Browser) Selected() int {
	return b.table.Cursor()
}

func (b *Browser) detailView() string {
	i := b.table.Cursor()
	if i < 0 || i >= len(b.grid.Rows) {
		return "no row selected\n"
	}
	row := b.grid.Rows[i]

	width := 0
	for _, c := range b.grid.Columns {
		width = max(width, len(c.Name))
	}
	var sb strings.Builder
	for j, c := range b.grid.Columns {
		v := row.At(j)
		sb.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", width, c.Name)))
		sb.WriteString("  ")
		sb.WriteString(Cell(v))
		sb.WriteString(helpStyle.Render("  " + v.Kind().String()))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Browse runs the browser full screen until the user quits.
func Browse(title string, g *zinc.Grid) error {
	_, err := tea.NewProgram(NewBrowser(title, g), tea.WithAltScreen()).Run()
	return err
}
