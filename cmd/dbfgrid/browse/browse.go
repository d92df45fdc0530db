// Package browse implements an interactive table viewer.
// Rows are loaded as the cursor gets close to the last loaded row.
package browse

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chaisql/dbfgrid"
	"github.com/chaisql/dbfgrid/types"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

// prefetch is the distance to the last loaded row under which
// more rows are fetched.
const prefetch = 5

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// Run browses m until the user quits or ctx is canceled.
func Run(ctx context.Context, m *dbfgrid.Model) error {
	p := tea.NewProgram(New(m), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return ctx.Err()
	}

	return err
}

// changes is shared by copies of a Model and set by the observer
// of the underlying table.
type changes struct {
	dirty bool
}

// Model is the bubbletea model of the viewer.
type Model struct {
	rows    *dbfgrid.Model
	table   table.Model
	changes *changes
	err     error
}

// New creates a viewer of the rows of m. It replaces the observer of m.
func New(m *dbfgrid.Model) Model {
	c := &changes{dirty: true}
	mark := func(int, int) { c.dirty = true }
	m.SetObserver(dbfgrid.ObserverFuncs{
		OnRowsAppended: mark,
		OnRowsRemoved:  mark,
		OnCellChanged:  mark,
	})

	b := Model{
		rows:    m,
		changes: c,
		table: table.New(
			table.WithColumns(columns(m)),
			table.WithFocused(true),
		),
	}
	b.sync()

	return b
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(msg.Height - 3)
	case tea.KeyMsg:
		m.err = nil

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "d":
			if m.rows.RowCount() > 0 {
				m.err = m.rows.RemoveRow(m.table.Cursor())
			}
			return m.fetch(), nil
		case "a":
			m.err = m.appendRow()
			return m.fetch(), nil
		case "r":
			m.err = m.rows.Reopen()
			m.changes.dirty = true
			m.table.SetCursor(0)
			return m.fetch(), nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m.fetch(), cmd
}

// fetch loads the next batch if the cursor is close to the last loaded row.
func (m Model) fetch() Model {
	if m.err == nil && m.table.Cursor() >= m.rows.RowCount()-prefetch && m.rows.CanFetchMore() {
		_, m.err = m.rows.FetchMore()
	}
	m.sync()

	return m
}

// appendRow loads every row then appends a blank one and moves to it.
func (m *Model) appendRow() error {
	for m.rows.CanFetchMore() {
		if _, err := m.rows.FetchMore(); err != nil {
			return err
		}
	}

	err := m.rows.InsertRowsAtEnd(1)
	if err != nil {
		return err
	}

	m.sync()
	m.table.GotoBottom()
	return nil
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.status()))
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	} else {
		sb.WriteString(helpStyle.Render(m.help()))
	}
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) status() string {
	s := fmt.Sprintf("row %d/%d · %d records · %d deleted · %s",
		m.rows.RowHeader(m.table.Cursor()), m.rows.RowCount(),
		m.rows.PhysicalCount(), m.rows.DeletedCount(), m.rows.State())
	if m.rows.ReadOnly() {
		s += " · read-only"
	}

	return s
}

func (m Model) help() string {
	if m.rows.ReadOnly() {
		return "↑/↓ move · r reload · q quit"
	}

	return "↑/↓ move · a append · d delete · r reload · q quit"
}

// sync copies the loaded rows to the table if they changed.
func (m *Model) sync() {
	if !m.changes.dirty {
		return
	}
	m.changes.dirty = false

	rows := make([]table.Row, m.rows.RowCount())
	for i := range rows {
		rows[i] = m.row(i)
	}
	m.table.SetRows(rows)

	if n := len(rows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}
}

func (m Model) row(i int) table.Row {
	r := make(table.Row, 0, m.rows.ColumnCount()+1)
	r = append(r, strconv.Itoa(m.rows.RowHeader(i)))

	for col := 0; col < m.rows.ColumnCount(); col++ {
		v, err := m.rows.Value(i, col)
		if err != nil {
			r = append(r, "")
			continue
		}

		r = append(r, cell(v, m.rows.Flags(i, col)))
	}

	return r
}

func cell(v types.Value, f dbfgrid.Flags) string {
	if f.Has(dbfgrid.Tristate) {
		switch {
		case types.IsNull(v):
			return "[-]"
		case types.AsBool(v):
			return "[x]"
		default:
			return "[ ]"
		}
	}

	if types.IsNull(v) {
		return ""
	}

	return v.String()
}

func columns(m *dbfgrid.Model) []table.Column {
	cols := make([]table.Column, 0, m.ColumnCount()+1)
	cols = append(cols, table.Column{Title: "#", Width: 6})

	for i, f := range m.Schema().Fields {
		title := fmt.Sprint(m.HeaderData(i, dbfgrid.DisplayRole))

		w := f.Length
		switch f.Type {
		case types.TypeBoolean:
			w = 3
		case types.TypeDate:
			w = 10
		}
		w = max(w, len(title))
		w = min(w, 30)

		cols = append(cols, table.Column{Title: title, Width: w})
	}

	return cols
}
