// Package termview renders the guide for a terminal: one column per selected
// version, each printed top to bottom.
package termview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/guide"
)

// MinColumnWidth is the narrowest column, in cells.
const MinColumnWidth = 32

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 120

type styles struct {
	column   lipgloss.Style
	title    lipgloss.Style
	overview lipgloss.Style
	section  lipgloss.Style
	feature  lipgloss.Style
	desc     lipgloss.Style
	label    lipgloss.Style
	code     lipgloss.Style
	bullet   lipgloss.Style
}

func newStyles(width int) styles {
	inner := max(0, width-2)
	return styles{
		column:   lipgloss.NewStyle().Width(width).Padding(0, 1),
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		overview: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")).Width(inner),
		section:  lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
		feature:  lipgloss.NewStyle().Bold(true).MarginTop(1),
		desc:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(inner),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		code:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(0, 1).MaxWidth(inner),
		bullet:   lipgloss.NewStyle().Foreground(lipgloss.Color("211")).SetString("•"),
	}
}

// ColumnWidth returns the per-column width for n columns in total width.
func ColumnWidth(width, n int) int {
	if n <= 0 {
		return width
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return max(MinColumnWidth, width/n)
}

// Render lays out the selected versions side by side.
func Render(store *content.Store, s guide.State, width int) string {
	cols := guide.Columns(store, s.Normalize())
	st := newStyles(ColumnWidth(width, len(cols)))

	blocks := make([]string, 0, len(cols))
	for _, col := range cols {
		blocks = append(blocks, st.column.Render(renderColumn(st, col)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func renderColumn(st styles, col guide.Column) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(st.title.Render(string(col.Version())))
	line(st.overview.Render("“" + plain(col.Content.Overview) + "”"))

	line(st.section.Render("Dependency (" + strings.ToUpper(string(col.Format)) + ")"))
	line(st.code.Render(col.DependencyText()))

	for _, sec := range guide.Sections() {
		features := col.Features(sec.ID)
		if len(features) == 0 {
			continue
		}
		line(st.section.Render(sec.Label))
		for _, f := range features {
			line(st.feature.Render(f.Title))
			line(st.desc.Render(plain(f.Description)))
			for _, sn := range f.Snippets {
				if sn.Label != "" {
					line(st.label.Render(sn.Label))
				}
				line(st.code.Render(sn.Code))
			}
			for _, item := range f.List {
				line(st.bullet.String() + " " + plain(item))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// plain drops inline code markers from markdown text.
func plain(s string) string {
	return strings.ReplaceAll(s, "`", "")
}
