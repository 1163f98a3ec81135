package render

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/guide"
)

// FormatAttrs returns the attributes that make a dependency format button
// interactive. A nil FormatAttrs renders inert buttons.
type FormatAttrs func(v content.Version, f content.Format) templ.Attributes

// VersionHeading renders the sticky title cell of one column.
func VersionHeading(col guide.Column) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "version-heading", Attr("id", "heading-"+col.Version().Slug()))
		h.open("h2", "", nil)
		h.text(string(col.Version()))
		h.close("h2")
		h.close("div")
	})
}

// Overview renders the quoted overview of one column.
func Overview(col guide.Column) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("blockquote", "overview", nil)
		h.raw("&ldquo;")
		h.child(Inline(col.Content.Overview))
		h.raw("&rdquo;")
		h.close("blockquote")
	})
}

// Dependency renders the format switch and the declaration in the column's
// active format.
func Dependency(col guide.Column, attrs FormatAttrs) templ.Component {
	return component(func(h *htmlWriter) {
		v := col.Version()
		h.open("div", "dependency", Attr("id", "dependency-"+v.Slug()))

		h.open("div", "format-switch", Attr("role", "group", "aria-label", "Dependency format"))
		for _, f := range content.Formats() {
			class := "format-button"
			pressed := "false"
			if f == col.Format {
				class += " active"
				pressed = "true"
			}
			extra := templ.Attributes{}
			if attrs != nil {
				extra = attrs(v, f)
			}
			h.open("button", class, Merge(Attr("type", "button", "aria-pressed", pressed), extra))
			h.text(strings.ToUpper(string(f)))
			h.close("button")
		}
		h.close("div")

		h.child(CodeBlock(col.DependencyText(), col.Format.Language(), ""))
		h.close("div")
	})
}

// SectionCell renders the content of one column within a section row.
func SectionCell(col guide.Column, id guide.SectionID, attrs FormatAttrs) templ.Component {
	switch id {
	case guide.SectionOverviews:
		return Overview(col)
	case guide.SectionDependency:
		return Dependency(col, attrs)
	default:
		return Features(col.Features(id))
	}
}

// SectionRow renders a section header and one cell per column on the
// shared grid.
func SectionRow(section guide.Section, cols []guide.Column, grid guide.Grid, attrs FormatAttrs) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("section", "section-row", Attr("id", string(section.ID)))
		h.open("div", "section-grid", Attr("style", grid.Style()))
		for _, col := range cols {
			h.open("div", "cell", Attr("data-version", col.Version().Slug()))
			h.child(SectionHeader(section.Label, section.Icon))
			h.child(SectionCell(col, section.ID, attrs))
			h.close("div")
		}
		h.close("div")
		h.close("section")
	})
}

// Columns renders the sticky version header row followed by every section
// row, section-major.
func Columns(cols []guide.Column, grid guide.Grid, attrs FormatAttrs) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "columns", Attr("data-columns", itoa(grid.Columns)))
		h.open("div", "version-row section-grid", Attr("style", grid.Style()))
		for _, col := range cols {
			h.child(VersionHeading(col))
		}
		h.close("div")
		for _, section := range guide.Sections() {
			h.child(SectionRow(section, cols, grid, attrs))
		}
		h.close("div")
	})
}
