package guide

import (
	"fmt"

	"github.com/pthm/junitguide/internal/content"
)

// Layout constants shared by the renderers.
const (
	// HeaderOffset is the height in pixels of the fixed header stack that a
	// scrolled-to section must clear.
	HeaderOffset = 140
	// MinColumnWidth is the narrowest a version column may get, in pixels.
	MinColumnWidth = 320
	// ScrollMinWidth is the declared container width once more than
	// ScrollThreshold columns are shown.
	ScrollMinWidth  = 1200
	ScrollThreshold = 2
)

// SectionID names one of the five content sections.
type SectionID string

const (
	SectionOverviews   SectionID = "overviews"
	SectionDependency  SectionID = "dependency"
	SectionAssertions  SectionID = "assertions"
	SectionAssumptions SectionID = "assumptions"
	SectionAnnotations SectionID = "annotations"
)

// Section is a navigable content section.
type Section struct {
	ID    SectionID
	Label string
	// Icon is an SVG path used by the sidebar.
	Icon string
}

// Sections returns the sections in page order.
func Sections() []Section {
	return []Section{
		{ID: SectionOverviews, Label: "Overviews", Icon: "M13 16h-1v-4h-1m1-4h.01M21 12a9 9 0 11-18 0 9 9 0 0118 0z"},
		{ID: SectionDependency, Label: "Dependency", Icon: "M20 7l-8-4-8 4m16 0l-8 4m8-4v10l-8 4m0-10L4 7m8 4v10M4 7v10l8 4"},
		{ID: SectionAssertions, Label: "Assertions", Icon: "M9 12l2 2 4-4m6 2a9 9 0 11-18 0 9 9 0 0118 0z"},
		{ID: SectionAssumptions, Label: "Assumptions", Icon: "M8.228 9c.549-1.165 2.03-2 3.772-2 2.21 0 4 1.343 4 3 0 1.4-1.278 2.575-3.006 2.907-.542.104-.994.54-.994 1.093m0 3h.01M21 12a9 9 0 11-18 0 9 9 0 0118 0z"},
		{ID: SectionAnnotations, Label: "Annotations", Icon: "M7 7h.01M7 11h.01M7 15h.01M11 7h8M11 11h8M11 15h8"},
	}
}

// Scroll instructs the client to bring a section into view.
type Scroll struct {
	Target SectionID
	Offset int
	Smooth bool
}

// ScrollTarget resolves a section id. Unknown ids report false and the
// caller does nothing.
func ScrollTarget(id string) (Scroll, bool) {
	for _, s := range Sections() {
		if string(s.ID) == id {
			return Scroll{Target: s.ID, Offset: HeaderOffset, Smooth: true}, true
		}
	}
	return Scroll{}, false
}

// Script returns the client-side statement that performs the scroll.
func (s Scroll) Script() string {
	behavior := "auto"
	if s.Smooth {
		behavior = "smooth"
	}
	return fmt.Sprintf(
		"var el=document.getElementById('%s');if(el){window.scrollTo({top:el.getBoundingClientRect().top-document.body.getBoundingClientRect().top-%d,behavior:'%s'})}",
		s.Target, s.Offset, behavior,
	)
}

// Grid describes the column track layout for the current selection.
type Grid struct {
	Columns        int
	MinColumnWidth int
	// MinWidth is a CSS length: a fixed pixel width once the container
	// must scroll horizontally, "100%" otherwise.
	MinWidth string
}

// Style returns the inline CSS for a grid container.
func (g Grid) Style() string {
	return fmt.Sprintf("grid-template-columns:repeat(%d, minmax(%dpx, 1fr));min-width:%s",
		g.Columns, g.MinColumnWidth, g.MinWidth)
}

// Layout returns the grid for the current selection.
func (s State) Layout() Grid {
	g := Grid{
		Columns:        len(s.Selected),
		MinColumnWidth: MinColumnWidth,
		MinWidth:       "100%",
	}
	if g.Columns > ScrollThreshold {
		g.MinWidth = fmt.Sprintf("%dpx", ScrollMinWidth)
	}
	return g
}

// Column is the view model of one version column.
type Column struct {
	Content content.VersionContent
	Format  content.Format
}

// Version returns the column's version.
func (c Column) Version() content.Version {
	return c.Content.Version
}

// DependencyText returns the declaration in the column's chosen format.
func (c Column) DependencyText() string {
	return c.Content.Dependency.For(c.Format)
}

// Features returns the column's features of a feature section. Overviews and
// Dependency are not feature sections and yield nil.
func (c Column) Features(id SectionID) []content.Feature {
	switch id {
	case SectionAssertions:
		return c.Content.Assertions
	case SectionAssumptions:
		return c.Content.Assumptions
	case SectionAnnotations:
		return c.Content.Annotations
	default:
		return nil
	}
}

// Columns builds one column per selected version in canonical order.
func Columns(store *content.Store, s State) []Column {
	cols := make([]Column, 0, len(s.Selected))
	for _, v := range canonical(s.Selected) {
		cols = append(cols, Column{Content: store.Get(v), Format: s.Format(v)})
	}
	return cols
}
