// Package guide models the interactive state of the comparison guide and
// derives the view model the renderers consume.
//
// State is a value type. Every transition returns a new State and leaves the
// receiver untouched, so a rendered page is always a pure function of the
// content store and one State snapshot.
package guide

import (
	"slices"

	"github.com/pthm/junitguide/internal/content"
)

// DefaultSelection is the selection shown on first load.
var DefaultSelection = []content.Version{content.JUnit5}

// State is the session-local UI state owned by the application shell.
type State struct {
	// Selected is never empty and always in canonical order.
	Selected []content.Version
	Dark     bool
	Pinned   bool
	Hovered  bool
	// Formats maps a version to its chosen dependency format. A missing
	// entry reads as content.DefaultFormat.
	Formats map[content.Version]content.Format
}

// New returns the initial state for the given theme preference.
func New(dark bool) State {
	return State{
		Selected: slices.Clone(DefaultSelection),
		Dark:     dark,
		Formats:  defaultFormats(),
	}
}

func defaultFormats() map[content.Version]content.Format {
	m := make(map[content.Version]content.Format, len(content.Versions()))
	for _, v := range content.Versions() {
		m[v] = content.DefaultFormat
	}
	return m
}

// clone copies s so a transition can modify the copy freely.
func (s State) clone() State {
	out := s
	out.Selected = slices.Clone(s.Selected)
	out.Formats = make(map[content.Version]content.Format, len(s.Formats))
	for k, v := range s.Formats {
		out.Formats[k] = v
	}
	return out
}

// IsSelected reports whether v is currently selected.
func (s State) IsSelected(v content.Version) bool {
	return slices.Contains(s.Selected, v)
}

// ToggleVersion adds v to the selection or removes it. Removing the last
// selected version is a no-op. The result is always in canonical order.
func (s State) ToggleVersion(v content.Version) State {
	if !v.Valid() {
		return s
	}

	if s.IsSelected(v) {
		if len(s.Selected) == 1 {
			return s
		}
		next := s.clone()
		next.Selected = slices.DeleteFunc(next.Selected, func(x content.Version) bool { return x == v })
		next.Selected = canonical(next.Selected)
		return next
	}

	next := s.clone()
	next.Selected = canonical(append(next.Selected, v))
	return next
}

// canonical filters the canonical version list down to the members of set.
func canonical(set []content.Version) []content.Version {
	out := make([]content.Version, 0, len(set))
	for _, v := range content.Versions() {
		if slices.Contains(set, v) {
			out = append(out, v)
		}
	}
	return out
}

// ToggleTheme flips the dark theme flag.
func (s State) ToggleTheme() State {
	next := s.clone()
	next.Dark = !s.Dark
	return next
}

// SetSidebarPinned pins or unpins the sidebar.
func (s State) SetSidebarPinned(pinned bool) State {
	next := s.clone()
	next.Pinned = pinned
	return next
}

// HoverSidebar records the pointer entering the sidebar.
func (s State) HoverSidebar() State {
	next := s.clone()
	next.Hovered = true
	return next
}

// LeaveSidebar records the pointer leaving the sidebar.
func (s State) LeaveSidebar() State {
	next := s.clone()
	next.Hovered = false
	return next
}

// Expanded reports whether the sidebar is drawn expanded.
func (s State) Expanded() bool {
	return s.Pinned || s.Hovered
}

// Format returns the dependency format chosen for v.
func (s State) Format(v content.Version) content.Format {
	if f, ok := s.Formats[v]; ok && f.Valid() {
		return f
	}
	return content.DefaultFormat
}

// SetDependencyFormat changes the format of v only.
func (s State) SetDependencyFormat(v content.Version, f content.Format) State {
	if !v.Valid() || !f.Valid() {
		return s
	}
	next := s.clone()
	next.Formats[v] = f
	return next
}

// Normalize repairs a state that crossed a trust boundary: unknown versions
// and formats are dropped, order is restored and an empty selection falls
// back to DefaultSelection.
func (s State) Normalize() State {
	next := s.clone()

	known := slices.DeleteFunc(next.Selected, func(v content.Version) bool { return !v.Valid() })
	next.Selected = canonical(known)
	if len(next.Selected) == 0 {
		next.Selected = slices.Clone(DefaultSelection)
	}

	formats := defaultFormats()
	for v, f := range next.Formats {
		if v.Valid() && f.Valid() {
			formats[v] = f
		}
	}
	next.Formats = formats

	return next
}
