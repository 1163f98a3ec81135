package guide

import (
	"net/url"
	"strings"

	"github.com/pthm/junitguide/internal/content"
)

// Query parameters of a deep link to the guide.
const (
	QueryVersion      = "v"
	QueryTheme        = "theme"
	QueryPin          = "pin"
	QueryFormatPrefix = "fmt."
)

// FromQuery builds a state from deep-link parameters on top of New(dark).
// Unrecognized values are ignored.
func FromQuery(q url.Values, dark bool) State {
	s := New(dark)

	var selected []content.Version
	for _, raw := range q[QueryVersion] {
		if v, err := content.ParseVersion(raw); err == nil {
			selected = append(selected, v)
		}
	}
	if len(selected) > 0 {
		s.Selected = selected
	}

	switch q.Get(QueryTheme) {
	case "dark":
		s.Dark = true
	case "light":
		s.Dark = false
	}

	if q.Get(QueryPin) == "1" {
		s = s.SetSidebarPinned(true)
	}

	for key, values := range q {
		slug, ok := strings.CutPrefix(key, QueryFormatPrefix)
		if !ok || len(values) == 0 {
			continue
		}
		v, err := content.ParseVersion(slug)
		if err != nil {
			continue
		}
		if f, err := content.ParseFormat(values[0]); err == nil {
			s = s.SetDependencyFormat(v, f)
		}
	}

	return s.Normalize()
}

// Query encodes the durable part of s as deep-link parameters. Hover is
// transient and left out; the theme is always written so the link does not
// depend on the reader's preference.
func (s State) Query() url.Values {
	q := url.Values{}
	for _, v := range s.Selected {
		q.Add(QueryVersion, v.Slug())
	}
	if s.Dark {
		q.Set(QueryTheme, "dark")
	} else {
		q.Set(QueryTheme, "light")
	}
	if s.Pinned {
		q.Set(QueryPin, "1")
	}
	for _, v := range content.Versions() {
		if f := s.Format(v); f != content.DefaultFormat {
			q.Set(QueryFormatPrefix+v.Slug(), string(f))
		}
	}
	return q
}
