package components

import (
	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/guide"
	"github.com/pthm/junitguide/internal/hxcmp/encoding"
)

// ShellProps carries the complete shell state between requests.
type ShellProps struct {
	guide.State
}

// HXEncode flattens the state. Versions travel as slugs.
func (p ShellProps) HXEncode() map[string]any {
	selected := make([]string, 0, len(p.Selected))
	for _, v := range p.Selected {
		selected = append(selected, v.Slug())
	}

	formats := make(map[string]string, len(p.Formats))
	for v, f := range p.Formats {
		if f != content.DefaultFormat {
			formats[v.Slug()] = string(f)
		}
	}

	return map[string]any{
		"v":   selected,
		"d":   p.Dark,
		"pin": p.Pinned,
		"hov": p.Hovered,
		"fmt": formats,
	}
}

// HXDecode rebuilds the state. Unknown values are dropped here and the
// result is normalized in Hydrate.
func (p *ShellProps) HXDecode(m map[string]any) error {
	for _, slug := range encoding.Strings(m["v"]) {
		if v, err := content.ParseVersion(slug); err == nil {
			p.Selected = append(p.Selected, v)
		}
	}
	p.Dark, _ = m["d"].(bool)
	p.Pinned, _ = m["pin"].(bool)
	p.Hovered, _ = m["hov"].(bool)

	for slug, name := range encoding.StringMap(m["fmt"]) {
		v, err := content.ParseVersion(slug)
		if err != nil {
			continue
		}
		f, err := content.ParseFormat(name)
		if err != nil {
			continue
		}
		if p.Formats == nil {
			p.Formats = make(map[content.Version]content.Format)
		}
		p.Formats[v] = f
	}
	return nil
}
