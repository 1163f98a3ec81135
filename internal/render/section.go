package render

import (
	"github.com/a-h/templ"
)

// SectionHeader renders a titled divider. The icon is an SVG path and is
// omitted when empty.
func SectionHeader(title, icon string) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "section-header", nil)
		if icon != "" {
			h.raw(`<span class="section-icon">`)
			h.raw(Icon(icon))
			h.raw(`</span>`)
		}
		h.open("h3", "", nil)
		h.text(title)
		h.close("h3")
		h.close("div")
	})
}

// Icon returns an inline outline SVG for a single path.
func Icon(path string) string {
	return `<svg xmlns="http://www.w3.org/2000/svg" class="icon" fill="none" viewBox="0 0 24 24" stroke="currentColor" aria-hidden="true">` +
		`<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="` + templ.EscapeString(path) + `"/></svg>`
}
