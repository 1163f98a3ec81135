package render

import (
	"github.com/a-h/templ"

	"github.com/pthm/junitguide/internal/content"
)

// Feature renders one feature: title, description, then any snippets and
// bullet list in that order. The description is inline Markdown; list items
// are plain text.
func Feature(f content.Feature) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("article", "feature", nil)

		h.open("h4", "feature-title", nil)
		h.text(f.Title)
		h.close("h4")

		h.open("div", "feature-description", nil)
		h.child(Inline(f.Description))
		h.close("div")

		for _, s := range f.Snippets {
			h.child(Snippet(s))
		}

		if len(f.List) > 0 {
			h.open("ul", "feature-list", nil)
			for _, item := range f.List {
				h.open("li", "", nil)
				h.text(item)
				h.close("li")
			}
			h.close("ul")
		}

		h.close("article")
	})
}

// Features renders a sequence of features in order.
func Features(fs []content.Feature) templ.Component {
	return component(func(h *htmlWriter) {
		for _, f := range fs {
			h.child(Feature(f))
		}
	})
}
