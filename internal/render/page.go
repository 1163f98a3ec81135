package render

import (
	"strconv"

	"github.com/a-h/templ"
)

// Asset paths referenced by every page.
const (
	ChromaCSSPath = "/static/chroma.css"
	GuideCSSPath  = "/static/guide.css"
	GuideJSPath   = "/static/guide.js"
	HTMXURL       = "https://unpkg.com/htmx.org@2.0.4"
	IdiomorphURL  = "https://unpkg.com/idiomorph@0.3.0/dist/idiomorph-ext.min.js"
)

// PageOptions configures the document around the shell.
type PageOptions struct {
	Title string
	Dark  bool
	// AutoTheme marks the document so the page script can pick the theme
	// from the browser when the server had no preference to go on.
	AutoTheme bool
	// Inline embeds style sheets and scripts instead of linking them, for
	// single-file export.
	Inline  bool
	Styles  []string
	Scripts []string
}

// Page renders a complete HTML document with body inside.
func Page(opts PageOptions, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>")
		htmlClass := ""
		if opts.Dark {
			htmlClass = "dark"
		}
		attrs := Attr("lang", "en")
		if opts.AutoTheme {
			attrs["data-theme"] = "auto"
		}
		h.open("html", htmlClass, attrs)
		h.raw("<head>")
		h.raw(`<meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(opts.Title)
		h.raw("</title>")

		if opts.Inline {
			for _, css := range opts.Styles {
				h.raw("<style>")
				h.raw(css)
				h.raw("</style>")
			}
		} else {
			for _, href := range []string{ChromaCSSPath, GuideCSSPath} {
				h.open("link", "", Attr("rel", "stylesheet", "href", href))
			}
		}
		for _, src := range []string{HTMXURL, IdiomorphURL} {
			h.open("script", "", Attr("src", src))
			h.close("script")
		}
		if opts.Inline {
			for _, js := range opts.Scripts {
				h.raw("<script>")
				h.raw(js)
				h.raw("</script>")
			}
		} else {
			h.open("script", "", Attr("src", GuideJSPath, "defer", ""))
			h.close("script")
		}
		h.raw("</head>")

		h.raw("<body>")
		h.child(body)
		h.raw("</body>")
		h.close("html")
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
