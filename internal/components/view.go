package components

import (
	"github.com/a-h/templ"

	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/guide"
	"github.com/pthm/junitguide/internal/hxcmp"
	"github.com/pthm/junitguide/internal/render"
)

// Title is the heading shown in the header and the document title.
const Title = "JUnit Technical Guide"

func (c *Shell) view(props ShellProps) templ.Component {
	class := "shell"
	if props.Expanded() {
		class += " sidebar-expanded"
	}

	// Requests are queued on the root so each one starts from the props the
	// previous response left in the carrier.
	root := render.Attr("id", ShellID, "hx-ext", "morph", "hx-sync", hxcmp.QueueAll)

	return render.Element("div", class, root,
		c.Carrier(PropsID, props),
		c.header(props),
		c.sidebar(props),
		render.Element("main", "content", nil,
			render.Columns(guide.Columns(c.store, props.State), props.Layout(), c.formatAttrs()),
		),
	)
}

func (c *Shell) header(props ShellProps) templ.Component {
	toggles := make([]templ.Component, 0, len(content.Versions()))
	for _, v := range content.Versions() {
		class := "version-toggle"
		pressed := "false"
		if props.IsSelected(v) {
			class += " active"
			pressed = "true"
		}
		a := c.send("toggle").Vals(map[string]any{"version": v.Slug()})
		toggles = append(toggles, render.Element("button", class,
			render.Merge(render.Attr("type", "button", "aria-pressed", pressed, "data-version", v.Slug()), a.Attrs()),
			render.Text(string(v)),
		))
	}

	themeLabel := "Dark mode"
	if props.Dark {
		themeLabel = "Light mode"
	}
	theme := c.send("theme")

	return render.Element("header", "app-header", nil,
		render.Element("h1", "", nil, render.Text(Title)),
		render.Element("nav", "version-toggles", render.Attr("aria-label", "Versions"), toggles...),
		render.Element("button", "theme-toggle",
			render.Merge(render.Attr("type", "button", "aria-label", themeLabel, "data-theme-toggle", ""), theme.Attrs()),
			render.Text(themeLabel),
		),
	)
}

func (c *Shell) sidebar(props ShellProps) templ.Component {
	class := "sidebar collapsed"
	if props.Expanded() {
		class = "sidebar expanded"
	}

	// Both transitions stay wired on every render. They are idempotent, and
	// a leave queued behind an in-flight hover still closes the sidebar.
	hover := c.send("hover").Trigger("mouseenter").Attrs()
	leave := c.send("leave").Trigger("mouseleave from:closest aside").Attrs()

	links := make([]templ.Component, 0, len(guide.Sections()))
	for _, s := range guide.Sections() {
		scroll, _ := guide.ScrollTarget(string(s.ID))
		links = append(links, render.Element("a", "nav-link",
			render.Attr("href", "#"+string(s.ID), "onclick", scroll.Script()+";return false;", "title", s.Label),
			templ.Raw(render.Icon(s.Icon)),
			render.Element("span", "nav-label", nil, render.Text(s.Label)),
		))
	}

	pinLabel := "Pin sidebar"
	if props.Pinned {
		pinLabel = "Unpin sidebar"
	}
	pin := c.send("pin").Vals(map[string]any{"pinned": boolString(!props.Pinned)})

	return render.Element("aside", class, render.Merge(render.Attr("aria-label", "Sections"), hover),
		render.Element("span", "sidebar-leave", render.Merge(templ.Attributes{"hidden": true}, leave)),
		render.Element("nav", "sidebar-links", nil, links...),
		render.Element("button", "pin-toggle",
			render.Merge(render.Attr("type", "button", "aria-pressed", boolString(props.Pinned)), pin.Attrs()),
			render.Text(pinLabel),
		),
	)
}

func (c *Shell) formatAttrs() render.FormatAttrs {
	return func(v content.Version, f content.Format) templ.Attributes {
		return c.send("format").
			Vals(map[string]any{"version": v.Slug(), "format": string(f)}).
			Attrs()
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
