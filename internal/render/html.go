package render

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and keeps the first error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) rawf(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes a start tag with a class and extra attributes.
func (h *htmlWriter) open(tag, class string, attrs templ.Attributes) {
	h.raw("<" + tag)
	if class != "" {
		h.raw(` class="` + templ.EscapeString(class) + `"`)
	}
	h.attrs(attrs)
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

// attrs writes attributes in sorted order. String values are escaped, true
// booleans are written bare and false ones are dropped.
func (h *htmlWriter) attrs(attrs templ.Attributes) {
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		switch v := attrs[k].(type) {
		case string:
			h.raw(" " + k + `="` + templ.EscapeString(v) + `"`)
		case bool:
			if v {
				h.raw(" " + k)
			}
		default:
			h.raw(" " + k + `="` + templ.EscapeString(fmt.Sprint(v)) + `"`)
		}
	}
}

func (h *htmlWriter) child(c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

// component adapts a writer callback into a templ.Component.
func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		fn(h)
		return h.err
	})
}

// Attr is a convenience for building one-off attribute sets.
func Attr(kv ...string) templ.Attributes {
	attrs := make(templ.Attributes, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
	}
	return attrs
}

// Merge combines attribute sets; later sets win.
func Merge(sets ...templ.Attributes) templ.Attributes {
	out := templ.Attributes{}
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

// Element renders a tag with a class, attributes and children.
func Element(tag, class string, attrs templ.Attributes, children ...templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.open(tag, class, attrs)
		for _, c := range children {
			h.child(c)
		}
		h.close(tag)
	})
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return component(func(h *htmlWriter) {
		h.text(s)
	})
}

// Group renders components one after another.
func Group(children ...templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		for _, c := range children {
			h.child(c)
		}
	})
}
