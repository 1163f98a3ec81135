package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in content is not rendered: goldmark escapes it unless the
// unsafe renderer option is set, and it is not.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle(LightStyle),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		),
	),
)

// MarkdownHTML converts src to HTML.
func MarkdownHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render: markdown: %w", err)
	}
	return buf.String(), nil
}

// InlineHTML converts a single paragraph of markdown and drops the
// surrounding paragraph element so the result can sit inside other text.
func InlineHTML(src string) (string, error) {
	out, err := MarkdownHTML(src)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(out)
	inner, ok := strings.CutPrefix(trimmed, "<p>")
	if ok {
		inner, ok = strings.CutSuffix(inner, "</p>")
	}
	if !ok || strings.Contains(inner, "<p>") {
		return out, nil
	}
	return inner, nil
}

// Markdown renders src as block markdown.
func Markdown(src string) templ.Component {
	return component(func(h *htmlWriter) {
		out, err := MarkdownHTML(src)
		if err != nil {
			h.err = err
			return
		}
		h.raw(out)
	})
}

// Inline renders src as inline markdown.
func Inline(src string) templ.Component {
	return component(func(h *htmlWriter) {
		out, err := InlineHTML(src)
		if err != nil {
			h.err = err
			return
		}
		h.raw(out)
	})
}
