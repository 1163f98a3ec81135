package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/pthm/junitguide/internal/content"
)

// Chroma styles for the two themes. The dark sheet is scoped under DarkScope.
const (
	LightStyle = "github"
	DarkStyle  = "monokai"
	DarkScope  = ".dark"
)

var formatter = chromahtml.New(
	chromahtml.WithClasses(true),
	chromahtml.PreventSurroundingPre(true),
)

// Highlight returns the token markup for code in the given language. Unknown
// languages fall back to plain text.
func Highlight(code string, lang content.Language) (string, error) {
	lexer := lexers.Get(string(lang))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("render: tokenise %s: %w", lang, err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Get(LightStyle), it); err != nil {
		return "", fmt.Errorf("render: highlight %s: %w", lang, err)
	}
	return buf.String(), nil
}

// StyleSheet returns the CSS for highlighted code in both themes.
var StyleSheet = sync.OnceValues(func() (string, error) {
	var light, dark bytes.Buffer
	if err := formatter.WriteCSS(&light, styles.Get(LightStyle)); err != nil {
		return "", fmt.Errorf("render: light style sheet: %w", err)
	}
	if err := formatter.WriteCSS(&dark, styles.Get(DarkStyle)); err != nil {
		return "", fmt.Errorf("render: dark style sheet: %w", err)
	}
	return light.String() + "\n" + scopeCSS(dark.String(), DarkScope), nil
})

// scopeCSS prefixes every selector of a flat style sheet with scope.
// Comments before a rule are kept as they are.
func scopeCSS(css, scope string) string {
	var out strings.Builder
	for _, line := range strings.Split(css, "\n") {
		comment := ""
		rule := line
		if strings.HasPrefix(strings.TrimSpace(line), "/*") {
			if end := strings.Index(line, "*/"); end >= 0 {
				comment, rule = line[:end+2], line[end+2:]
			}
		}

		selectors, body, ok := strings.Cut(rule, "{")
		if !ok || strings.TrimSpace(selectors) == "" {
			out.WriteString(line)
			out.WriteByte('\n')
			continue
		}

		parts := strings.Split(selectors, ",")
		for i, sel := range parts {
			parts[i] = scope + " " + strings.TrimSpace(sel)
		}
		out.WriteString(comment)
		if comment != "" {
			out.WriteByte(' ')
		}
		out.WriteString(strings.Join(parts, ", "))
		out.WriteString(" {")
		out.WriteString(body)
		out.WriteByte('\n')
	}
	return strings.TrimRight(out.String(), "\n") + "\n"
}

// CodeBlock renders a labeled, highlighted block. The label row is omitted
// when label is empty.
func CodeBlock(code string, lang content.Language, label string) templ.Component {
	return component(func(h *htmlWriter) {
		tokens, err := Highlight(code, lang)
		if err != nil {
			h.err = err
			return
		}

		h.open("div", "code-block", Attr("data-language", string(lang)))
		if label != "" {
			h.open("div", "code-label", nil)
			h.text(label)
			h.close("div")
		}
		h.raw(`<pre class="chroma"><code>`)
		h.raw(tokens)
		h.raw(`</code></pre>`)
		h.close("div")
	})
}

// Snippet renders a content snippet as a code block.
func Snippet(s content.Snippet) templ.Component {
	return CodeBlock(s.Code, s.Language, s.Label)
}
