package components

import (
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/guide"
	"github.com/pthm/junitguide/internal/hxcmp"
)

var tags = regexp.MustCompile(`<[^>]+>`)

type fixture struct {
	reg   *hxcmp.Registry
	shell *Shell
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := hxcmp.NewRegistry([]byte("shell-test-key"))
	return &fixture{reg: reg, shell: Init(content.Default(), reg).Shell}
}

// act runs one shell action from props and returns the response plus the
// props its carrier holds for the next request.
func (f *fixture) act(t *testing.T, props ShellProps, action string, form map[string]string) (*hxcmp.TestResult, ShellProps) {
	t.Helper()
	encoded, err := f.shell.EncodeProps(props)
	require.NoError(t, err)
	return f.send(t, encoded, action, form)
}

// send dispatches action with the carrier value a browser would include.
func (f *fixture) send(t *testing.T, carrier, action string, form map[string]string) (*hxcmp.TestResult, ShellProps) {
	t.Helper()
	result := hxcmp.TestSend(f.shell, f.shell.send(action), carrier, form)
	require.Equal(t, http.StatusOK, result.StatusCode, result.HTML)
	return result, f.propsFrom(t, result.HTML)
}

func (f *fixture) carrier(t *testing.T, markup string) string {
	t.Helper()
	encoded, ok := hxcmp.CarrierValue(markup, PropsID)
	require.True(t, ok, "no props carrier in markup")
	return encoded
}

func (f *fixture) propsFrom(t *testing.T, markup string) ShellProps {
	t.Helper()
	var props ShellProps
	require.NoError(t, f.reg.Encoder().Decode(f.carrier(t, markup), false, &props))
	return props
}

func headings(markup string) []string {
	var out []string
	for _, v := range content.Versions() {
		if strings.Contains(markup, `id="heading-`+v.Slug()+`"`) {
			out = append(out, v.Slug())
		}
	}
	return out
}

func TestShellInitialRender(t *testing.T) {
	f := newFixture(t)

	result, err := hxcmp.TestRender[ShellProps](f.shell, Props(guide.New(false)))
	require.NoError(t, err)

	assert.Equal(t, []string{"junit5"}, headings(result.HTML))
	assert.Contains(t, result.HTML, `id="shell"`)
	assert.Contains(t, result.HTML, "sidebar collapsed")
	assert.Contains(t, result.HTML, "min-width:100%")
	assert.Contains(t, result.HTML, "<h1>JUnit Technical Guide</h1>")
	for _, s := range guide.Sections() {
		assert.Contains(t, result.HTML, `href="#`+string(s.ID)+`"`)
	}
	assert.Contains(t, result.HTML, "-140,behavior:&#39;smooth&#39;")
}

func TestShellToggleVersion(t *testing.T) {
	f := newFixture(t)
	props := Props(guide.New(false))

	result, props := f.act(t, props, "toggle", map[string]string{"version": "junit4"})
	assert.Equal(t, []string{"junit4", "junit5"}, headings(result.HTML))
	assert.Equal(t, []content.Version{content.JUnit4, content.JUnit5}, props.Selected)
	assert.NotContains(t, result.HTML, "min-width:1200px")

	result, props = f.act(t, props, "toggle", map[string]string{"version": "JUnit 6"})
	assert.Equal(t, []string{"junit4", "junit5", "junit6"}, headings(result.HTML))
	assert.Contains(t, result.HTML, "min-width:1200px")

	result, _ = f.act(t, props, "toggle", map[string]string{"version": "junit5"})
	assert.Equal(t, []string{"junit4", "junit6"}, headings(result.HTML))
	assert.NotContains(t, result.HTML, "min-width:1200px")
}

func TestShellToggleLastVersionIsNoop(t *testing.T) {
	f := newFixture(t)

	result, props := f.act(t, Props(guide.New(false)), "toggle", map[string]string{"version": "junit5"})

	assert.Equal(t, []string{"junit5"}, headings(result.HTML))
	assert.Equal(t, []content.Version{content.JUnit5}, props.Selected)
}

func TestShellThemeSideEffect(t *testing.T) {
	f := newFixture(t)

	result, props := f.act(t, Props(guide.New(false)), "theme", nil)
	require.True(t, result.HasEvent(ThemeEvent))
	assert.Equal(t, true, result.EventData(ThemeEvent)["dark"])
	assert.True(t, props.Dark)
	assert.Contains(t, result.HTML, "Light mode")

	result, props = f.act(t, props, "theme", nil)
	assert.Equal(t, false, result.EventData(ThemeEvent)["dark"])
	assert.False(t, props.Dark)

	// Every action re-applies the current theme.
	result, _ = f.act(t, Props(props.ToggleTheme()), "hover", nil)
	assert.Equal(t, true, result.EventData(ThemeEvent)["dark"])
}

func TestShellSidebar(t *testing.T) {
	f := newFixture(t)
	props := Props(guide.New(false))

	result, props := f.act(t, props, "hover", nil)
	assert.Contains(t, result.HTML, "sidebar expanded")
	assert.Contains(t, result.HTML, `hx-trigger="mouseenter"`)
	assert.Contains(t, result.HTML, `hx-trigger="mouseleave from:closest aside"`)

	result, props = f.act(t, props, "pin", map[string]string{"pinned": "true"})
	assert.True(t, props.Pinned)
	assert.Contains(t, result.HTML, "Unpin sidebar")

	result, props = f.act(t, props, "leave", nil)
	assert.Contains(t, result.HTML, "sidebar expanded", "pinned keeps the sidebar open")

	result, _ = f.act(t, props, "pin", map[string]string{"pinned": "false"})
	assert.Contains(t, result.HTML, "sidebar collapsed")
}

func TestShellDependencyFormat(t *testing.T) {
	f := newFixture(t)
	store := content.Default()
	props := Props(guide.New(false).ToggleVersion(content.JUnit4))

	result, props := f.act(t, props, "format", map[string]string{"version": "junit5", "format": "gradle"})

	assert.Equal(t, content.Gradle, props.Format(content.JUnit5))
	assert.Equal(t, content.Maven, props.Format(content.JUnit4))

	dep5 := section(t, result.HTML, `id="dependency-junit5"`)
	dep4 := section(t, result.HTML, `id="dependency-junit4"`)
	assert.Contains(t, dep5, `data-language="groovy"`)
	assert.Contains(t, dep4, `data-language="xml"`)
	assert.Contains(t, html.UnescapeString(tags.ReplaceAllString(dep5, "")), store.Get(content.JUnit5).Dependency.Gradle)
}

// section returns markup from marker up to the next dependency block.
func section(t *testing.T, markup, marker string) string {
	t.Helper()
	i := strings.Index(markup, marker)
	require.NotEqual(t, -1, i, "missing %s", marker)
	rest := markup[i+len(marker):]
	if j := strings.Index(rest, `id="dependency-`); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func TestShellBadRequests(t *testing.T) {
	f := newFixture(t)
	props := Props(guide.New(false))

	tests := []struct {
		name   string
		action string
		form   map[string]string
	}{
		{"unknown version", "toggle", map[string]string{"version": "junit3"}},
		{"missing version", "toggle", nil},
		{"bad pinned", "pin", map[string]string{"pinned": "maybe"}},
		{"bad format", "format", map[string]string{"version": "junit5", "format": "ant"}},
		{"bad format version", "format", map[string]string{"version": "x", "format": "maven"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := f.shell.EncodeProps(props)
			require.NoError(t, err)
			result := hxcmp.TestSend(f.shell, f.shell.send(tt.action), encoded, tt.form)
			assert.Equal(t, http.StatusBadRequest, result.StatusCode)
		})
	}
}

func TestShellTamperedProps(t *testing.T) {
	f := newFixture(t)
	encoded, err := f.shell.EncodeProps(Props(guide.New(false)))
	require.NoError(t, err)
	payload, sig, _ := strings.Cut(encoded, ".")

	forged := hxcmp.NewTestRequest(http.MethodPost, f.shell.send("theme").URL()).
		Props(payload + "A." + sig).
		Do(f.reg.Handler())
	assert.Equal(t, http.StatusBadRequest, forged.StatusCode)
}

func TestShellRequiresHTMX(t *testing.T) {
	f := newFixture(t)

	result := hxcmp.NewTestRequest(http.MethodPost, f.shell.send("theme").URL()).
		Header("HX-Request", "").
		Do(f.reg.Handler())
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
}

func TestShellControlsReadSharedCarrier(t *testing.T) {
	f := newFixture(t)

	result, err := hxcmp.TestRender[ShellProps](f.shell, Props(guide.New(false)))
	require.NoError(t, err)

	assert.Contains(t, result.HTML, `hx-sync="this:queue all"`)
	assert.Contains(t, result.HTML, `hx-ext="morph"`)
	assert.Equal(t, 1, strings.Count(result.HTML, `id="`+PropsID+`"`))

	posts := strings.Count(result.HTML, "hx-post=")
	require.Positive(t, posts)
	assert.Equal(t, posts, strings.Count(result.HTML, `hx-include="#`+PropsID+`"`), "every action reads the carrier")
	assert.Equal(t, posts, strings.Count(result.HTML, `hx-swap="morph"`))
	assert.NotContains(t, result.HTML, "&#34;p&#34;:", "no control embeds its own props")
}

// A browser queues the second event behind the first and sends it with the
// carrier the first response left behind. Both updates must survive.
func TestShellTwoEventsFromOneRender(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		form1  map[string]string
		second string
		form2  map[string]string
		check  func(t *testing.T, last *hxcmp.TestResult, props ShellProps)
	}{
		{
			name: "toggle then hover", first: "toggle", form1: map[string]string{"version": "junit4"}, second: "hover",
			check: func(t *testing.T, _ *hxcmp.TestResult, props ShellProps) {
				assert.Equal(t, []content.Version{content.JUnit4, content.JUnit5}, props.Selected)
				assert.True(t, props.Hovered)
			},
		},
		{
			name: "theme then toggle", first: "theme", second: "toggle", form2: map[string]string{"version": "junit6"},
			check: func(t *testing.T, last *hxcmp.TestResult, props ShellProps) {
				assert.True(t, props.Dark)
				assert.Equal(t, true, last.EventData(ThemeEvent)["dark"])
				assert.Equal(t, []content.Version{content.JUnit5, content.JUnit6}, props.Selected)
			},
		},
		{
			name: "hover then leave", first: "hover", second: "leave",
			check: func(t *testing.T, last *hxcmp.TestResult, props ShellProps) {
				assert.False(t, props.Expanded())
				assert.Contains(t, last.HTML, "sidebar collapsed")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			page, err := hxcmp.TestRender[ShellProps](f.shell, Props(guide.New(false)))
			require.NoError(t, err)

			first, _ := f.send(t, f.carrier(t, page.HTML), tt.first, tt.form1)
			last, props := f.send(t, f.carrier(t, first.HTML), tt.second, tt.form2)
			tt.check(t, last, props)
		})
	}
}

func TestShellReplacesURL(t *testing.T) {
	f := newFixture(t)

	result, props := f.act(t, Props(guide.New(false)), "toggle", map[string]string{"version": "junit4"})

	link := result.Headers.Get("HX-Replace-Url")
	assert.Equal(t, "/?theme=light&v=junit4&v=junit5", link)
	assert.Equal(t, DeepLink(props.State), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, props.State, guide.FromQuery(u.Query(), true))
}

func TestShellPropsRoundTrip(t *testing.T) {
	f := newFixture(t)
	want := Props(guide.New(true).
		ToggleVersion(content.JUnit6).
		SetSidebarPinned(true).
		HoverSidebar().
		SetDependencyFormat(content.JUnit6, content.Gradle))

	encoded, err := f.shell.EncodeProps(want)
	require.NoError(t, err)

	var got ShellProps
	require.NoError(t, f.reg.Encoder().Decode(encoded, false, &got))

	assert.Equal(t, want.State, got.Normalize())
}

func TestShellNormalizesDecodedProps(t *testing.T) {
	var props ShellProps
	require.NoError(t, props.HXDecode(map[string]any{
		"v":   []any{"junit6", "junit3", "junit4"},
		"fmt": map[string]any{"junit4": "gradle", "junit9": "gradle", "junit6": "ant"},
	}))

	f := newFixture(t)
	require.NoError(t, f.shell.Hydrate(t.Context(), &props))

	assert.Equal(t, []content.Version{content.JUnit4, content.JUnit6}, props.Selected)
	assert.Equal(t, content.Gradle, props.Format(content.JUnit4))
	assert.Equal(t, content.Maven, props.Format(content.JUnit6))

	var empty ShellProps
	require.NoError(t, f.shell.Hydrate(t.Context(), &empty))
	assert.Equal(t, guide.DefaultSelection, empty.Selected)
}
