package hxcmp

import (
	"bytes"
	"context"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult holds the result of rendering a component for testing.
type TestResult struct {
	HTML        string
	StatusCode  int
	Headers     http.Header
	Events      map[string]map[string]any
	RedirectURL string
}

// TestRender runs Hydrate and Render directly, bypassing encoding and
// routing. Use TestAction to exercise the full request lifecycle.
//
//	result, err := hxcmp.TestRender(comp, props)
//	if !result.HTMLContains("expected text") {
//	    t.Fatal("missing expected content")
//	}
func TestRender[P any](comp Lifecycle[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext renders a component with a custom context.
func TestRenderWithContext[P any](ctx context.Context, comp Lifecycle[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction simulates a request for a against comp, sending the action's
// props and vals the way HTMX would plus any extra form fields.
//
//	result := hxcmp.TestAction(shell, shell.Call("toggle", props), map[string]string{
//	    "version": "junit4",
//	})
func TestAction(comp HXComponent, a *Action, extra map[string]string) *TestResult {
	return NewTestRequest(a.Method(), a.url).
		Props(a.encoded).
		Vals(a.vals).
		Form(extra).
		Do(comp)
}

// TestSend executes an action built with Send the way HTMX does when the
// Carrier value is pulled in through hx-include.
func TestSend(comp HXComponent, a *Action, carrier string, extra map[string]string) *TestResult {
	return NewTestRequest(a.Method(), a.url).
		Props(carrier).
		Vals(a.vals).
		Form(extra).
		Do(comp)
}

// CarrierValue extracts the encoded props of the Carrier with id from markup.
func CarrierValue(markup, id string) (string, bool) {
	prefix := carrierTag(id, "")
	prefix = strings.TrimSuffix(prefix, `">`)
	i := strings.Index(markup, prefix)
	if i < 0 {
		return "", false
	}
	rest := markup[i+len(prefix):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return "", false
	}
	return html.UnescapeString(rest[:j]), true
}

// TestRequestBuilder builds a request by hand, for cases TestAction can't
// express such as tampered props.
type TestRequestBuilder struct {
	method  string
	path    string
	form    url.Values
	headers http.Header
	ctx     context.Context
}

// NewTestRequest starts a request with the HX-Request header set.
func NewTestRequest(method, path string) *TestRequestBuilder {
	h := make(http.Header)
	h.Set("HX-Request", "true")
	return &TestRequestBuilder{
		method:  method,
		path:    path,
		form:    url.Values{},
		headers: h,
		ctx:     context.Background(),
	}
}

// Props sets the encoded props parameter.
func (b *TestRequestBuilder) Props(encoded string) *TestRequestBuilder {
	if encoded != "" {
		b.form.Set(PropsParam, encoded)
	}
	return b
}

// Vals adds parameters the way hx-vals would.
func (b *TestRequestBuilder) Vals(vals map[string]any) *TestRequestBuilder {
	for k, v := range vals {
		if s, ok := v.(string); ok {
			b.form.Set(k, s)
		}
	}
	return b
}

// Form adds form fields.
func (b *TestRequestBuilder) Form(fields map[string]string) *TestRequestBuilder {
	for k, v := range fields {
		b.form.Set(k, v)
	}
	return b
}

// Header sets a request header. An empty value removes it.
func (b *TestRequestBuilder) Header(key, value string) *TestRequestBuilder {
	if value == "" {
		b.headers.Del(key)
	} else {
		b.headers.Set(key, value)
	}
	return b
}

// WithContext sets the request context.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Build returns the request. GET parameters go in the query string, other
// methods send a form body.
func (b *TestRequestBuilder) Build() *http.Request {
	var req *http.Request
	if b.method == http.MethodGet || b.method == http.MethodHead {
		target := b.path
		if len(b.form) > 0 {
			target += "?" + b.form.Encode()
		}
		req = httptest.NewRequest(b.method, target, nil)
	} else {
		req = httptest.NewRequest(b.method, b.path, strings.NewReader(b.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header[k] = v
	}
	return req.WithContext(b.ctx)
}

// Do serves the request with h, which is either a component or any
// http.Handler such as Registry.Handler().
func (b *TestRequestBuilder) Do(h any) *TestResult {
	req := b.Build()
	rec := httptest.NewRecorder()

	switch v := h.(type) {
	case HXComponent:
		v.HXServeHTTP(rec, req)
	case http.Handler:
		v.ServeHTTP(rec, req)
	default:
		panic("hxcmp: Do needs an HXComponent or http.Handler")
	}

	return &TestResult{
		HTML:        rec.Body.String(),
		StatusCode:  rec.Code,
		Headers:     rec.Header(),
		Events:      ParseTriggerHeader(rec.Header().Get("HX-Trigger")),
		RedirectURL: rec.Header().Get("HX-Redirect"),
	}
}

// IsOK reports a 200 response.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent checks if an event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	_, ok := r.Events[event]
	return ok
}

// EventData returns the data sent with an event.
func (r *TestResult) EventData(event string) map[string]any {
	return r.Events[event]
}

// WasRedirected checks if the response was a redirect.
func (r *TestResult) WasRedirected() bool {
	return r.RedirectURL != ""
}
