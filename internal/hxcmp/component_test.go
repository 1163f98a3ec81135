package hxcmp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

type testProps struct {
	Label string
	On    bool
}

func (p testProps) HXEncode() map[string]any {
	return map[string]any{"label": p.Label, "on": p.On}
}

func (p *testProps) HXDecode(m map[string]any) error {
	if v, ok := m["label"].(string); ok {
		p.Label = v
	}
	if v, ok := m["on"].(bool); ok {
		p.On = v
	}
	return nil
}

// switchCmp is a minimal component: a labelled on/off switch.
type switchCmp struct {
	*Component[testProps]
	hydrateErr error
}

func newSwitch() *switchCmp {
	c := &switchCmp{Component: New[testProps]("switch")}
	c.Action("flip", c.handleFlip)
	c.Action("rename", c.handleRename)
	c.Action("peek", c.handlePeek).Method(http.MethodGet)
	c.Bind(c)
	return c
}

func (c *switchCmp) Hydrate(_ context.Context, p *testProps) error {
	if c.hydrateErr != nil {
		return c.hydrateErr
	}
	if p.Label == "" {
		p.Label = "default"
	}
	return nil
}

func (c *switchCmp) Render(_ context.Context, p testProps) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="switch">%s:%v</div>`, templ.EscapeString(p.Label), p.On)
		return err
	})
}

func (c *switchCmp) handleFlip(_ context.Context, p testProps, _ *http.Request) Result[testProps] {
	p.On = !p.On
	return OK(p).Trigger("switch:flipped", map[string]any{"on": p.On})
}

func (c *switchCmp) handleRename(_ context.Context, p testProps, r *http.Request) Result[testProps] {
	label := r.FormValue("label")
	if label == "" {
		return Err(p, fmt.Errorf("%w: label is required", ErrBadRequest))
	}
	p.Label = label
	return OK(p).Header("Cache-Control", "no-store")
}

func (c *switchCmp) handlePeek(_ context.Context, p testProps, _ *http.Request) Result[testProps] {
	return OK(p).Status(http.StatusAccepted)
}

func newTestRegistry(comps ...HXComponent) *Registry {
	reg := NewRegistry([]byte("test-key"))
	reg.Add(comps...)
	return reg
}

func TestComponentPrefix(t *testing.T) {
	c := newSwitch()
	if !strings.HasPrefix(c.Prefix(), "/_c/switch-") {
		t.Errorf("Prefix() = %q, want /_c/switch-<hash>", c.Prefix())
	}
	if c.HXPrefix() != c.Prefix() {
		t.Error("HXPrefix() should equal Prefix()")
	}
	if c.Name() != "switch" || c.IsSensitive() {
		t.Errorf("Name() = %q, IsSensitive() = %v", c.Name(), c.IsSensitive())
	}
}

func TestComponentRender(t *testing.T) {
	c := newSwitch()
	newTestRegistry(c)

	result := NewTestRequest(http.MethodGet, c.Refresh(testProps{Label: "lamp", On: true}).URL()).Do(c)
	if !result.IsOK() {
		t.Fatalf("status = %d, want 200: %s", result.StatusCode, result.HTML)
	}
	if !result.HTMLContains("lamp:true") {
		t.Errorf("HTML = %q, want lamp:true", result.HTML)
	}
	if ct := result.Headers.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestComponentRenderWithoutProps(t *testing.T) {
	c := newSwitch()
	newTestRegistry(c)

	result := NewTestRequest(http.MethodGet, c.Prefix()+"/").Do(c)
	if !result.HTMLContains("default:false") {
		t.Errorf("HTML = %q, want hydrated defaults", result.HTML)
	}
}

func TestComponentAction(t *testing.T) {
	c := newSwitch()
	newTestRegistry(c)

	result := TestAction(c, c.Call("flip", testProps{Label: "lamp"}), nil)
	if !result.IsOK() {
		t.Fatalf("status = %d, want 200", result.StatusCode)
	}
	if !result.HTMLContains("lamp:true") {
		t.Errorf("HTML = %q, want lamp:true", result.HTML)
	}
	if !result.HasEvent("switch:flipped") {
		t.Fatalf("events = %v, want switch:flipped", result.Events)
	}
	if result.EventData("switch:flipped")["on"] != true {
		t.Errorf("event data = %v", result.EventData("switch:flipped"))
	}
}

func TestComponentActionFormValues(t *testing.T) {
	c := newSwitch()
	newTestRegistry(c)

	result := TestAction(c, c.Call("rename", testProps{}), map[string]string{"label": "fan"})
	if !result.HTMLContains("fan:false") {
		t.Errorf("HTML = %q, want fan:false", result.HTML)
	}
	if result.Headers.Get("Cache-Control") != "no-store" {
		t.Error("custom header not applied")
	}

	bad := TestAction(c, c.Call("rename", testProps{}), nil)
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a missing label", bad.StatusCode)
	}
}

func TestComponentGetAction(t *testing.T) {
	c := newSwitch()
	newTestRegistry(c)

	result := TestAction(c, c.Call("peek", testProps{Label: "x"}), nil)
	if result.StatusCode != http.StatusAccepted {
		t.Errorf("status = %d, want 202", result.StatusCode)
	}
}

func TestComponentErrors(t *testing.T) {
	c := newSwitch()
	newTestRegistry(c)

	valid := c.Call("flip", testProps{Label: "lamp"})

	tests := []struct {
		name   string
		req    *TestRequestBuilder
		expect int
	}{
		{"unknown action", NewTestRequest(http.MethodPost, c.Prefix()+"/nope"), http.StatusNotFound},
		{"wrong method", NewTestRequest(http.MethodGet, c.Prefix()+"/flip"), http.StatusNotFound},
		{"post to render", NewTestRequest(http.MethodPost, c.Prefix()+"/"), http.StatusNotFound},
		{"tampered props", NewTestRequest(http.MethodPost, valid.url).Props(valid.encoded + "x"), http.StatusBadRequest},
		{"garbage props", NewTestRequest(http.MethodPost, valid.url).Props("garbage"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Do(c).StatusCode; got != tt.expect {
				t.Errorf("status = %d, want %d", got, tt.expect)
			}
		})
	}
}

func TestComponentHydrationError(t *testing.T) {
	c := newSwitch()
	c.hydrateErr = errors.New("store offline")
	newTestRegistry(c)

	result := NewTestRequest(http.MethodGet, c.Prefix()+"/").Do(c)
	if result.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", result.StatusCode)
	}
}

func TestComponentNotBound(t *testing.T) {
	c := &switchCmp{Component: New[testProps]("unbound")}

	result := NewTestRequest(http.MethodGet, c.Prefix()+"/").Do(c)
	if result.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", result.StatusCode)
	}
}

func TestComponentSensitive(t *testing.T) {
	c := newSwitch()
	c.Sensitive()
	newTestRegistry(c)

	a := c.Call("flip", testProps{Label: "secret"})
	if strings.Contains(a.encoded, ".") {
		t.Errorf("encrypted props should be opaque, got %q", a.encoded)
	}
	if result := TestAction(c, a, nil); !result.HTMLContains("secret:true") {
		t.Errorf("HTML = %q, want secret:true", result.HTML)
	}
}

func TestComponentCallUnknownPanics(t *testing.T) {
	c := newSwitch()
	newTestRegistry(c)

	defer func() {
		if recover() == nil {
			t.Error("Call with an unknown action should panic")
		}
	}()
	c.Call("missing", testProps{})
}

func TestTestRender(t *testing.T) {
	result, err := TestRender[testProps](newSwitch(), testProps{On: true})
	if err != nil {
		t.Fatalf("TestRender() error = %v", err)
	}
	if !result.HTMLContainsAll("default", "true") {
		t.Errorf("HTML = %q", result.HTML)
	}

	failing := newSwitch()
	failing.hydrateErr = errors.New("nope")
	if _, err := TestRender[testProps](failing, testProps{}); err == nil {
		t.Error("TestRender() should surface hydration errors")
	}
}

func TestComponentCarrier(t *testing.T) {
	c := newSwitch()
	newTestRegistry(c)

	var buf strings.Builder
	if err := c.Carrier("switch-props", testProps{Label: "lamp", On: true}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Carrier render error = %v", err)
	}
	markup := buf.String()
	if !strings.HasPrefix(markup, `<input id="switch-props" name="p" type="hidden" value="`) {
		t.Errorf("carrier markup = %q", markup)
	}

	encoded, ok := CarrierValue(markup, "switch-props")
	if !ok || encoded == "" {
		t.Fatalf("CarrierValue() = %q, %v", encoded, ok)
	}
	var got testProps
	if err := c.Encoder().Decode(encoded, false, &got); err != nil {
		t.Fatalf("Decode carrier: %v", err)
	}
	if got.Label != "lamp" || !got.On {
		t.Errorf("carrier props = %+v", got)
	}

	if _, ok := CarrierValue(markup, "other"); ok {
		t.Error("CarrierValue found a carrier under the wrong id")
	}
}

func TestComponentCarrierWithoutEncoder(t *testing.T) {
	c := newSwitch()
	var buf strings.Builder
	if err := c.Carrier("x", testProps{}).Render(context.Background(), &buf); err == nil {
		t.Error("Carrier without an encoder should fail to render")
	}
}

func TestComponentSend(t *testing.T) {
	c := newSwitch()
	newTestRegistry(c)

	a := c.Send("rename").Include("#switch-props").Vals(map[string]any{"label": "fan"})
	attrs := a.Attrs()
	if attrs["hx-post"] != c.Prefix()+"/rename" {
		t.Errorf("hx-post = %v", attrs["hx-post"])
	}
	if attrs["hx-include"] != "#switch-props" {
		t.Errorf("hx-include = %v", attrs["hx-include"])
	}
	if vals := attrs["hx-vals"].(string); strings.Contains(vals, `"p"`) {
		t.Errorf("hx-vals = %s, want no props", vals)
	}

	encoded, _ := c.EncodeProps(testProps{Label: "lamp", On: true})
	result := TestSend(c, a, encoded, nil)
	if !result.HTMLContains("fan:true") {
		t.Errorf("HTML = %q, want fan:true", result.HTML)
	}
}

func TestComponentSendUnknownPanics(t *testing.T) {
	c := newSwitch()
	defer func() {
		if recover() == nil {
			t.Error("Send with an unknown action should panic")
		}
	}()
	c.Send("missing")
}
