package hxcmp

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// ActionBuilder configures action registration (e.g., HTTP method override).
//
// Returned by Component.Action() to allow optional method override:
//
//	c.Action("toggle", handler)  // POST by default
//	c.Action("preview", handler).Method(http.MethodGet)
type ActionBuilder struct {
	method *string
}

// Method overrides the default POST method for an action.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

// Action describes a client-side request to a component route. Build one
// with Component.Call, Component.Send or Component.Refresh and spread Attrs
// onto an element.
type Action struct {
	url     string
	method  string
	encoded string
	target  string
	include string
	swap    SwapMode
	trigger string
	vals    map[string]any
}

// NewAction creates an action for url using method.
func NewAction(url, method string) *Action {
	return &Action{url: url, method: method}
}

func (a *Action) withProps(encoded string) *Action {
	a.encoded = encoded
	return a
}

// URL returns the request URL, including encoded props for GET actions.
func (a *Action) URL() string {
	if (a.method == http.MethodGet || a.method == "") && a.encoded != "" {
		return a.url + "?" + PropsParam + "=" + a.encoded
	}
	return a.url
}

// Method returns the HTTP method the action is sent with.
func (a *Action) Method() string {
	return a.method
}

// Target sets hx-target to a CSS selector.
func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// TargetThis targets the element carrying the attributes.
func (a *Action) TargetThis() *Action {
	return a.Target("this")
}

// Include sets hx-include. Values of the selected inputs are read when the
// request is sent, not when the element was rendered.
func (a *Action) Include(selector string) *Action {
	a.include = selector
	return a
}

// Swap sets the hx-swap strategy.
func (a *Action) Swap(mode SwapMode) *Action {
	a.swap = mode
	return a
}

// Trigger sets hx-trigger, e.g. "click" or "mouseenter".
func (a *Action) Trigger(trigger string) *Action {
	a.trigger = trigger
	return a
}

// OnEvent triggers the action when event fires anywhere on the page.
func (a *Action) OnEvent(event string) *Action {
	return a.Trigger(event + " from:body")
}

// Vals adds request parameters sent alongside the props. Later calls
// override earlier keys.
func (a *Action) Vals(vals map[string]any) *Action {
	if a.vals == nil {
		a.vals = make(map[string]any, len(vals))
	}
	for k, v := range vals {
		a.vals[k] = v
	}
	return a
}

// Attrs renders the action as HTMX attributes.
func (a *Action) Attrs() templ.Attributes {
	attrs := WireAttrs(a.url, a.method, a.encoded)
	if len(a.vals) > 0 {
		merged := make(map[string]any, len(a.vals)+1)
		if raw, ok := attrs["hx-vals"].(string); ok {
			_ = json.Unmarshal([]byte(raw), &merged)
		}
		for k, v := range a.vals {
			if k == PropsParam {
				continue
			}
			merged[k] = v
		}
		data, _ := json.Marshal(merged)
		attrs["hx-vals"] = string(data)
	}
	if a.target != "" {
		attrs["hx-target"] = a.target
	}
	if a.include != "" {
		attrs["hx-include"] = a.include
	}
	if a.swap != "" {
		attrs["hx-swap"] = string(a.swap)
	}
	if a.trigger != "" {
		attrs["hx-trigger"] = a.trigger
	}
	return attrs
}

// WireAttrs builds the minimal HTMX attributes for a component route.
//
// For GET, returns hx-get with props encoded in the URL query string.
// For POST/PUT/DELETE/PATCH, returns hx-post (etc.) with props in hx-vals.
func WireAttrs(path, method, encoded string) templ.Attributes {
	attrs := templ.Attributes{}

	if method == http.MethodGet || method == "" {
		url := path
		if encoded != "" {
			url = path + "?" + PropsParam + "=" + encoded
		}
		attrs["hx-get"] = url
		return attrs
	}

	switch method {
	case http.MethodPost:
		attrs["hx-post"] = path
	case http.MethodPut:
		attrs["hx-put"] = path
	case http.MethodPatch:
		attrs["hx-patch"] = path
	case http.MethodDelete:
		attrs["hx-delete"] = path
	}
	if encoded != "" {
		data, _ := json.Marshal(map[string]string{PropsParam: encoded})
		attrs["hx-vals"] = string(data)
	}
	return attrs
}
