package hxcmp

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestNewAction(t *testing.T) {
	a := NewAction("/test/url", http.MethodPost)

	if a.URL() != "/test/url" {
		t.Errorf("URL() = %q, want %q", a.URL(), "/test/url")
	}

	attrs := a.Attrs()
	if attrs["hx-post"] != "/test/url" {
		t.Errorf("hx-post = %q, want %q", attrs["hx-post"], "/test/url")
	}
	if _, ok := attrs["hx-swap"]; ok {
		t.Error("hx-swap should be left to the HTMX default")
	}
}

func TestActionMethods(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		wantAttr string
	}{
		{"GET", http.MethodGet, "hx-get"},
		{"POST", http.MethodPost, "hx-post"},
		{"PUT", http.MethodPut, "hx-put"},
		{"PATCH", http.MethodPatch, "hx-patch"},
		{"DELETE", http.MethodDelete, "hx-delete"},
		{"empty defaults to GET", "", "hx-get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := NewAction("/url", tt.method).Attrs()
			if _, ok := attrs[tt.wantAttr]; !ok {
				t.Errorf("Expected attribute %q not found", tt.wantAttr)
			}
		})
	}
}

func TestActionProps(t *testing.T) {
	get := NewAction("/c/", http.MethodGet).withProps("abc.def")
	if get.URL() != "/c/?p=abc.def" {
		t.Errorf("URL() = %q, want props in the query", get.URL())
	}
	if get.Attrs()["hx-get"] != "/c/?p=abc.def" {
		t.Errorf("hx-get = %q, want props in the query", get.Attrs()["hx-get"])
	}

	post := NewAction("/c/toggle", http.MethodPost).withProps("abc.def")
	if post.URL() != "/c/toggle" {
		t.Errorf("URL() = %q, want no query for POST", post.URL())
	}
	if post.Attrs()["hx-vals"] != `{"p":"abc.def"}` {
		t.Errorf("hx-vals = %q, want props in hx-vals", post.Attrs()["hx-vals"])
	}
}

func TestActionVals(t *testing.T) {
	a := NewAction("/c/format", http.MethodPost).
		withProps("abc.def").
		Vals(map[string]any{"version": "junit4"}).
		Vals(map[string]any{"format": "gradle", "p": "ignored"})

	raw, ok := a.Attrs()["hx-vals"].(string)
	if !ok {
		t.Fatal("hx-vals not set")
	}

	var vals map[string]string
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		t.Fatalf("hx-vals is not JSON: %v", err)
	}
	want := map[string]string{"p": "abc.def", "version": "junit4", "format": "gradle"}
	for k, v := range want {
		if vals[k] != v {
			t.Errorf("hx-vals[%q] = %q, want %q", k, vals[k], v)
		}
	}
}

func TestActionChaining(t *testing.T) {
	attrs := NewAction("/api/items", http.MethodPost).
		Target("#shell").
		Swap(SwapMorph).
		Include("#shell-props").
		Trigger("mouseenter").
		Attrs()

	if attrs["hx-target"] != "#shell" {
		t.Error("hx-target not set correctly")
	}
	if attrs["hx-swap"] != "morph" {
		t.Error("hx-swap not set correctly")
	}
	if attrs["hx-include"] != "#shell-props" {
		t.Error("hx-include not set correctly")
	}
	if attrs["hx-trigger"] != "mouseenter" {
		t.Error("hx-trigger not set correctly")
	}

	if got := NewAction("/u", http.MethodGet).TargetThis().Attrs()["hx-target"]; got != "this" {
		t.Errorf("TargetThis hx-target = %q, want this", got)
	}
	if got := NewAction("/u", http.MethodGet).OnEvent("saved").Attrs()["hx-trigger"]; got != "saved from:body" {
		t.Errorf("OnEvent hx-trigger = %q, want %q", got, "saved from:body")
	}
}

func TestActionBuilderMethod(t *testing.T) {
	c := New[testProps]("builder")
	c.Action("raw", nil).Method(http.MethodGet)

	if c.actions["raw"].method != http.MethodGet {
		t.Errorf("method = %q, want GET", c.actions["raw"].method)
	}
}
