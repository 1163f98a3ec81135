package hxcmp

import (
	"net/http/httptest"
	"testing"
)

func TestIsHTMX(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if IsHTMX(req) {
		t.Error("IsHTMX() = true without header")
	}
	req.Header.Set("HX-Request", "true")
	if !IsHTMX(req) {
		t.Error("IsHTMX() = false with header")
	}
}

func TestPrefersDark(t *testing.T) {
	tests := []struct {
		header   string
		wantDark bool
		wantOK   bool
	}{
		{"", false, false},
		{"dark", true, true},
		{`"dark"`, true, true},
		{"Light", false, true},
		{"sepia", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(PrefersColorSchemeHeader, tt.header)
			}
			dark, ok := PrefersDark(req)
			if dark != tt.wantDark || ok != tt.wantOK {
				t.Errorf("PrefersDark() = (%v, %v), want (%v, %v)", dark, ok, tt.wantDark, tt.wantOK)
			}
		})
	}
}

func TestBuildTriggerHeader(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		expect string
	}{
		{"none", nil, ""},
		{"simple", []Event{{Name: "item-updated"}}, "item-updated"},
		{"with data", []Event{{Name: "theme:apply", Data: map[string]any{"dark": true}}}, `{"theme:apply":{"dark":true}}`},
		{"mixed", []Event{{Name: "a"}, {Name: "b", Data: map[string]any{"k": "v"}}}, `{"a":true,"b":{"k":"v"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildTriggerHeader(tt.events); got != tt.expect {
				t.Errorf("BuildTriggerHeader() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestParseTriggerHeader(t *testing.T) {
	if got := ParseTriggerHeader(""); got != nil {
		t.Errorf("ParseTriggerHeader(\"\") = %v, want nil", got)
	}

	simple := ParseTriggerHeader("a, b")
	if _, ok := simple["a"]; !ok {
		t.Error("missing event a")
	}
	if _, ok := simple["b"]; !ok {
		t.Error("missing event b")
	}

	parsed := ParseTriggerHeader(`{"a":true,"theme:apply":{"dark":false}}`)
	if _, ok := parsed["a"]; !ok {
		t.Error("missing event a")
	}
	if parsed["theme:apply"]["dark"] != false {
		t.Errorf("theme:apply data = %v, want dark=false", parsed["theme:apply"])
	}
}
