package hxcmp

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response.
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hxcmp.Render(w, r, page())
//	}
//
// Component handlers don't need this; the component auto-renders.
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// PrefersColorSchemeHeader is the client hint carrying the user agent's
// preferred color scheme.
const PrefersColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

// PrefersDark reports whether the client hint asks for a dark scheme. The
// second return value is false when the hint is absent or unrecognized.
func PrefersDark(r *http.Request) (dark bool, ok bool) {
	switch strings.Trim(strings.ToLower(r.Header.Get(PrefersColorSchemeHeader)), `" `) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// BuildTriggerHeader builds an HX-Trigger header value.
//
//  1. No events: ""
//  2. One event without data: "item-updated"
//  3. Otherwise a JSON object keyed by event name, with true for events
//     without data
func BuildTriggerHeader(events []Event) string {
	switch {
	case len(events) == 0:
		return ""
	case len(events) == 1 && events[0].Data == nil:
		return events[0].Name
	}

	merged := make(map[string]any, len(events))
	for _, ev := range events {
		if ev.Data != nil {
			merged[ev.Name] = ev.Data
		} else {
			merged[ev.Name] = true
		}
	}

	data, _ := json.Marshal(merged)
	return string(data)
}

// ParseTriggerHeader is the inverse of BuildTriggerHeader. Events without
// data map to nil.
func ParseTriggerHeader(header string) map[string]map[string]any {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}

	if !strings.HasPrefix(header, "{") {
		out := make(map[string]map[string]any)
		for _, name := range strings.Split(header, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out[name] = nil
			}
		}
		return out
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(header), &raw); err != nil {
		return nil
	}
	out := make(map[string]map[string]any, len(raw))
	for name, msg := range raw {
		var data map[string]any
		if err := json.Unmarshal(msg, &data); err != nil {
			data = nil
		}
		out[name] = data
	}
	return out
}
