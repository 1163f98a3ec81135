// Package hxcmp is a small component runtime for server-rendered, HTMX-driven
// pages built with templ.
//
// A component embeds *Component[P] where P is its props type. Props hold the
// component's entire state and travel with every request, signed (default)
// or encrypted (Sensitive), so the server stays stateless.
//
//	type Shell struct {
//	    *hxcmp.Component[ShellProps]
//	}
//
//	func NewShell() *Shell {
//	    c := &Shell{Component: hxcmp.New[ShellProps]("shell")}
//	    c.Action("toggle", c.handleToggle)
//	    c.Bind(c)
//	    return c
//	}
//
// The lifecycle of a request is fixed:
//
//  1. decode props from the "p" parameter
//  2. Hydrate(ctx, *P)
//  3. route GET / to Render, other paths to the named action
//  4. apply the action's Result (headers, events, redirect) and Render
//
// Props types implement encoding.Encodable on the value and
// encoding.Decodable on the pointer.
//
// # Registration
//
//	reg := hxcmp.NewRegistry(key)
//	reg.Add(shell)
//	router.Handle("/_c/*", reg.Handler())
//
// Mutating requests must carry the HX-Request header that HTMX always sends,
// which rejects plain cross-origin form posts without extra tokens.
package hxcmp
