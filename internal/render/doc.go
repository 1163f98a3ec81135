// Package render turns guide content into HTML fragments.
//
// Every exported constructor returns a templ.Component. Components are
// pure: they read their arguments, write markup and touch no other state.
package render
