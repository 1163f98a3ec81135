package components

import (
	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/hxcmp"
)

// Components holds the registered components the pages render.
type Components struct {
	Shell *Shell
}

// Init creates all components over store and registers them with reg.
// Call this once at application startup before handling requests.
func Init(store *content.Store, reg *hxcmp.Registry) *Components {
	c := &Components{Shell: NewShell(store)}
	reg.Add(c.Shell)
	return c
}
