package hxcmp

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// Registry manages component registration and routing.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent

	// Logger receives server-side failures. Defaults to slog.Default().
	Logger *slog.Logger

	// OnError is called when a component request fails. Customize this to
	// handle errors appropriately for your application.
	OnError ErrorHandler
}

// NewRegistry creates a new component registry with the given key.
func NewRegistry(key []byte) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxcmp: failed to create encoder: %v", err))
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		Logger:     slog.Default(),
	}
	reg.OnError = reg.defaultError
	return reg
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components with the registry. Components must embed
// *hxcmp.Component[P] and have called Bind. Panics on a prefix collision.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		reg.register(comp)
	}
}

func (reg *Registry) register(comp HXComponent) {
	m, ok := comp.(mountable)
	if !ok {
		panic(fmt.Sprintf("hxcmp: %T does not embed *hxcmp.Component[P]", comp))
	}

	prefix := m.HXPrefix()
	if _, exists := reg.components[prefix]; exists {
		panic(fmt.Sprintf("hxcmp: prefix collision for %q", prefix))
	}

	m.SetEncoder(reg.encoder)
	m.SetErrorHandler(reg.handleError)
	reg.components[prefix] = comp

	reg.mux.HandleFunc(prefix+"/", m.HXServeHTTP)
}

// Components returns the number of registered components.
func (reg *Registry) Components() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.components)
}

// Handler returns the HTTP handler for component routes.
// Mount this at "/_c/" in your application.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require HX-Request header
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}

		reg.mux.ServeHTTP(w, r)
	})
}

func (reg *Registry) handleError(w http.ResponseWriter, r *http.Request, err error) {
	reg.OnError(w, r, err)
}

func (reg *Registry) defaultError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		reg.Logger.ErrorContext(r.Context(), "component request failed",
			"method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		reg.Logger.DebugContext(r.Context(), "component request rejected",
			"method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	DefaultErrorHandler(w, r, err)
}

// DefaultErrorHandler writes a plain-text response with the status from
// StatusCode. Components use it until they are added to a registry.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := StatusCode(err)
	switch status {
	case http.StatusNotFound:
		http.Error(w, "Not found", status)
	case http.StatusBadRequest:
		http.Error(w, "Bad request", status)
	default:
		http.Error(w, "Internal error", status)
	}
}
