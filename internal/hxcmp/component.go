package hxcmp

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/junitguide/internal/hxcmp/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// PropsParam is the request parameter carrying encoded props.
const PropsParam = "p"

// HandlerFunc is the signature of an action handler.
type HandlerFunc[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

type actionDef[P any] struct {
	name    string
	method  string
	handler HandlerFunc[P]
}

// Component is the base type embedded by components. P is the props type.
//
// Each component instance receives a deterministic URL prefix derived from
// its name and the source location of the New call.
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	encoder   *Encoder
	onError   ErrorHandler
	impl      Lifecycle[P]
}

// New creates a component with the given name.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
		onError: DefaultErrorHandler,
	}
}

// Sensitive switches the component from signed to encrypted props.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Bind attaches the concrete component's lifecycle. It must be called once
// from the component constructor.
func (c *Component[P]) Bind(impl Lifecycle[P]) {
	c.impl = impl
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Prefix returns the URL prefix all of the component's routes live under.
func (c *Component[P]) Prefix() string {
	return c.prefix
}

// IsSensitive returns whether the component uses encrypted props.
func (c *Component[P]) IsSensitive() bool {
	return c.sensitive
}

// Action registers a named handler. Actions default to POST.
//
//	c.Action("toggle", c.handleToggle)
//	c.Action("preview", c.handlePreview).Method(http.MethodGet)
func (c *Component[P]) Action(name string, handler HandlerFunc[P]) *ActionBuilder {
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// SetEncoder sets the props encoder (called by the registry).
func (c *Component[P]) SetEncoder(enc *Encoder) {
	c.encoder = enc
}

// Encoder returns the component's props encoder.
func (c *Component[P]) Encoder() *Encoder {
	return c.encoder
}

// SetErrorHandler replaces the error responder (called by the registry).
func (c *Component[P]) SetErrorHandler(h ErrorHandler) {
	if h != nil {
		c.onError = h
	}
}

// EncodeProps serializes props for the component.
func (c *Component[P]) EncodeProps(props P) (string, error) {
	if c.encoder == nil {
		return "", fmt.Errorf("hxcmp: %s: encoder not set", c.name)
	}
	return c.encoder.Encode(props, c.sensitive)
}

// Refresh returns an action that re-renders the component with props.
func (c *Component[P]) Refresh(props P) *Action {
	encoded, _ := c.EncodeProps(props)
	return NewAction(c.prefix+"/", http.MethodGet).withProps(encoded)
}

// Call returns an action for the named handler. It panics if no action of
// that name is registered, which is a wiring bug caught by any render test.
func (c *Component[P]) Call(name string, props P) *Action {
	def, ok := c.actions[name]
	if !ok {
		panic(fmt.Sprintf("hxcmp: %s has no action %q", c.name, name))
	}
	encoded, _ := c.EncodeProps(props)
	return NewAction(c.prefix+"/"+name, def.method).withProps(encoded)
}

// Send returns an action for the named handler that carries no props of its
// own. The request must pick them up from a Carrier through Include, which
// makes every request start from the latest render instead of the one the
// element came from. It panics like Call for an unknown action.
func (c *Component[P]) Send(name string) *Action {
	def, ok := c.actions[name]
	if !ok {
		panic(fmt.Sprintf("hxcmp: %s has no action %q", c.name, name))
	}
	return NewAction(c.prefix+"/"+name, def.method)
}

// Carrier renders the hidden input holding the encoded props under id.
// Render it inside the component root so each swap replaces it.
func (c *Component[P]) Carrier(id string, props P) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		encoded, err := c.EncodeProps(props)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, carrierTag(id, encoded))
		return err
	})
}

func carrierTag(id, encoded string) string {
	return `<input id="` + templ.EscapeString(id) + `" name="` + PropsParam +
		`" type="hidden" value="` + templ.EscapeString(encoded) + `">`
}

// QueueAll is the hx-sync value for a component root that must apply its
// requests one at a time, in the order their events fired.
const QueueAll = "this:queue all"

// HXPrefix implements HXComponent.
func (c *Component[P]) HXPrefix() string {
	return c.prefix
}

// HXServeHTTP decodes props, hydrates, dispatches and renders.
func (c *Component[P]) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c.impl == nil {
		c.onError(w, r, fmt.Errorf("%w: %s", ErrNotBound, c.name))
		return
	}

	var props P
	if encoded := r.FormValue(PropsParam); encoded != "" {
		if c.encoder == nil {
			c.onError(w, r, fmt.Errorf("hxcmp: %s: encoder not set", c.name))
			return
		}
		if err := c.encoder.Decode(encoded, c.sensitive, &props); err != nil {
			c.onError(w, r, decodeError(err))
			return
		}
	}

	if err := c.impl.Hydrate(r.Context(), &props); err != nil {
		c.onError(w, r, fmt.Errorf("%w: %w", ErrHydrationFailed, err))
		return
	}

	path := strings.TrimPrefix(r.URL.Path, c.prefix)
	if path == "" || path == "/" {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			c.onError(w, r, fmt.Errorf("%w: %s %s", ErrNotFound, r.Method, r.URL.Path))
			return
		}
		c.handleResult(w, r, OK(props))
		return
	}

	def, ok := c.actions[strings.TrimPrefix(path, "/")]
	if !ok || def.method != r.Method {
		c.onError(w, r, fmt.Errorf("%w: %s %s", ErrNotFound, r.Method, r.URL.Path))
		return
	}

	c.handleResult(w, r, def.handler(r.Context(), props, r))
}

func decodeError(err error) error {
	wrapped := wrapEncodingError(err)
	if wrapped != err {
		return wrapped
	}
	return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
}

func (c *Component[P]) handleResult(w http.ResponseWriter, r *http.Request, result Result[P]) {
	if err := result.GetErr(); err != nil {
		c.onError(w, r, err)
		return
	}

	for k, v := range result.GetHeaders() {
		w.Header().Set(k, v)
	}

	if redirect := result.GetRedirect(); redirect != "" {
		w.Header().Set("HX-Redirect", redirect)
		w.WriteHeader(statusOr(result.GetStatus(), http.StatusOK))
		return
	}

	if trigger := BuildTriggerHeader(result.GetTriggers()); trigger != "" {
		w.Header().Set("HX-Trigger", trigger)
	}

	if result.ShouldSkip() {
		return
	}

	// Render into a buffer so a template failure can still produce an error
	// response instead of a truncated page.
	var buf bytes.Buffer
	if err := c.impl.Render(r.Context(), result.GetProps()).Render(r.Context(), &buf); err != nil {
		c.onError(w, r, fmt.Errorf("hxcmp: render %s: %w", c.name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusOr(result.GetStatus(), http.StatusOK))
	_, _ = buf.WriteTo(w)
}

func statusOr(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}

// componentHash derives a short stable hash from the name and caller location.
func componentHash(name string, skip int) string {
	input := name
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}

// ActionAttrs is a templ helper: the attributes of an action, ready to spread
// onto an element.
func ActionAttrs(a *Action) templ.Attributes {
	if a == nil {
		return templ.Attributes{}
	}
	return a.Attrs()
}
