package hxcmp

// Result[P] is returned from action handlers to control rendering and side effects.
//
// Result is a fluent builder: handlers specify redirects, events, headers
// and status without writing to the ResponseWriter. The component applies
// the Result after the handler returns and calls Render as appropriate.
//
//	// Success - auto-render with updated props
//	return hxcmp.OK(props)
//
//	// Error routed to the registry's error handler
//	return hxcmp.Err(props, err)
//
//	// Broadcast an event with data for page scripts
//	return hxcmp.OK(props).Trigger("theme:apply", map[string]any{"dark": true})
type Result[P any] struct {
	props    P
	err      error
	redirect string
	triggers []Event
	headers  map[string]string
	status   int
	skip     bool
}

// Event is a client-side event emitted through the HX-Trigger header.
type Event struct {
	Name string
	Data map[string]any
}

// OK creates a success result that will auto-render with the given props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err creates an error result that is passed to the error handler.
//
// Decode and hydration failures are reported by the component itself;
// handlers return Err for request validation failures.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Skip creates a result indicating the handler wrote its own response.
func Skip[P any]() Result[P] {
	return Result[P]{skip: true}
}

// Redirect creates a result that will redirect via HX-Redirect header.
func Redirect[P any](url string) Result[P] {
	var zero P
	return Result[P]{props: zero, redirect: url}
}

// Trigger emits an event via the HX-Trigger header. Events accumulate, and
// emitting the same name twice keeps the last data.
func (r Result[P]) Trigger(event string, data ...map[string]any) Result[P] {
	ev := Event{Name: event}
	if len(data) > 0 {
		ev.Data = data[0]
	}
	triggers := make([]Event, 0, len(r.triggers)+1)
	for _, t := range r.triggers {
		if t.Name != event {
			triggers = append(triggers, t)
		}
	}
	r.triggers = append(triggers, ev)
	return r
}

// Header sets a custom response header.
//
//	return hxcmp.OK(props).Header("Cache-Control", "no-store")
func (r Result[P]) Header(key, value string) Result[P] {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers[key] = value
	r.headers = headers
	return r
}

// Status sets the HTTP status code. The default is 200.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

// GetProps returns the props from the result.
func (r Result[P]) GetProps() P {
	return r.props
}

// GetErr returns the error from the result.
func (r Result[P]) GetErr() error {
	return r.err
}

// GetRedirect returns the redirect URL.
func (r Result[P]) GetRedirect() string {
	return r.redirect
}

// GetTriggers returns the emitted events in emission order.
func (r Result[P]) GetTriggers() []Event {
	return r.triggers
}

// GetHeaders returns the response headers.
func (r Result[P]) GetHeaders() map[string]string {
	return r.headers
}

// GetStatus returns the HTTP status code (0 means not set, use default 200).
func (r Result[P]) GetStatus() int {
	return r.status
}

// ShouldSkip returns whether the handler wrote its own response.
func (r Result[P]) ShouldSkip() bool {
	return r.skip
}
