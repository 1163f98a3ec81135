package hxcmp

// SwapMode defines HTMX swap strategies for how response HTML replaces the target.
//
// See https://htmx.org/attributes/hx-swap/ for visual examples.
type SwapMode string

const (
	// SwapOuter replaces the entire element including its tag. This is the
	// HTMX default when no swap is set.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the element's contents.
	SwapInner SwapMode = "innerHTML"

	// SwapMorph morphs the target into the response with the idiomorph
	// extension (hx-ext="morph"). Elements that survive keep their identity,
	// so listeners and queued requests on them stay valid.
	SwapMorph SwapMode = "morph"

	// SwapNone discards the response. Headers, including HX-Trigger, are
	// still processed.
	SwapNone SwapMode = "none"
)
