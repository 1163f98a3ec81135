package components

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/guide"
	"github.com/pthm/junitguide/internal/hxcmp"
)

// ThemeEvent is emitted after every shell action so the page can mirror the
// theme onto the document element.
const ThemeEvent = "theme:apply"

// ShellID is the DOM id every shell action swaps.
const ShellID = "shell"

// PropsID is the DOM id of the hidden input carrying the shell props. Every
// action reads it when its request is sent.
const PropsID = "shell-props"

// PagePath is where the full page is served; deep links point here.
const PagePath = "/"

// Shell is the application shell: header, sidebar and version columns.
type Shell struct {
	*hxcmp.Component[ShellProps]
	store *content.Store
}

// NewShell creates the shell over store.
func NewShell(store *content.Store) *Shell {
	c := &Shell{
		Component: hxcmp.New[ShellProps]("shell"),
		store:     store,
	}
	c.Action("toggle", c.handleToggle)
	c.Action("theme", c.handleTheme)
	c.Action("pin", c.handlePin)
	c.Action("hover", c.handleHover)
	c.Action("leave", c.handleLeave)
	c.Action("format", c.handleFormat)
	c.Bind(c)
	return c
}

// Hydrate normalizes props that arrived from the client.
func (c *Shell) Hydrate(_ context.Context, props *ShellProps) error {
	props.State = props.Normalize()
	return nil
}

// Render produces the shell markup.
func (c *Shell) Render(_ context.Context, props ShellProps) templ.Component {
	return c.view(props)
}

// Props returns shell props for state, normalized.
func Props(s guide.State) ShellProps {
	return ShellProps{State: s.Normalize()}
}

func (c *Shell) handleToggle(_ context.Context, props ShellProps, r *http.Request) hxcmp.Result[ShellProps] {
	v, err := content.ParseVersion(r.FormValue("version"))
	if err != nil {
		return hxcmp.Err(props, fmt.Errorf("%w: %w", hxcmp.ErrBadRequest, err))
	}
	props.State = props.ToggleVersion(v)
	return commit(props)
}

func (c *Shell) handleTheme(_ context.Context, props ShellProps, _ *http.Request) hxcmp.Result[ShellProps] {
	props.State = props.ToggleTheme()
	return commit(props)
}

func (c *Shell) handlePin(_ context.Context, props ShellProps, r *http.Request) hxcmp.Result[ShellProps] {
	pinned, err := strconv.ParseBool(r.FormValue("pinned"))
	if err != nil {
		return hxcmp.Err(props, fmt.Errorf("%w: pinned: %w", hxcmp.ErrBadRequest, err))
	}
	props.State = props.SetSidebarPinned(pinned)
	return commit(props)
}

func (c *Shell) handleHover(_ context.Context, props ShellProps, _ *http.Request) hxcmp.Result[ShellProps] {
	props.State = props.HoverSidebar()
	return commit(props)
}

func (c *Shell) handleLeave(_ context.Context, props ShellProps, _ *http.Request) hxcmp.Result[ShellProps] {
	props.State = props.LeaveSidebar()
	return commit(props)
}

func (c *Shell) handleFormat(_ context.Context, props ShellProps, r *http.Request) hxcmp.Result[ShellProps] {
	v, err := content.ParseVersion(r.FormValue("version"))
	if err != nil {
		return hxcmp.Err(props, fmt.Errorf("%w: %w", hxcmp.ErrBadRequest, err))
	}
	f, err := content.ParseFormat(r.FormValue("format"))
	if err != nil {
		return hxcmp.Err(props, fmt.Errorf("%w: %w", hxcmp.ErrBadRequest, err))
	}
	props.State = props.SetDependencyFormat(v, f)
	return commit(props)
}

// DeepLink returns the page URL that reproduces s.
func DeepLink(s guide.State) string {
	return PagePath + "?" + s.Query().Encode()
}

// commit finishes every action: the theme effect, plus the address bar
// updated to the deep link of the new state.
func commit(props ShellProps) hxcmp.Result[ShellProps] {
	return applyTheme(props).Header("HX-Replace-Url", DeepLink(props.State))
}

// applyTheme is the single side effect of the shell: it tells the page which
// theme marker the document element must carry. It is idempotent.
func applyTheme(props ShellProps) hxcmp.Result[ShellProps] {
	return hxcmp.OK(props).Trigger(ThemeEvent, map[string]any{"dark": props.Dark})
}

// send builds an action aimed at the shell root. Props come from the carrier
// at send time, and the morph swap keeps the controls alive so requests
// queued on them are still sent.
func (c *Shell) send(name string) *hxcmp.Action {
	return c.Send(name).
		Target("#" + ShellID).
		Swap(hxcmp.SwapMorph).
		Include("#" + PropsID)
}
