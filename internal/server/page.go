package server

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/junitguide/internal/components"
	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/guide"
	"github.com/pthm/junitguide/internal/hxcmp"
	"github.com/pthm/junitguide/internal/render"
)

// pageFor renders the full document for state. A nil inline links assets;
// otherwise the given style sheets and scripts are embedded. With auto set
// the page script may flip the theme once the browser reports its scheme.
func pageFor(shell *components.Shell, state guide.State, auto bool, inline *inlineAssets) templ.Component {
	props := components.Props(state)
	opts := render.PageOptions{Title: components.Title, Dark: props.Dark, AutoTheme: auto}
	if inline != nil {
		opts.Inline = true
		opts.Styles = inline.styles
		opts.Scripts = inline.scripts
	}
	return render.Page(opts, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return shell.Render(ctx, props).Render(ctx, w)
	}))
}

type inlineAssets struct {
	styles  []string
	scripts []string
}

// ExportOptions configures a static export.
type ExportOptions struct {
	Store *content.Store
	State guide.State
	// Secret signs the embedded props. Empty uses a random key, which makes
	// the exported actions unusable against any server.
	Secret string
}

// Export writes the initial page for opts.State as a single HTML document
// with every style sheet and script inlined.
func Export(ctx context.Context, w io.Writer, opts ExportOptions) error {
	store := opts.Store
	if store == nil {
		store = content.Default()
	}

	key, err := signingKey(opts.Secret)
	if err != nil {
		return err
	}
	comps := components.Init(store, hxcmp.NewRegistry(key))

	chroma, err := render.StyleSheet()
	if err != nil {
		return err
	}
	inline := &inlineAssets{
		styles:  []string{chroma, mustAsset("guide.css")},
		scripts: []string{mustAsset("guide.js")},
	}

	if err := pageFor(comps.Shell, opts.State, false, inline).Render(ctx, w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
