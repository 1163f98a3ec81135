package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/guide"
	"github.com/pthm/junitguide/internal/termview"
)

func newPrintCommand(opts *options) *cobra.Command {
	var (
		versions []string
		formats  []string
		width    int
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the comparison to the terminal",
		Example: `  junitguide print --versions junit4,junit5,junit6 --width 160
  junitguide print --versions junit5 --format junit5=gradle`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := selection(versions, formats, false)
			if err != nil {
				return err
			}
			store, err := opts.store()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = terminalWidth(cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), termview.Render(store, state, width))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&versions, "versions", nil, "versions to show, by name or slug (default junit5)")
	cmd.Flags().StringSliceVar(&formats, "format", nil, "dependency format per version, as slug=maven|gradle")
	cmd.Flags().IntVar(&width, "width", termview.DefaultWidth, "total output width in cells (default the terminal width)")
	return cmd
}

// selection builds the state a command renders. Unlike the HTTP query
// parser it rejects unknown values, since a typo on the command line
// should not silently fall back to the default.
func selection(versions, formats []string, dark bool) (guide.State, error) {
	s := guide.New(dark)

	if len(versions) > 0 {
		selected := make([]content.Version, 0, len(versions))
		for _, raw := range versions {
			v, err := content.ParseVersion(strings.TrimSpace(raw))
			if err != nil {
				return guide.State{}, err
			}
			selected = append(selected, v)
		}
		s.Selected = selected
	}

	for _, pair := range formats {
		slug, name, ok := strings.Cut(pair, "=")
		if !ok {
			return guide.State{}, fmt.Errorf("invalid --format %q: want version=format", pair)
		}
		v, err := content.ParseVersion(strings.TrimSpace(slug))
		if err != nil {
			return guide.State{}, err
		}
		f, err := content.ParseFormat(strings.TrimSpace(name))
		if err != nil {
			return guide.State{}, err
		}
		s = s.SetDependencyFormat(v, f)
	}

	return s.Normalize(), nil
}

// terminalWidth returns the width of w when it is a terminal and
// termview.DefaultWidth otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return termview.DefaultWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return termview.DefaultWidth
}
