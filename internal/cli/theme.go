package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Set the output theme, or toggle it when no theme is given",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(_ *cobra.Command, args []string) error {
			var theme string
			if len(args) == 1 {
				theme = args[0]
			}

			if err := app.session.SetTheme(theme); err != nil {
				return err
			}
			if err := app.save(); err != nil {
				return err
			}

			fmt.Fprintf(app.out, "Theme: %s\n", app.session.State.Theme)
			return nil
		},
	}
}
