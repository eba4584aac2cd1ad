package main

import (
	"fmt"

	"github.com/spf13/cobra"

	gochart "github.com/VantageDataChat/GoChart"
)

// newIconsCmd creates the icons command.
func (a *App) newIconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "List pictogram icons by category",
		Long: `List the builtin pictogram icons plus any pack named by icons.path in the
configuration file, grouped by category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			icons, err := a.iconRepository()
			if err != nil {
				return err
			}
			groups := icons.ByCategory()
			for _, category := range gochart.Categories(icons) {
				fmt.Fprintf(a.stdout, "%s:\n", category)
				for _, icon := range groups[category] {
					marker := ""
					if icon.ID == gochart.DefaultIconID {
						marker = " (default)"
					}
					fmt.Fprintf(a.stdout, "  %s%s\n", icon.ID, marker)
				}
			}
			return nil
		},
	}
}
