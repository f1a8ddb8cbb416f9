package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/menutrail/internal/presentation/graph"
	"github.com/aretw0/menutrail/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the menu tree visualization",
	Long: `Loads a whole menu and outputs a Mermaid diagram (graph TD) of it.
With --current or --trail the trail is highlighted; with --relation the
links that relation selects are highlighted too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		menuName, current, trail := positionFlags(cmd)
		tree, err := a.nav.Loader().Load(cmd.Context(), menuName, domain.NewLoadParameters(domain.RootID))
		if err != nil {
			return fmt.Errorf("failed to load menu '%s': %w", menuName, err)
		}

		var overlay *graph.GraphOverlay
		if current != "" || trail != "" {
			ctx, err := a.position(cmd.Context(), current, trail)
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{}

			if relation, _ := cmd.Flags().GetString("relation"); relation != "" {
				rel, err := domain.ParseRelation(relation)
				if err != nil {
					return err
				}
				sel, err := a.nav.Explain(ctx, rel, menuName, nil)
				if err != nil {
					return err
				}
				overlay.Trail = sel.Trail
				for _, el := range sel.Tree.Elements() {
					overlay.Selected = append(overlay.Selected, el.Link.ID)
				}
			} else if overlay.Trail, err = a.nav.Trail(ctx, menuName, nil); err != nil {
				return err
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(menuName, tree, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addPositionFlags(graphCmd)
	graphCmd.Flags().StringP("relation", "r", "", "Highlight the links selected by this relation")
}
