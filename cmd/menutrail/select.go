package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/menutrail/internal/presentation/tui"
	"github.com/aretw0/menutrail/pkg/domain"
)

var selectCmd = &cobra.Command{
	Use:   "select [relation]",
	Short: "Select the links related to the current position",
	Long: `Runs one positional selector (children, parent, siblings, next, previous)
against a menu and prints the result. On a terminal the result is rendered
as Markdown; otherwise one link per line, or JSON with --json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		relation := string(domain.RelationChildren)
		if len(args) > 0 {
			relation = args[0]
		}
		rel, err := domain.ParseRelation(relation)
		if err != nil {
			return err
		}

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		menuName, current, trail := positionFlags(cmd)
		ctx, err := a.position(cmd.Context(), current, trail)
		if err != nil {
			return err
		}

		anchor, err := entityFlag(cmd)
		if err != nil {
			return err
		}

		sel, err := a.nav.Explain(ctx, rel, menuName, anchor)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()
		switch {
		case asJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(sel)
		case term.IsTerminal(int(os.Stdout.Fd())):
			rendered, err := tui.NewRenderer()(tui.Markdown(menuName, sel))
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		default:
			fmt.Fprint(out, tui.Plain(sel))
		}
		return nil
	},
}

// entityFlag decodes --entity, a JSON anchor entity or @file.
func entityFlag(cmd *cobra.Command) (*domain.AnchorEntity, error) {
	raw, _ := cmd.Flags().GetString("entity")
	if raw == "" {
		return nil, nil
	}
	data := []byte(raw)
	if raw[0] == '@' {
		var err error
		if data, err = os.ReadFile(raw[1:]); err != nil {
			return nil, fmt.Errorf("failed to read entity: %w", err)
		}
	}
	var anchor domain.AnchorEntity
	if err := json.Unmarshal(data, &anchor); err != nil {
		return nil, fmt.Errorf("invalid entity: %w", err)
	}
	return &anchor, nil
}

func init() {
	rootCmd.AddCommand(selectCmd)
	addPositionFlags(selectCmd)
	selectCmd.Flags().String("entity", "", "Anchor entity as JSON, or @file")
	selectCmd.Flags().Bool("json", false, "Print the selection as JSON")
}
