package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/menutrail/pkg/domain"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Build a display block as JSON",
	Long: `Builds the block configured under 'block' in the configuration file,
with flags overriding it, and prints it as JSON with its cache metadata.
Nothing is printed when the selection is empty and --show-empty is not set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.cfg.Block
		flags := cmd.Flags()
		if flags.Changed("relation") {
			raw, _ := flags.GetString("relation")
			if cfg.Relation, err = domain.ParseRelation(raw); err != nil {
				return err
			}
		}
		if flags.Changed("title") {
			cfg.Title, _ = flags.GetString("title")
		}
		if flags.Changed("show-empty") {
			cfg.ShowEmpty, _ = flags.GetBool("show-empty")
		}

		menuName, current, trail := positionFlags(cmd)
		ctx, err := a.position(cmd.Context(), current, trail)
		if err != nil {
			return err
		}
		anchor, err := entityFlag(cmd)
		if err != nil {
			return err
		}

		block, err := a.nav.Build(ctx, cfg, menuName, anchor)
		if err != nil {
			return err
		}
		if block == nil {
			a.logger.Debug("Block dropped: empty selection", "menu", menuName)
			return nil
		}

		data, err := json.MarshalIndent(block, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(blockCmd)
	addPositionFlags(blockCmd)
	blockCmd.Flags().StringP("relation", "r", "children", "Relation to display")
	blockCmd.Flags().String("title", "", "Title shown for every link")
	blockCmd.Flags().Bool("show-empty", false, "Keep the block when the selection is empty")
	blockCmd.Flags().String("entity", "", "Anchor entity as JSON, or @file")
}
