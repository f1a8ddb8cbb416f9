package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/menutrail/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [menu...]",
	Short: "Check the menus for consistency",
	Long: `Reports duplicate links, parents that do not exist or belong to another
menu, and parent cycles. Without arguments every menu of the source is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		store, err := a.store()
		if err != nil {
			return err
		}

		menus := args
		if len(menus) == 0 {
			if menus, err = store.Menus(cmd.Context()); err != nil {
				return fmt.Errorf("failed to list menus: %w", err)
			}
		}

		if err := validator.ValidateMenus(cmd.Context(), store, menus...); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d menu(s) valid! ✅\n", len(menus))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
