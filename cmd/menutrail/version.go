package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/menutrail"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of menutrail",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "menutrail version %s\n", strings.TrimSpace(menutrail.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
