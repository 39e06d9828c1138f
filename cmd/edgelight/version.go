package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/edgelight"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of edgelight",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "edgelight version %s\n", edgelight.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
