package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"markitdown-api/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of mdconvert",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mdconvert %s\n", config.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
