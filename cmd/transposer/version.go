package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/transposer"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of transposer",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "transposer version %s\n", strings.TrimSpace(transposer.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
