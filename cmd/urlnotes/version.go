package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version задается при сборке через -ldflags "-X main.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of urlnotes",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "urlnotes version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
