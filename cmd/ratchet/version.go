package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ratchetworks/ratchet"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ratchet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ratchet version %s\n", ratchet.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
