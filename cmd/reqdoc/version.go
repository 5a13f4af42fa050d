package main

import (
	"fmt"

	"github.com/aretw0/reqdoc"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the reqdoc version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("reqdoc " + reqdoc.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
