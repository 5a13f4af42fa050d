package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/reqdoc/pkg/adapters/codec"
	"github.com/aretw0/reqdoc/pkg/core"
)

var bumpCmd = &cobra.Command{
	Use:   "bump [file]",
	Short: "Stamp the next version and rewrite the file in place",
	Long: `Bump applies only the version/timestamp policy and the save-time
normalization, rewriting the file atomically. The sequence increments
within the current month and restarts at r1 on a month change.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		session, err := loadSession(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		data, warnings, err := session.Serialize()
		if err != nil {
			fmt.Fprintf(os.Stderr, "bump failed: %v\n", err)
			os.Exit(1)
		}
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warn:", w)
		}

		out, err := encodeAs(data, "", path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := codec.WriteFileAtomic(path, out, 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		meta := session.Document().Metadata()
		fmt.Printf("%s -> version %s\n", path, core.GetString(meta, "version", ""))
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)
}
