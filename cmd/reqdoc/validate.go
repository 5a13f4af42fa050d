package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/reqdoc/pkg/omap"
)

var validateCmd = &cobra.Command{
	Use:   "validate [glob...]",
	Short: "Validate checklist files",
	Long: `Validate loads every file matching the given glob patterns (doublestar
syntax, e.g. "checklists/**/*.json") and reports parse errors, records that
would be skipped on save, and dangling content-type references.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var paths []string
		for _, pattern := range args {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				fmt.Fprintf(os.Stderr, "bad pattern %q: %v\n", pattern, err)
				os.Exit(1)
			}
			paths = append(paths, matches...)
		}
		if len(paths) == 0 {
			fmt.Fprintln(os.Stderr, "no files matched")
			os.Exit(1)
		}

		failed := false
		for _, path := range paths {
			if err := validateFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func validateFile(path string) error {
	session, err := loadSession(path)
	if err != nil {
		return err
	}

	doc := session.Document()
	reqs := doc.Requirements()
	malformed := 0
	for _, key := range reqs.Keys() {
		raw, _ := reqs.Get(key)
		if _, ok := raw.(*omap.Map); !ok {
			malformed++
			fmt.Printf("  warn: %s: requirement %q is not an object and would be dropped on save\n", path, key)
		}
	}

	dangling, err := session.DanglingReferences()
	if err != nil {
		return err
	}
	for key, ids := range dangling {
		fmt.Printf("  warn: %s: requirement %q references unknown content types %v\n", path, key, ids)
	}

	fmt.Printf("OK   %s (%d requirements, %d malformed, %d with dangling refs)\n",
		path, reqs.Len(), malformed, len(dangling))
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
