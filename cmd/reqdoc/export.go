package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/reqdoc/pkg/adapters/codec"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Normalize and export a checklist",
	Long: `Export loads a checklist, stamps the next version and modification
date, normalizes every requirement to the full standard schema and writes
the result. Output goes to stdout unless -o is given; writes to a file
are atomic.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, err := loadSession(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		data, warnings, err := session.Serialize()
		if err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warn:", w)
		}

		out, err := encodeAs(data, exportFormat, exportOut)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if exportOut == "" {
			os.Stdout.Write(out)
			return
		}
		if err := codec.WriteFileAtomic(exportOut, out, 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// encodeAs re-encodes serialized JSON into the requested output format.
// The format flag wins; otherwise the output extension decides.
func encodeAs(jsonData []byte, format, outPath string) ([]byte, error) {
	var c codec.Codec
	if format != "" {
		var err error
		c, err = codec.ForName(format)
		if err != nil {
			return nil, err
		}
	} else if outPath != "" {
		c = codec.ForPath(outPath)
	} else {
		c = codec.JSON{}
	}

	if c.Name() == "json" {
		return jsonData, nil
	}
	root, err := (codec.JSON{}).Decode(jsonData)
	if err != nil {
		return nil, err
	}
	return c.Encode(root)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format: json or yaml (default by extension)")
}
