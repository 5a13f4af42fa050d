package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/reqdoc/pkg/core"
)

var inspectJSON bool

type inspectSummary struct {
	Version        string              `json:"version"`
	DateModified   string              `json:"dateModified"`
	MonitoringType string              `json:"monitoringType"`
	Requirements   int                 `json:"requirements"`
	Categories     []categorySummary   `json:"contentTypes"`
	Dangling       map[string][]string `json:"danglingReferences,omitempty"`
}

type categorySummary struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	SubTypes []string `json:"subTypes"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print a summary of a checklist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, err := loadSession(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		summary, err := summarize(session)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if inspectJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(summary); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		fmt.Printf("version:        %s\n", summary.Version)
		fmt.Printf("dateModified:   %s\n", summary.DateModified)
		fmt.Printf("monitoringType: %s\n", summary.MonitoringType)
		fmt.Printf("requirements:   %d\n", summary.Requirements)
		fmt.Println("contentTypes:")
		for _, cat := range summary.Categories {
			fmt.Printf("  %s (%s)\n", cat.Text, cat.ID)
			for _, st := range cat.SubTypes {
				fmt.Printf("    - %s\n", st)
			}
		}
		for key, ids := range summary.Dangling {
			fmt.Printf("dangling: %s -> %v\n", key, ids)
		}
	},
}

func summarize(session *core.Session) (*inspectSummary, error) {
	meta := session.Document().Metadata()
	summary := &inspectSummary{
		Version:        core.GetString(meta, "version", ""),
		DateModified:   core.GetString(meta, "dateModified", ""),
		MonitoringType: core.GetString(core.GetPath(meta, "monitoringType", nil), "type", ""),
		Requirements:   session.Document().Requirements().Len(),
	}

	cats, err := session.ContentTypes().Categories()
	if err != nil {
		return nil, err
	}
	for _, cat := range cats {
		cs := categorySummary{ID: cat.ID, Text: cat.Text, SubTypes: []string{}}
		for _, child := range cat.Children {
			cs.SubTypes = append(cs.SubTypes, child.ID)
		}
		summary.Categories = append(summary.Categories, cs)
	}

	summary.Dangling, err = session.DanglingReferences()
	if err != nil {
		return nil, err
	}
	if len(summary.Dangling) == 0 {
		summary.Dangling = nil
	}
	return summary, nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output in JSON format")
}
