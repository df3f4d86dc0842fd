// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmsclub/newsletter-engine/internal/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <month>",
	Short: "Extract the meeting summary from the companion document",
	Long: `Summary locates the month's companion meeting-notes document, downloads
it, and prints the extracted summary. When no companion exists or the
document cannot be parsed, the default summary is shown along with the
reason for the fallback.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().Int("year", 0, "newsletter year (default: current year)")

	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	year, _ := cmd.Flags().GetInt("year")
	year = yearOrCurrent(year)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newDropbox(cfg)
	docs, err := client.LocateNewsletter(cmd.Context(), args[0], year)
	if err != nil {
		return err
	}

	result := summary.Defaulted("no companion document found")
	if docs.Companion != nil {
		data, err := client.Download(cmd.Context(), docs.Companion.Path)
		if err != nil {
			result = summary.Defaulted("downloading companion document: " + err.Error())
		} else {
			result = summary.FromDocx(data, cfg.Summary.MaxLength)
		}
	}

	if result.Defaulted {
		fmt.Printf("Summary (default): %s\n", result.Text)
		fmt.Printf("Reason: %s\n", result.Reason)
	} else {
		fmt.Printf("Summary: %s\n", result.Text)
	}
	return nil
}
