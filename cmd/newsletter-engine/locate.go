// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate <month>",
	Short: "Find the month's newsletter PDF and companion document",
	Long: `Locate lists the month's storage folder and reports the newsletter PDF
and optional companion document without publishing anything. Useful for
checking the folder layout before a publish run.`,
	Args: cobra.ExactArgs(1),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().Int("year", 0, "newsletter year (default: current year)")

	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("PDF:       %s (%s)\n", docs.PDF.Name, docs.PDF.Path)
	if docs.Companion != nil {
		fmt.Printf("Companion: %s (%s)\n", docs.Companion.Name, docs.Companion.Path)
	} else {
		fmt.Println("Companion: none (default summary will be used)")
	}
	return nil
}
