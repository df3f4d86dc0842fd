// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/dmsclub/newsletter-engine/internal/pipeline"
	"github.com/dmsclub/newsletter-engine/pkg/types"
)

var publishCmd = &cobra.Command{
	Use:   "publish [month]",
	Short: "Run the full newsletter workflow for a month",
	Long: `Publish runs the complete workflow: locate the newsletter PDF and
companion document in storage, extract the summary, publish the PDF
through the CMS, and create a draft email campaign. The campaign is left
in draft state for manual review and sending.

When the month is omitted an interactive prompt requests it.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().Int("year", 0, "newsletter year (default: current year)")
	publishCmd.Flags().String("template", "", "override the HTML template path")
	publishCmd.Flags().Bool("json", false, "print the run report as JSON")
	publishCmd.Flags().Bool("yaml", false, "print the run report as YAML")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	month, err := monthArg(args, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	year, _ := cmd.Flags().GetInt("year")
	year = yearOrCurrent(year)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if tpl, _ := cmd.Flags().GetString("template"); tpl != "" {
		cfg.TemplatePath = tpl
	}

	mailer, err := newMailchimp(cfg)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Storage:       newDropbox(cfg),
		CMS:           newWix(cfg),
		Mailer:        mailer,
		TemplatePath:  cfg.TemplatePath,
		SummaryMaxLen: cfg.Summary.MaxLength,
	}

	report, err := p.Run(cmd.Context(), month, year, os.Stdout)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	return writeReport(report, asJSON, asYAML)
}

// writeReport prints the run report as text, JSON, or YAML.
func writeReport(report *types.RunReport, asJSON, asYAML bool) error {
	switch {
	case asJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case asYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		printTextReport(report)
		return nil
	}
}

func printTextReport(r *types.RunReport) {
	fmt.Println()
	fmt.Printf("Newsletter distribution ready: %s %d\n", r.Month, r.Year)
	fmt.Printf("  PDF:            %s\n", r.Documents.PDF.Name)
	fmt.Printf("  Share link:     %s\n", r.Published.ShareURL)
	fmt.Printf("  Published file: %s\n", r.Published.Media.URL)
	fmt.Printf("  Content record: %s (%s)\n", r.Published.ItemID, r.Published.Title)
	if r.Summary.Defaulted {
		fmt.Printf("  Summary:        %s (default: %s)\n", r.Summary.Text, r.Summary.Reason)
	} else {
		fmt.Printf("  Summary:        %s\n", r.Summary.Text)
	}
	fmt.Printf("  Campaign:       %s (draft)\n", r.Campaign.ID)
	fmt.Printf("  Review at:      %s\n", r.Campaign.ReviewURL)
	fmt.Println()
	fmt.Println("Review the draft and send it from the Mailchimp UI when ready.")
}
