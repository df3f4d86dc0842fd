// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmsclub/newsletter-engine/internal/emailtpl"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign <month> <link>",
	Short: "Create a draft campaign from an already-published link",
	Long: `Campaign skips the storage and CMS stages and creates a draft email
campaign directly from a month name and an existing published link. The
local HTML template's placeholders are substituted and the campaign is
left in draft state for manual review.`,
	Args: cobra.ExactArgs(2),
	RunE: runCampaign,
}

func init() {
	campaignCmd.Flags().String("template", "", "override the HTML template path")

	rootCmd.AddCommand(campaignCmd)
}

func runCampaign(cmd *cobra.Command, args []string) error {
	month, link := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if tpl, _ := cmd.Flags().GetString("template"); tpl != "" {
		cfg.TemplatePath = tpl
	}

	template, err := emailtpl.Load(cfg.TemplatePath)
	if err != nil {
		return err
	}
	html := emailtpl.Render(template, month, link)

	mailer, err := newMailchimp(cfg)
	if err != nil {
		return err
	}

	draft, err := mailer.CreateDraft(cmd.Context(), month, html)
	if err != nil {
		return err
	}

	fmt.Printf("Draft campaign created: %s\n", draft.ID)
	fmt.Printf("Review at: %s\n", draft.ReviewURL)
	fmt.Println("Send it from the Mailchimp UI when ready.")
	return nil
}
