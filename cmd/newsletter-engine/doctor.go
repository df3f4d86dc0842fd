// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify credentials against all three services",
	Long: `Doctor checks each configured credential with a read-only call: the
storage account lookup, the CMS collections listing, and the email
service's health endpoint. Token-expiry and permission problems surface
here before a publish run fails halfway through.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	failures := 0

	account, err := newDropbox(cfg).CurrentAccount(ctx)
	if err != nil {
		fmt.Printf("Dropbox:   FAILED (%v)\n", err)
		failures++
	} else {
		fmt.Printf("Dropbox:   ok (%s, %s)\n", account.Name.DisplayName, account.Email)
	}

	collections, err := newWix(cfg).ListCollections(ctx)
	if err != nil {
		fmt.Printf("Wix:       FAILED (%v)\n", err)
		failures++
	} else {
		fmt.Printf("Wix:       ok (%d collections)\n", len(collections))
	}

	mailer, err := newMailchimp(cfg)
	if err != nil {
		fmt.Printf("Mailchimp: FAILED (%v)\n", err)
		failures++
	} else if status, err := mailer.Ping(ctx); err != nil {
		fmt.Printf("Mailchimp: FAILED (%v)\n", err)
		failures++
	} else {
		fmt.Printf("Mailchimp: ok (%s)\n", status)
	}

	if failures > 0 {
		return fmt.Errorf("%d service check(s) failed", failures)
	}
	return nil
}
