// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the newsletter-engine CLI.
//
// The CLI chains three vendor APIs into a monthly newsletter
// distribution: Dropbox holds the PDF and companion meeting notes, Wix
// hosts the published file and content record, and Mailchimp receives
// the draft campaign. Each stage is also exposed as its own subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmsclub/newsletter-engine/internal/config"
	"github.com/dmsclub/newsletter-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the newsletter-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "newsletter-engine",
	Short: "Assemble the monthly newsletter distribution",
	Long: `newsletter-engine chains the storage, CMS, and email services into a
monthly newsletter distribution. Given a month name it locates the
newsletter PDF in Dropbox, extracts a short summary from the companion
meeting notes, publishes the PDF through Wix, and creates a draft
Mailchimp campaign. Campaigns are always drafts; sending stays manual.

Each workflow stage is a subcommand: locate, summary, campaign, and the
full publish run. doctor verifies credentials against all three services.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotenv()

		// File-mounted credentials fill in anything .env and the
		// environment left unset.
		dir, _ := cmd.Flags().GetString("secrets-dir")
		if err := secrets.ApplyEnv(dir); err != nil {
			fmt.Fprintln(os.Stderr, "warning:", err)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./newsletter-engine.yaml or ~/.config/newsletter-engine/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of credential files, one secret per file")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("newsletter-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "newsletter-engine"))
		}
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
