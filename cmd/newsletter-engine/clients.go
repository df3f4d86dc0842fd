// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dmsclub/newsletter-engine/internal/config"
	"github.com/dmsclub/newsletter-engine/internal/dropbox"
	"github.com/dmsclub/newsletter-engine/internal/mailchimp"
	"github.com/dmsclub/newsletter-engine/internal/wix"
	"github.com/dmsclub/newsletter-engine/pkg/types"
)

// loadConfig builds the engine configuration, failing fast when required
// credentials are absent.
func loadConfig() (types.Config, error) {
	return config.Load(viper.GetViper())
}

func newDropbox(cfg types.Config) *dropbox.Client {
	return dropbox.NewClient(cfg.Storage)
}

func newWix(cfg types.Config) *wix.Client {
	return wix.NewClient(cfg.CMS)
}

func newMailchimp(cfg types.Config) (*mailchimp.Client, error) {
	return mailchimp.NewClient(cfg.Messaging)
}

// monthArg returns the month from args, or prompts for one when absent.
// The month name is used verbatim as the folder name.
func monthArg(args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 {
		if m := strings.TrimSpace(args[0]); m != "" {
			return m, nil
		}
	}

	fmt.Fprint(out, "Enter month (e.g. \"December\"): ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return "", fmt.Errorf("month is required")
	}
	month := strings.TrimSpace(scanner.Text())
	if month == "" {
		return "", fmt.Errorf("month is required")
	}
	return month, nil
}

// yearOrCurrent resolves the --year flag, defaulting to the current year.
func yearOrCurrent(year int) int {
	if year > 0 {
		return year
	}
	return time.Now().Year()
}
