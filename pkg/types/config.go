// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every service client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "newsletter-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StorageConfig holds settings for the Dropbox storage client and the
// document locator that runs on top of it.
type StorageConfig struct {
	HTTPConfig `yaml:",inline"`

	// AccessToken is the Dropbox bearer token.
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty"`

	// RootPath is the parent folder that contains one subfolder per
	// newsletter year (default "/Newsletter/Monthly Newsletters").
	RootPath string `json:"root_path" yaml:"root_path"`

	// PDFSuffix selects the newsletter PDF within a month folder
	// (default "_Web.pdf"). Exactly one entry must match.
	PDFSuffix string `json:"pdf_suffix" yaml:"pdf_suffix"`

	// CompanionMarker is the case-insensitive substring that identifies
	// the companion meeting-notes document (default "ted").
	CompanionMarker string `json:"companion_marker" yaml:"companion_marker"`

	// CompanionExt is the companion document extension (default ".docx").
	CompanionExt string `json:"companion_ext" yaml:"companion_ext"`
}

// CMSConfig holds settings for the Wix media and data clients.
type CMSConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the Wix API key, sent verbatim in the Authorization header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// SiteID is the Wix site identifier, sent in the wix-site-id header.
	SiteID string `json:"site_id" yaml:"site_id"`

	// Collection is the CMS data collection that holds newsletter
	// records (default "Newsletters").
	Collection string `json:"collection" yaml:"collection"`

	// PublicDomain is the site's public domain, used to rewrite imported
	// media URLs away from the GUID usrfiles subdomain
	// (default "www.dmlsclub.com").
	PublicDomain string `json:"public_domain" yaml:"public_domain"`
}

// MessagingConfig holds settings for the Mailchimp client.
type MessagingConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the Mailchimp API key. Its suffix after the last "-"
	// names the datacenter that hosts the account's API endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// ListID is the audience the campaign is scoped to.
	ListID string `json:"list_id" yaml:"list_id"`

	// FromName is the sender display name (default "DMSC").
	FromName string `json:"from_name" yaml:"from_name"`

	// ReplyTo is the reply-to address set on created campaigns.
	ReplyTo string `json:"reply_to" yaml:"reply_to"`
}

// SummaryConfig holds settings for companion-document summary extraction.
type SummaryConfig struct {
	// MaxLength is the maximum summary length in characters (default 300).
	MaxLength int `json:"max_length" yaml:"max_length"`
}

// Config groups all component configurations. It is built once at startup
// and passed explicitly into each component.
type Config struct {
	Storage   StorageConfig   `json:"storage" yaml:"storage"`
	CMS       CMSConfig       `json:"cms" yaml:"cms"`
	Messaging MessagingConfig `json:"messaging" yaml:"messaging"`
	Summary   SummaryConfig   `json:"summary" yaml:"summary"`

	// TemplatePath is the local HTML newsletter template
	// (default "newsletter_template.html").
	TemplatePath string `json:"template_path" yaml:"template_path"`
}
