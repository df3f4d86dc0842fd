// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the engine configuration from viper-managed
// sources: an optional YAML config file, NEWSLETTER_ENGINE_* environment
// variables, the bare legacy variable names (DROPBOX_ACCESS_TOKEN etc.),
// and a local .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dmsclub/newsletter-engine/pkg/types"
)

// EnvPrefix namespaces the engine's environment variables.
const EnvPrefix = "NEWSLETTER_ENGINE"

// Configuration keys. The required credential keys double as the legacy
// environment variable names (uppercased) from the original .env layout.
const (
	KeyDropboxAccessToken = "dropbox_access_token"
	KeyWixAPIKey          = "wix_api_key"
	KeyWixSiteID          = "wix_site_id"
	KeyMailchimpAPIKey    = "mailchimp_api_key"
	KeyMailchimpListID    = "mailchimp_list_id"

	KeyRootPath        = "newsletter_root"
	KeyPDFSuffix       = "pdf_suffix"
	KeyCompanionMarker = "companion_marker"
	KeyCompanionExt    = "companion_ext"
	KeyCollection      = "wix_collection"
	KeyPublicDomain    = "site_public_domain"
	KeyFromName        = "from_name"
	KeyReplyTo         = "reply_to"
	KeyTemplatePath    = "template_path"
	KeySummaryMaxLen   = "summary_max_length"
	KeyHTTPTimeout     = "http_timeout"
	KeyUserAgent       = "user_agent"
)

// requiredKeys are the credentials and identifiers without which no run
// can proceed. Absence of any is a fatal startup error.
var requiredKeys = []string{
	KeyDropboxAccessToken,
	KeyWixAPIKey,
	KeyWixSiteID,
	KeyMailchimpAPIKey,
	KeyMailchimpListID,
}

// MissingError reports required configuration values that were absent.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	vars := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		vars[i] = strings.ToUpper(k)
	}
	return fmt.Sprintf("missing required configuration: %s (set in .env, the environment, or the config file)",
		strings.Join(vars, ", "))
}

// LoadDotenv loads a .env file from the working directory when one
// exists. A missing file is not an error.
func LoadDotenv() {
	_ = godotenv.Load()
}

// SetDefaults registers default values for all optional keys on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRootPath, "/Newsletter/Monthly Newsletters")
	v.SetDefault(KeyPDFSuffix, "_Web.pdf")
	v.SetDefault(KeyCompanionMarker, "ted")
	v.SetDefault(KeyCompanionExt, ".docx")
	v.SetDefault(KeyCollection, "Newsletters")
	v.SetDefault(KeyPublicDomain, "www.dmlsclub.com")
	v.SetDefault(KeyFromName, "DMSC")
	v.SetDefault(KeyReplyTo, "dmscnews@gmail.com")
	v.SetDefault(KeyTemplatePath, "newsletter_template.html")
	v.SetDefault(KeySummaryMaxLen, 300)
	v.SetDefault(KeyHTTPTimeout, 30*time.Second)
	v.SetDefault(KeyUserAgent, "newsletter-engine/0.1")
}

// BindEnv binds every key to both its prefixed form
// (NEWSLETTER_ENGINE_<KEY>) and the bare uppercased key, so existing
// .env files keep working unchanged.
func BindEnv(v *viper.Viper) {
	keys := []string{
		KeyDropboxAccessToken, KeyWixAPIKey, KeyWixSiteID,
		KeyMailchimpAPIKey, KeyMailchimpListID,
		KeyRootPath, KeyPDFSuffix, KeyCompanionMarker, KeyCompanionExt,
		KeyCollection, KeyPublicDomain, KeyFromName, KeyReplyTo,
		KeyTemplatePath, KeySummaryMaxLen, KeyHTTPTimeout, KeyUserAgent,
	}
	for _, k := range keys {
		v.BindEnv(k, EnvPrefix+"_"+strings.ToUpper(k), strings.ToUpper(k))
	}
}

// Load validates required values and assembles the engine Config from v.
func Load(v *viper.Viper) (types.Config, error) {
	var missing []string
	for _, k := range requiredKeys {
		if strings.TrimSpace(v.GetString(k)) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return types.Config{}, &MissingError{Keys: missing}
	}

	http := types.HTTPConfig{
		Timeout:   v.GetDuration(KeyHTTPTimeout),
		UserAgent: v.GetString(KeyUserAgent),
	}

	cfg := types.Config{
		Storage: types.StorageConfig{
			HTTPConfig:      http,
			AccessToken:     v.GetString(KeyDropboxAccessToken),
			RootPath:        v.GetString(KeyRootPath),
			PDFSuffix:       v.GetString(KeyPDFSuffix),
			CompanionMarker: v.GetString(KeyCompanionMarker),
			CompanionExt:    v.GetString(KeyCompanionExt),
		},
		CMS: types.CMSConfig{
			HTTPConfig:   http,
			APIKey:       v.GetString(KeyWixAPIKey),
			SiteID:       v.GetString(KeyWixSiteID),
			Collection:   v.GetString(KeyCollection),
			PublicDomain: v.GetString(KeyPublicDomain),
		},
		Messaging: types.MessagingConfig{
			HTTPConfig: http,
			APIKey:     v.GetString(KeyMailchimpAPIKey),
			ListID:     v.GetString(KeyMailchimpListID),
			FromName:   v.GetString(KeyFromName),
			ReplyTo:    v.GetString(KeyReplyTo),
		},
		Summary: types.SummaryConfig{
			MaxLength: v.GetInt(KeySummaryMaxLen),
		},
		TemplatePath: v.GetString(KeyTemplatePath),
	}
	return cfg, nil
}
