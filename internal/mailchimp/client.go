// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mailchimp is a minimal Mailchimp Marketing API client covering
// draft campaign creation. The regional API endpoint is derived from the
// datacenter suffix embedded in the API key (e.g. "...-us14").
package mailchimp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmsclub/newsletter-engine/internal/httputil"
	"github.com/dmsclub/newsletter-engine/pkg/types"
)

const serviceName = "Mailchimp"

// basicAuthUser is ignored by the API; any string works alongside the key.
const basicAuthUser = "anystring"

// Client calls the Mailchimp API. BaseURL and AdminBase are fields so
// tests can substitute an httptest server.
type Client struct {
	BaseURL   string // API root, default https://<dc>.api.mailchimp.com/3.0
	AdminBase string // web UI root, default https://<dc>.admin.mailchimp.com

	cfg        types.MessagingConfig
	httpClient *http.Client
}

// Datacenter extracts the datacenter suffix from a Mailchimp API key.
func Datacenter(apiKey string) (string, error) {
	idx := strings.LastIndex(apiKey, "-")
	if idx < 0 || idx == len(apiKey)-1 {
		return "", fmt.Errorf("mailchimp API key has no datacenter suffix (expected a key like \"xxxx-us14\")")
	}
	return apiKey[idx+1:], nil
}

// NewClient creates a Mailchimp client from messaging configuration.
// It fails when the API key carries no datacenter suffix.
func NewClient(cfg types.MessagingConfig) (*Client, error) {
	dc, err := Datacenter(cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL:    fmt.Sprintf("https://%s.api.mailchimp.com/3.0", dc),
		AdminBase:  fmt.Sprintf("https://%s.admin.mailchimp.com", dc),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// newRequest builds a basic-auth JSON request against BaseURL.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	req, err := httputil.NewJSONRequest(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(basicAuthUser, c.cfg.APIKey)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	return req, nil
}

type campaignRequest struct {
	Type       string             `json:"type"`
	Recipients campaignRecipients `json:"recipients"`
	Settings   campaignSettings   `json:"settings"`
}

type campaignRecipients struct {
	ListID string `json:"list_id"`
}

type campaignSettings struct {
	SubjectLine string `json:"subject_line"`
	Title       string `json:"title"`
	FromName    string `json:"from_name"`
	ReplyTo     string `json:"reply_to"`
}

// Campaign is the service's campaign resource, reduced to the fields the
// workflow consumes.
type Campaign struct {
	ID     string `json:"id"`
	WebID  int64  `json:"web_id"`
	Status string `json:"status"`
}

// CreateCampaign creates a regular campaign in draft state scoped to the
// configured audience. Nothing in this client can send it.
func (c *Client) CreateCampaign(ctx context.Context, month string) (Campaign, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/campaigns", campaignRequest{
		Type:       "regular",
		Recipients: campaignRecipients{ListID: c.cfg.ListID},
		Settings: campaignSettings{
			SubjectLine: fmt.Sprintf("%s %s Newsletter is available!", c.cfg.FromName, month),
			Title:       fmt.Sprintf("%s Newsletter", month),
			FromName:    c.cfg.FromName,
			ReplyTo:     c.cfg.ReplyTo,
		},
	})
	if err != nil {
		return Campaign{}, err
	}

	var out Campaign
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &out); err != nil {
		return Campaign{}, err
	}
	if out.ID == "" {
		return Campaign{}, fmt.Errorf("malformed %s response: created campaign has no id", serviceName)
	}
	return out, nil
}

type contentRequest struct {
	HTML string `json:"html"`
}

// SetContent uploads the campaign's HTML body.
func (c *Client) SetContent(ctx context.Context, campaignID, html string) error {
	req, err := c.newRequest(ctx, http.MethodPut, "/campaigns/"+campaignID+"/content", contentRequest{HTML: html})
	if err != nil {
		return err
	}
	return httputil.DoJSON(c.httpClient, serviceName, req, nil)
}

// GetCampaign fetches a campaign, primarily for its web_id.
func (c *Client) GetCampaign(ctx context.Context, campaignID string) (Campaign, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/campaigns/"+campaignID, nil)
	if err != nil {
		return Campaign{}, err
	}
	var out Campaign
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &out); err != nil {
		return Campaign{}, err
	}
	return out, nil
}

// ReviewURL returns the campaign editor URL for manual review.
func (c *Client) ReviewURL(webID int64) string {
	return fmt.Sprintf("%s/campaigns/edit?id=%d", c.AdminBase, webID)
}

type pingResponse struct {
	HealthStatus string `json:"health_status"`
}

// Ping verifies the API key against the service's health endpoint. Used
// by the doctor command.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return "", err
	}
	var out pingResponse
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &out); err != nil {
		return "", err
	}
	return out.HealthStatus, nil
}
