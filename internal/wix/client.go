// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wix is a minimal Wix API client covering media imports, data
// collection items, and a collections listing for credential checks.
package wix

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmsclub/newsletter-engine/internal/httputil"
	"github.com/dmsclub/newsletter-engine/pkg/types"
)

const serviceName = "Wix"

// Client calls the Wix APIs. BaseURL is a field so tests can substitute
// an httptest server.
type Client struct {
	BaseURL string // default https://www.wixapis.com

	cfg        types.CMSConfig
	httpClient *http.Client
}

// NewClient creates a Wix client from CMS configuration.
func NewClient(cfg types.CMSConfig) *Client {
	return &Client{
		BaseURL:    "https://www.wixapis.com",
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// newRequest builds a site-scoped JSON request. Wix API keys go verbatim
// in the Authorization header, with the site selected via wix-site-id.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	req, err := httputil.NewJSONRequest(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.cfg.APIKey)
	req.Header.Set("wix-site-id", c.cfg.SiteID)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	return req, nil
}

type importRequest struct {
	URL         string `json:"url"`
	MimeType    string `json:"mimeType"`
	DisplayName string `json:"displayName"`
}

type importResponse struct {
	File struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"file"`
}

// ImportFile imports a file into the site's media library from a public
// URL and returns the media file with its URL rewritten to the site's
// public domain.
func (c *Client) ImportFile(ctx context.Context, fileURL, displayName string) (types.MediaFile, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/site-media/v1/files/import", importRequest{
		URL:         fileURL,
		MimeType:    "application/pdf",
		DisplayName: displayName,
	})
	if err != nil {
		return types.MediaFile{}, err
	}

	var out importResponse
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &out); err != nil {
		return types.MediaFile{}, err
	}
	if out.File.ID == "" {
		return types.MediaFile{}, fmt.Errorf("malformed %s response: import returned no file id", serviceName)
	}

	return types.MediaFile{
		ID:     out.File.ID,
		URL:    c.publicURL(out.File.URL),
		DocRef: DocumentRef(out.File.ID, displayName),
	}, nil
}

// publicURL rewrites the GUID usrfiles subdomain to the site's public
// domain (e.g. https://<siteID>.usrfiles.com/ugd/x → https://www.example.com/_files/ugd/x).
func (c *Client) publicURL(u string) string {
	guidPrefix := fmt.Sprintf("https://%s.usrfiles.com/ugd/", c.cfg.SiteID)
	if strings.HasPrefix(u, guidPrefix) {
		return fmt.Sprintf("https://%s/_files/ugd/%s", c.cfg.PublicDomain, strings.TrimPrefix(u, guidPrefix))
	}
	return u
}

// DocumentRef builds the CMS document reference for an imported media file.
func DocumentRef(fileID, displayName string) string {
	return fmt.Sprintf("wix:document://v1/ugd/%s/%s", fileID, displayName)
}

type dataItemRequest struct {
	DataCollectionID string   `json:"dataCollectionId"`
	DataItem         dataItem `json:"dataItem"`
}

type dataItem struct {
	Data newsletterFields `json:"data"`
}

type newsletterFields struct {
	Title             string `json:"title"`
	Newsletter        string `json:"newsletter"`
	NewsletterSummary string `json:"newsletterSummary"`
}

type dataItemResponse struct {
	DataItem struct {
		ID string `json:"id"`
	} `json:"dataItem"`
}

// CreateNewsletterItem creates a content record in the newsletter
// collection referencing the imported media document and returns the new
// item's id.
func (c *Client) CreateNewsletterItem(ctx context.Context, title, docRef, summaryText string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/wix-data/v2/items", dataItemRequest{
		DataCollectionID: c.cfg.Collection,
		DataItem: dataItem{Data: newsletterFields{
			Title:             title,
			Newsletter:        docRef,
			NewsletterSummary: summaryText,
		}},
	})
	if err != nil {
		return "", err
	}

	var out dataItemResponse
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &out); err != nil {
		return "", err
	}
	if out.DataItem.ID == "" {
		return "", fmt.Errorf("malformed %s response: created item has no id", serviceName)
	}
	return out.DataItem.ID, nil
}

type queryRequest struct {
	DataCollectionID string    `json:"dataCollectionId"`
	Query            queryBody `json:"query"`
}

type queryBody struct {
	Filter map[string]string `json:"filter"`
}

type queryResponse struct {
	DataItems []struct {
		ID string `json:"id"`
	} `json:"dataItems"`
}

// HasItemTitled reports whether the newsletter collection already holds
// an item with the given title. The publish step uses this to warn about
// duplicate records before creating another.
func (c *Client) HasItemTitled(ctx context.Context, title string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/wix-data/v2/items/query", queryRequest{
		DataCollectionID: c.cfg.Collection,
		Query:            queryBody{Filter: map[string]string{"title": title}},
	})
	if err != nil {
		return false, err
	}

	var out queryResponse
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &out); err != nil {
		return false, err
	}
	return len(out.DataItems) > 0, nil
}

// Collection describes a site data collection.
type Collection struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type collectionsResponse struct {
	Collections []Collection `json:"collections"`
}

// ListCollections lists the site's data collections. Used by the doctor
// command to verify credentials and data permissions.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/wix-data/v2/collections", nil)
	if err != nil {
		return nil, err
	}

	var out collectionsResponse
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &out); err != nil {
		return nil, err
	}
	return out.Collections, nil
}
