// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dropbox is a minimal Dropbox API client covering the calls the
// newsletter workflow needs: folder listing, shared links, file download,
// and an account check for credential verification.
package dropbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmsclub/newsletter-engine/internal/httputil"
	"github.com/dmsclub/newsletter-engine/pkg/types"
)

const serviceName = "Dropbox"

// Client calls the Dropbox API. APIBase and ContentBase are fields so
// tests can substitute an httptest server.
type Client struct {
	APIBase     string // RPC endpoints (default https://api.dropboxapi.com)
	ContentBase string // content download endpoints (default https://content.dropboxapi.com)

	cfg        types.StorageConfig
	httpClient *http.Client
}

// NewClient creates a Dropbox client from storage configuration.
func NewClient(cfg types.StorageConfig) *Client {
	return &Client{
		APIBase:     "https://api.dropboxapi.com",
		ContentBase: "https://content.dropboxapi.com",
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// newRequest builds an authenticated JSON request against APIBase.
func (c *Client) newRequest(ctx context.Context, path string, body any) (*http.Request, error) {
	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, c.APIBase+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	return req, nil
}

// Entry is one item from a folder listing.
type Entry struct {
	Tag       string `json:".tag"`
	Name      string `json:"name"`
	PathLower string `json:"path_lower"`
}

type listFolderRequest struct {
	Path string `json:"path"`
}

type listFolderResponse struct {
	Entries []Entry `json:"entries"`
}

// ListFolder lists the immediate entries of a folder. A missing folder
// is reported as a *NotFoundError.
func (c *Client) ListFolder(ctx context.Context, path string) ([]Entry, error) {
	req, err := c.newRequest(ctx, "/2/files/list_folder", listFolderRequest{Path: path})
	if err != nil {
		return nil, err
	}

	var out listFolderResponse
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &out); err != nil {
		if isPathNotFound(err) {
			return nil, &NotFoundError{Folder: path}
		}
		return nil, err
	}
	return out.Entries, nil
}

// isPathNotFound detects the Dropbox 409 path/not_found conflict.
func isPathNotFound(err error) bool {
	apiErr, ok := err.(*httputil.APIError)
	return ok && apiErr.StatusCode == http.StatusConflict &&
		strings.Contains(apiErr.Detail, "not_found")
}

type sharedLinkRequest struct {
	Path     string             `json:"path"`
	Settings sharedLinkSettings `json:"settings"`
}

type sharedLinkSettings struct {
	RequestedVisibility string `json:"requested_visibility"`
}

type sharedLinkResponse struct {
	URL string `json:"url"`
}

type listSharedLinksRequest struct {
	Path string `json:"path"`
}

type listSharedLinksResponse struct {
	Links []sharedLinkResponse `json:"links"`
}

// SharedLink returns a public direct-download link for path. Creating a
// link is idempotent in effect: when one already exists (HTTP 409) the
// existing link is retrieved instead.
func (c *Client) SharedLink(ctx context.Context, path string) (string, error) {
	req, err := c.newRequest(ctx, "/2/sharing/create_shared_link_with_settings", sharedLinkRequest{
		Path:     path,
		Settings: sharedLinkSettings{RequestedVisibility: "public"},
	})
	if err != nil {
		return "", err
	}

	var created sharedLinkResponse
	err = httputil.DoJSON(c.httpClient, serviceName, req, &created)
	if err == nil {
		return DirectURL(created.URL), nil
	}

	apiErr, ok := err.(*httputil.APIError)
	if !ok || apiErr.StatusCode != http.StatusConflict {
		return "", err
	}

	// Link already exists; retrieve it.
	req, err = c.newRequest(ctx, "/2/sharing/list_shared_links", listSharedLinksRequest{Path: path})
	if err != nil {
		return "", err
	}
	var existing listSharedLinksResponse
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &existing); err != nil {
		return "", err
	}
	if len(existing.Links) == 0 {
		return "", fmt.Errorf("no shared link exists for %s after conflict", path)
	}
	return DirectURL(existing.Links[0].URL), nil
}

// DirectURL rewrites a Dropbox share URL to its direct-download form.
func DirectURL(shareURL string) string {
	u := strings.Replace(shareURL, "www.dropbox.com", "dl.dropboxusercontent.com", 1)
	return strings.Replace(u, "dl=0", "dl=1", 1)
}

// Download fetches a file's bytes via the content endpoint. The target
// path travels in the Dropbox-API-Arg header, not the body.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ContentBase+"/2/files/download", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	arg, err := json.Marshal(struct {
		Path string `json:"path"`
	}{Path: path})
	if err != nil {
		return nil, fmt.Errorf("marshaling download arg: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Dropbox-API-Arg", string(arg))
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &httputil.APIError{Service: serviceName, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading download: %w", err)
	}
	return data, nil
}

// Account describes the token's owning account.
type Account struct {
	Email string `json:"email"`
	Name  struct {
		DisplayName string `json:"display_name"`
	} `json:"name"`
}

// CurrentAccount returns the account the access token belongs to. Used
// by the doctor command to verify credentials.
func (c *Client) CurrentAccount(ctx context.Context) (Account, error) {
	req, err := c.newRequest(ctx, "/2/users/get_current_account", nil)
	if err != nil {
		return Account{}, err
	}
	var acct Account
	if err := httputil.DoJSON(c.httpClient, serviceName, req, &acct); err != nil {
		return Account{}, err
	}
	return acct, nil
}
