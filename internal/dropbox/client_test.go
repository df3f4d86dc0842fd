// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dropbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmsclub/newsletter-engine/internal/httputil"
	"github.com/dmsclub/newsletter-engine/pkg/types"
)

func testCfg() types.StorageConfig {
	return types.StorageConfig{
		HTTPConfig:      types.HTTPConfig{UserAgent: "test/0.1"},
		AccessToken:     "token-123",
		RootPath:        "/Newsletter/Monthly Newsletters",
		PDFSuffix:       "_Web.pdf",
		CompanionMarker: "ted",
		CompanionExt:    ".docx",
	}
}

// newTestClient returns a client pointed at srv for both the RPC and
// content endpoints.
func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(testCfg())
	c.APIBase = srv.URL
	c.ContentBase = srv.URL
	return c
}

func listFolderHandler(t *testing.T, entries []Entry) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2/files/list_folder", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var req struct {
			Path string `json:"path"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Path)

		json.NewEncoder(w).Encode(map[string]any{"entries": entries})
	}
}

func TestMonthFolder(t *testing.T) {
	c := NewClient(testCfg())
	got := c.MonthFolder("November", 2025)
	assert.Equal(t, "/Newsletter/Monthly Newsletters/2025 Newsletter/November", got)
}

func TestLocateNewsletter(t *testing.T) {
	tests := []struct {
		name          string
		entries       []Entry
		wantPDF       string
		wantCompanion string
		wantNotFound  bool
		wantAmbiguous bool
	}{
		{
			name: "one pdf and companion",
			entries: []Entry{
				{Tag: "file", Name: "DMSC_2025_Nov_Web.pdf", PathLower: "/x/dmsc_2025_nov_web.pdf"},
				{Tag: "file", Name: "Ted's Thoughts Nov 25.docx", PathLower: "/x/ted's thoughts nov 25.docx"},
			},
			wantPDF:       "DMSC_2025_Nov_Web.pdf",
			wantCompanion: "Ted's Thoughts Nov 25.docx",
		},
		{
			name: "pdf without companion",
			entries: []Entry{
				{Tag: "file", Name: "DMSC_2025_Jul_Web.pdf", PathLower: "/x/dmsc_2025_jul_web.pdf"},
				{Tag: "file", Name: "notes.txt", PathLower: "/x/notes.txt"},
			},
			wantPDF: "DMSC_2025_Jul_Web.pdf",
		},
		{
			name: "zero pdfs",
			entries: []Entry{
				{Tag: "file", Name: "draft.docx", PathLower: "/x/draft.docx"},
			},
			wantNotFound: true,
		},
		{
			name:         "empty folder",
			entries:      nil,
			wantNotFound: true,
		},
		{
			name: "multiple pdfs",
			entries: []Entry{
				{Tag: "file", Name: "DMSC_2025_Nov_Web.pdf", PathLower: "/x/a.pdf"},
				{Tag: "file", Name: "DMSC_2025_Nov_v2_Web.pdf", PathLower: "/x/b.pdf"},
			},
			wantAmbiguous: true,
		},
		{
			name: "folders are ignored",
			entries: []Entry{
				{Tag: "folder", Name: "Old_Web.pdf", PathLower: "/x/old_web.pdf"},
				{Tag: "file", Name: "DMSC_2025_Nov_Web.pdf", PathLower: "/x/a.pdf"},
			},
			wantPDF: "DMSC_2025_Nov_Web.pdf",
		},
		{
			name: "companion marker is case-insensitive",
			entries: []Entry{
				{Tag: "file", Name: "DMSC_2025_Nov_Web.pdf", PathLower: "/x/a.pdf"},
				{Tag: "file", Name: "TED NOTES.DOCX", PathLower: "/x/ted notes.docx"},
			},
			wantPDF:       "DMSC_2025_Nov_Web.pdf",
			wantCompanion: "TED NOTES.DOCX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(listFolderHandler(t, tt.entries))
			defer srv.Close()

			docs, err := newTestClient(srv).LocateNewsletter(context.Background(), "November", 2025)

			if tt.wantNotFound {
				var nf *NotFoundError
				require.ErrorAs(t, err, &nf)
				return
			}
			if tt.wantAmbiguous {
				var amb *AmbiguousError
				require.ErrorAs(t, err, &amb)
				assert.Len(t, amb.Names, 2)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPDF, docs.PDF.Name)
			if tt.wantCompanion == "" {
				assert.Nil(t, docs.Companion)
			} else {
				require.NotNil(t, docs.Companion)
				assert.Equal(t, tt.wantCompanion, docs.Companion.Name)
			}
		})
	}
}

func TestLocateNewsletterMissingFolder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error_summary": "path/not_found/...", "error": {".tag": "path"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).LocateNewsletter(context.Background(), "July", 2025)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Folder, "July")
}

func TestLocateNewsletterAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error_summary": "expired_access_token/"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).LocateNewsletter(context.Background(), "July", 2025)

	var apiErr *httputil.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Detail, "expired_access_token")
}

func TestSharedLinkCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2/sharing/create_shared_link_with_settings", r.URL.Path)

		var req struct {
			Path     string `json:"path"`
			Settings struct {
				RequestedVisibility string `json:"requested_visibility"`
			} `json:"settings"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "/x/a.pdf", req.Path)
		assert.Equal(t, "public", req.Settings.RequestedVisibility)

		json.NewEncoder(w).Encode(map[string]string{
			"url": "https://www.dropbox.com/scl/fi/abc/a.pdf?rlkey=k&dl=0",
		})
	}))
	defer srv.Close()

	link, err := newTestClient(srv).SharedLink(context.Background(), "/x/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://dl.dropboxusercontent.com/scl/fi/abc/a.pdf?rlkey=k&dl=1", link)
}

func TestSharedLinkExistingFallback(t *testing.T) {
	var listCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2/sharing/create_shared_link_with_settings":
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, `{"error_summary": "shared_link_already_exists/"}`)
		case "/2/sharing/list_shared_links":
			listCalled = true
			json.NewEncoder(w).Encode(map[string]any{
				"links": []map[string]string{
					{"url": "https://www.dropbox.com/scl/fi/abc/a.pdf?dl=0"},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	link, err := newTestClient(srv).SharedLink(context.Background(), "/x/a.pdf")
	require.NoError(t, err)
	assert.True(t, listCalled, "should fall back to list_shared_links on conflict")
	assert.Equal(t, "https://dl.dropboxusercontent.com/scl/fi/abc/a.pdf?dl=1", link)
}

func TestSharedLinkConflictWithoutExistingLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2/sharing/create_shared_link_with_settings":
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, `{"error_summary": "shared_link_already_exists/"}`)
		default:
			json.NewEncoder(w).Encode(map[string]any{"links": []any{}})
		}
	}))
	defer srv.Close()

	_, err := newTestClient(srv).SharedLink(context.Background(), "/x/a.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shared link")
}

func TestDirectURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{
			"https://www.dropbox.com/scl/fi/k/f.pdf?rlkey=r&dl=0",
			"https://dl.dropboxusercontent.com/scl/fi/k/f.pdf?rlkey=r&dl=1",
		},
		{
			"https://dl.dropboxusercontent.com/scl/fi/k/f.pdf?dl=1",
			"https://dl.dropboxusercontent.com/scl/fi/k/f.pdf?dl=1",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DirectURL(tt.in))
	}
}

func TestDownload(t *testing.T) {
	content := []byte("PK\x03\x04 pretend docx bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2/files/download", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var arg struct {
			Path string `json:"path"`
		}
		require.NoError(t, json.Unmarshal([]byte(r.Header.Get("Dropbox-API-Arg")), &arg))
		assert.Equal(t, "/x/ted.docx", arg.Path)

		w.Write(content)
	}))
	defer srv.Close()

	data, err := newTestClient(srv).Download(context.Background(), "/x/ted.docx")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestDownloadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Download(context.Background(), "/x/ted.docx")
	var apiErr *httputil.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestCurrentAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2/users/get_current_account", r.URL.Path)
		fmt.Fprint(w, `{"email": "news@example.com", "name": {"display_name": "DMSC News"}}`)
	}))
	defer srv.Close()

	acct, err := newTestClient(srv).CurrentAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "news@example.com", acct.Email)
	assert.Equal(t, "DMSC News", acct.Name.DisplayName)
}
