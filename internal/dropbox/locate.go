// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dropbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmsclub/newsletter-engine/pkg/types"
)

// NotFoundError reports a month folder with no matching newsletter PDF
// (or no folder at all).
type NotFoundError struct {
	Folder string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no newsletter PDF found in %s", e.Folder)
}

// AmbiguousError reports a month folder with more than one candidate PDF.
type AmbiguousError struct {
	Folder string
	Names  []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous newsletter PDF in %s: %d candidates (%s)",
		e.Folder, len(e.Names), strings.Join(e.Names, ", "))
}

// MonthFolder returns the storage path for a month
// (e.g. "/Newsletter/Monthly Newsletters/2025 Newsletter/November").
func (c *Client) MonthFolder(month string, year int) string {
	return fmt.Sprintf("%s/%d Newsletter/%s", c.cfg.RootPath, year, month)
}

// LocateNewsletter finds the month's newsletter PDF and optional
// companion document. Exactly one entry must match the PDF suffix:
// zero matches is a *NotFoundError, two or more an *AmbiguousError.
// A missing companion document is not an error.
func (c *Client) LocateNewsletter(ctx context.Context, month string, year int) (types.LocatedDocuments, error) {
	folder := c.MonthFolder(month, year)

	entries, err := c.ListFolder(ctx, folder)
	if err != nil {
		return types.LocatedDocuments{}, err
	}

	var pdfs []Entry
	var companion *Entry
	for _, e := range entries {
		if e.Tag != "" && e.Tag != "file" {
			continue
		}
		if strings.HasSuffix(e.Name, c.cfg.PDFSuffix) {
			pdfs = append(pdfs, e)
			continue
		}
		if companion == nil && isCompanion(e.Name, c.cfg.CompanionMarker, c.cfg.CompanionExt) {
			e := e
			companion = &e
		}
	}

	switch len(pdfs) {
	case 0:
		return types.LocatedDocuments{}, &NotFoundError{Folder: folder}
	case 1:
	default:
		names := make([]string, len(pdfs))
		for i, p := range pdfs {
			names[i] = p.Name
		}
		return types.LocatedDocuments{}, &AmbiguousError{Folder: folder, Names: names}
	}

	located := types.LocatedDocuments{
		PDF: types.DocumentRef{Name: pdfs[0].Name, Path: pdfs[0].PathLower},
	}
	if companion != nil {
		located.Companion = &types.DocumentRef{Name: companion.Name, Path: companion.PathLower}
	}
	return located, nil
}

// isCompanion matches the companion naming convention: the marker as a
// case-insensitive substring plus the configured extension.
func isCompanion(name, marker, ext string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, strings.ToLower(marker)) && strings.HasSuffix(lower, strings.ToLower(ext))
}
