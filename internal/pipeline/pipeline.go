// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the newsletter workflow as a linear
// sequence: locate the documents in storage, extract the summary,
// publish the PDF through the CMS, and create the draft campaign. The
// first unrecoverable failure halts the run; only summary extraction is
// best effort.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/dmsclub/newsletter-engine/internal/emailtpl"
	"github.com/dmsclub/newsletter-engine/internal/summary"
	"github.com/dmsclub/newsletter-engine/pkg/types"
)

// Step names the pipeline stages, used in diagnostics so a failure
// message always identifies where the run stopped.
type Step string

const (
	StepLocate   Step = "locate"
	StepExtract  Step = "extract"
	StepPublish  Step = "publish"
	StepCampaign Step = "campaign"
)

// Storage lists and serves documents from the storage service.
type Storage interface {
	LocateNewsletter(ctx context.Context, month string, year int) (types.LocatedDocuments, error)
	SharedLink(ctx context.Context, path string) (string, error)
	Download(ctx context.Context, path string) ([]byte, error)
}

// CMS imports media and manages newsletter content records.
type CMS interface {
	ImportFile(ctx context.Context, fileURL, displayName string) (types.MediaFile, error)
	HasItemTitled(ctx context.Context, title string) (bool, error)
	CreateNewsletterItem(ctx context.Context, title, docRef, summaryText string) (string, error)
}

// Mailer creates draft campaigns.
type Mailer interface {
	CreateDraft(ctx context.Context, month, html string) (types.CampaignDraft, error)
}

// Pipeline wires the three services together with the run-wide settings.
type Pipeline struct {
	Storage Storage
	CMS     CMS
	Mailer  Mailer

	// TemplatePath is the local HTML campaign template.
	TemplatePath string

	// SummaryMaxLen bounds the extracted summary length.
	SummaryMaxLen int
}

// stepError wraps a stage failure with the step name.
func stepError(step Step, err error) error {
	return fmt.Errorf("%s: %w", step, err)
}

// Run executes the workflow for one month and writes progress to w. On
// success it returns the full run report; on failure the error names the
// failing step and underlying cause.
func (p *Pipeline) Run(ctx context.Context, month string, year int, w io.Writer) (*types.RunReport, error) {
	report := &types.RunReport{Month: month, Year: year}

	// Locate.
	fmt.Fprintf(w, "locating newsletter for %s %d\n", month, year)
	docs, err := p.Storage.LocateNewsletter(ctx, month, year)
	if err != nil {
		return nil, stepError(StepLocate, err)
	}
	report.Documents = docs
	fmt.Fprintf(w, "  found %s\n", docs.PDF.Name)
	if docs.Companion != nil {
		fmt.Fprintf(w, "  found companion %s\n", docs.Companion.Name)
	}

	// Extract (best effort; failures fall back to the default summary).
	report.Summary = p.extract(ctx, docs.Companion, w)
	if report.Summary.Defaulted {
		fmt.Fprintf(w, "  using default summary (%s)\n", report.Summary.Reason)
	} else {
		fmt.Fprintf(w, "  summary: %s\n", report.Summary.Text)
	}

	// Publish.
	title := fmt.Sprintf("%s %d", month, year)
	published, err := p.publish(ctx, docs.PDF, title, report.Summary.Text, w)
	if err != nil {
		return nil, stepError(StepPublish, err)
	}
	report.Published = published

	// Campaign.
	fmt.Fprintf(w, "creating draft campaign\n")
	template, err := emailtpl.Load(p.TemplatePath)
	if err != nil {
		return nil, stepError(StepCampaign, err)
	}
	html := emailtpl.Render(template, month, published.Media.URL)

	draft, err := p.Mailer.CreateDraft(ctx, month, html)
	if err != nil {
		return nil, stepError(StepCampaign, err)
	}
	report.Campaign = draft
	fmt.Fprintf(w, "  draft %s ready for review: %s\n", draft.ID, draft.ReviewURL)

	return report, nil
}

// extract downloads the companion document and derives the summary. Any
// failure, including a missing companion, yields the default summary.
func (p *Pipeline) extract(ctx context.Context, companion *types.DocumentRef, w io.Writer) types.SummaryResult {
	if companion == nil {
		return summary.Defaulted("no companion document found")
	}

	fmt.Fprintf(w, "extracting summary from %s\n", companion.Name)
	data, err := p.Storage.Download(ctx, companion.Path)
	if err != nil {
		return summary.Defaulted("downloading companion document: " + err.Error())
	}
	return summary.FromDocx(data, p.SummaryMaxLen)
}

// publish creates the share link, imports the PDF into the CMS media
// library, and creates the content record. Failure at any sub-step
// aborts the whole publish.
func (p *Pipeline) publish(ctx context.Context, pdf types.DocumentRef, title, summaryText string, w io.Writer) (types.PublishedContent, error) {
	fmt.Fprintf(w, "publishing %s\n", pdf.Name)

	shareURL, err := p.Storage.SharedLink(ctx, pdf.Path)
	if err != nil {
		return types.PublishedContent{}, err
	}
	fmt.Fprintf(w, "  share link: %s\n", shareURL)

	media, err := p.CMS.ImportFile(ctx, shareURL, pdf.Name)
	if err != nil {
		return types.PublishedContent{}, err
	}
	fmt.Fprintf(w, "  imported media %s\n", media.ID)

	exists, err := p.CMS.HasItemTitled(ctx, title)
	if err != nil {
		fmt.Fprintf(w, "  warning: duplicate check failed: %v\n", err)
	} else if exists {
		fmt.Fprintf(w, "  warning: a content record titled %q already exists\n", title)
	}

	itemID, err := p.CMS.CreateNewsletterItem(ctx, title, media.DocRef, summaryText)
	if err != nil {
		return types.PublishedContent{}, err
	}
	fmt.Fprintf(w, "  content record %s (%s)\n", itemID, title)

	return types.PublishedContent{
		ShareURL: shareURL,
		Media:    media,
		Title:    title,
		ItemID:   itemID,
	}, nil
}
