// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentRef identifies a file in the storage service.
type DocumentRef struct {
	// Name is the display name of the file (e.g. "DMSC_2025_Nov_Web.pdf").
	Name string `json:"name" yaml:"name"`

	// Path is the lowercased storage path used for subsequent API calls.
	Path string `json:"path" yaml:"path"`
}

// LocatedDocuments holds the outcome of the locate step: the newsletter PDF
// and, when present, the companion meeting-notes document.
type LocatedDocuments struct {
	PDF DocumentRef `json:"pdf" yaml:"pdf"`

	// Companion is nil when no companion document exists for the month.
	Companion *DocumentRef `json:"companion,omitempty" yaml:"companion,omitempty"`
}

// SummaryResult is the outcome of summary extraction. Extraction never
// fails: when the companion document is absent or unparsable the summary
// falls back to a default text and Defaulted records why.
type SummaryResult struct {
	// Text is the summary, either extracted or the default.
	Text string `json:"text" yaml:"text"`

	// Defaulted reports whether Text is the fallback default.
	Defaulted bool `json:"defaulted" yaml:"defaulted"`

	// Reason explains the fallback. Empty when Defaulted is false.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// MediaFile is a file imported into the CMS media library.
type MediaFile struct {
	// ID is the media manager file identifier.
	ID string `json:"id" yaml:"id"`

	// URL is the public download URL, rewritten to the site's own domain.
	URL string `json:"url" yaml:"url"`

	// DocRef is the CMS document reference
	// (wix:document://v1/ugd/<id>/<name>) used by content records.
	DocRef string `json:"doc_ref" yaml:"doc_ref"`
}

// PublishedContent holds the outcome of the publish step.
type PublishedContent struct {
	// ShareURL is the storage service's direct-download share link the
	// media import was fed from.
	ShareURL string `json:"share_url" yaml:"share_url"`

	// Media is the imported media library file.
	Media MediaFile `json:"media" yaml:"media"`

	// Title is the content record title (e.g. "November 2025").
	Title string `json:"title" yaml:"title"`

	// ItemID is the created content record's identifier.
	ItemID string `json:"item_id" yaml:"item_id"`
}

// CampaignDraft is a created draft campaign. Creation is the terminal
// state this system manages; sending is a manual, external action.
type CampaignDraft struct {
	// ID is the campaign identifier.
	ID string `json:"id" yaml:"id"`

	// WebID is the numeric identifier used by the service's web UI.
	WebID int64 `json:"web_id" yaml:"web_id"`

	// ReviewURL is the campaign editor URL for manual review.
	ReviewURL string `json:"review_url" yaml:"review_url"`
}

// RunReport summarizes a completed orchestrator run. Nothing in it is
// persisted; it exists to be printed.
type RunReport struct {
	Month string `json:"month" yaml:"month"`
	Year  int    `json:"year" yaml:"year"`

	Documents LocatedDocuments `json:"documents" yaml:"documents"`
	Summary   SummaryResult    `json:"summary" yaml:"summary"`
	Published PublishedContent `json:"published" yaml:"published"`
	Campaign  CampaignDraft    `json:"campaign" yaml:"campaign"`
}
