// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary derives a short newsletter summary from the companion
// meeting-notes document. Extraction is best effort by design: any
// failure yields the default text with a recorded reason rather than an
// error, so a malformed companion document never blocks a run.
package summary

import (
	"strings"

	"github.com/dmsclub/newsletter-engine/internal/docx"
	"github.com/dmsclub/newsletter-engine/pkg/types"
)

// DefaultText is the fallback summary used whenever extraction cannot
// produce one.
const DefaultText = "See newsletter for meeting details"

// keywords mark a paragraph as meeting information.
var keywords = []string{"meeting", "speaker", "program"}

const (
	// keywordScanLimit bounds the keyword search to the document head.
	keywordScanLimit = 10
	// fallbackScanLimit bounds the first-non-empty fallback search.
	fallbackScanLimit = 5
)

// Defaulted returns a SummaryResult carrying the default text and the
// reason extraction fell back.
func Defaulted(reason string) types.SummaryResult {
	return types.SummaryResult{Text: DefaultText, Defaulted: true, Reason: reason}
}

// FromDocx extracts a summary from raw docx bytes, truncated to maxLen
// characters. Parse failures produce the default summary.
func FromDocx(data []byte, maxLen int) types.SummaryResult {
	paragraphs, err := docx.Paragraphs(data)
	if err != nil {
		return Defaulted("parsing companion document: " + err.Error())
	}
	return FromParagraphs(paragraphs, maxLen)
}

// FromParagraphs applies the extraction heuristic to ordered paragraph
// texts: the first of the leading paragraphs mentioning a meeting
// keyword wins; failing that, the first non-empty leading paragraph;
// failing that, the default. The same input always yields the same
// summary.
func FromParagraphs(paragraphs []string, maxLen int) types.SummaryResult {
	for i, p := range paragraphs {
		if i >= keywordScanLimit {
			break
		}
		text := strings.TrimSpace(p)
		if text == "" {
			continue
		}
		if containsKeyword(text) {
			return types.SummaryResult{Text: truncate(text, maxLen)}
		}
	}

	for i, p := range paragraphs {
		if i >= fallbackScanLimit {
			break
		}
		if text := strings.TrimSpace(p); text != "" {
			return types.SummaryResult{Text: truncate(text, maxLen)}
		}
	}

	return Defaulted("no usable paragraphs in companion document")
}

func containsKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// truncate bounds s to max characters, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
