// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxLen = 300

func TestFromParagraphsKeywordMatch(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
		want       string
	}{
		{
			name: "meeting keyword wins",
			paragraphs: []string{
				"Ted's Thoughts",
				"Monthly Meeting Thursday November 20 at 7 PM",
				"Other text",
			},
			want: "Monthly Meeting Thursday November 20 at 7 PM",
		},
		{
			name: "speaker keyword",
			paragraphs: []string{
				"Hello everyone",
				"Our speaker this month is Jane Doe",
			},
			want: "Our speaker this month is Jane Doe",
		},
		{
			name: "program keyword case-insensitive",
			paragraphs: []string{
				"Intro",
				"The PROGRAM includes a workshop",
			},
			want: "The PROGRAM includes a workshop",
		},
		{
			name: "first keyword paragraph wins over later ones",
			paragraphs: []string{
				"Meeting at seven",
				"Speaker to be announced",
			},
			want: "Meeting at seven",
		},
		{
			name: "keyword beyond scan limit is ignored",
			paragraphs: append(make10("filler"), "Meeting info down here"),
			// Falls back to first non-empty paragraph.
			want: "filler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromParagraphs(tt.paragraphs, maxLen)
			assert.False(t, got.Defaulted)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func make10(s string) []string {
	out := make([]string, 10)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestFromParagraphsFallbackFirstNonEmpty(t *testing.T) {
	got := FromParagraphs([]string{"", "  ", "Welcome to the newsletter", "more"}, maxLen)
	assert.False(t, got.Defaulted)
	assert.Equal(t, "Welcome to the newsletter", got.Text)
}

func TestFromParagraphsDefault(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
	}{
		{"no paragraphs", nil},
		{"only blank paragraphs", []string{"", "   ", "\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromParagraphs(tt.paragraphs, maxLen)
			assert.True(t, got.Defaulted)
			assert.Equal(t, DefaultText, got.Text)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestFromParagraphsTruncation(t *testing.T) {
	long := "Meeting " + strings.Repeat("x", 400)
	got := FromParagraphs([]string{long}, maxLen)
	assert.False(t, got.Defaulted)
	assert.Len(t, []rune(got.Text), maxLen)
	assert.True(t, strings.HasSuffix(got.Text, "..."))
}

func TestFromParagraphsIdempotent(t *testing.T) {
	paragraphs := []string{"Ted's Thoughts", "Monthly Meeting Thursday at 7 PM"}
	first := FromParagraphs(paragraphs, maxLen)
	second := FromParagraphs(paragraphs, maxLen)
	assert.Equal(t, first, second)
}

func TestFromDocx(t *testing.T) {
	data := buildDocx(t, "Ted's Thoughts", "Monthly Meeting Thursday November 20 at 7 PM")
	got := FromDocx(data, maxLen)
	assert.False(t, got.Defaulted)
	assert.Equal(t, "Monthly Meeting Thursday November 20 at 7 PM", got.Text)
}

func TestFromDocxParseFailureDefaults(t *testing.T) {
	got := FromDocx([]byte("not a zip archive"), maxLen)
	assert.True(t, got.Defaulted)
	assert.Equal(t, DefaultText, got.Text)
	assert.Contains(t, got.Reason, "parsing companion document")
}

func TestDefaulted(t *testing.T) {
	got := Defaulted("no companion document found")
	assert.True(t, got.Defaulted)
	assert.Equal(t, DefaultText, got.Text)
	assert.Equal(t, "no companion document found", got.Reason)
}

// buildDocx assembles a minimal docx archive with one w:p per paragraph.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
