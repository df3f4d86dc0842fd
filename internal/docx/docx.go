// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads paragraph text from Word (OOXML) documents. It
// understands just enough of the format for meeting-notes extraction:
// the document is a zip archive whose word/document.xml holds paragraphs
// (w:p) containing text runs (w:t).
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// Paragraphs returns the document's paragraph texts in order. Text runs
// within a paragraph are concatenated, including runs nested inside
// hyperlinks. Empty paragraphs are preserved so callers see document
// structure.
func Paragraphs(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening docx archive: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("docx archive has no %s", documentPart)
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", documentPart, err)
	}
	defer rc.Close()

	return parseParagraphs(rc)
}

// parseParagraphs walks the document XML token stream, collecting the
// character data of every t element within each p element.
func parseParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					current.WriteByte(' ')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inParagraph {
					paragraphs = append(paragraphs, current.String())
					inParagraph = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
