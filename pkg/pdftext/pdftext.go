// Package pdftext extracts plain text from PDF legal documents so the
// structural parser can consume it. Extraction quality is bounded by the
// PDF's own text layer; scanned documents are out of scope.
package pdftext

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText extracts the plain text content of a PDF file.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading extracted text: %w", err)
	}

	return buf.String(), nil
}

var (
	// pageBreakPattern matches form feeds between pages.
	pageBreakPattern = regexp.MustCompile(`\f`)

	// trailingSpacePattern matches trailing whitespace on a line.
	trailingSpacePattern = regexp.MustCompile(`[ \t]+$`)

	// spaceRunPattern matches runs of three or more spaces inside a line,
	// a common artifact of PDF column layout.
	spaceRunPattern = regexp.MustCompile(`   +`)
)

// Clean normalizes PDF-extracted text for structural parsing: page breaks
// become line breaks, intra-line space runs collapse to double spaces (kept
// at two so schedule cell boundaries survive), and trailing whitespace is
// stripped.
func Clean(text string) string {
	text = pageBreakPattern.ReplaceAllString(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = trailingSpacePattern.ReplaceAllString(line, "")
		line = spaceRunPattern.ReplaceAllString(line, "  ")
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// ExtractLines extracts and cleans a PDF, returning parse-ready lines.
func ExtractLines(path string) ([]string, error) {
	text, err := ExtractText(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(Clean(text), "\n"), nil
}
