package parse

import (
	"regexp"
	"strings"
)

var (
	// markdownHeaderPattern matches leading markdown heading markers left
	// behind by PDF-to-markdown extraction.
	markdownHeaderPattern = regexp.MustCompile(`^#{1,6}\s*`)

	// emphasisPattern matches markdown bold/italic wrappers around a run of
	// text.
	emphasisPattern = regexp.MustCompile(`[*_]{1,2}([^*_]+)[*_]{1,2}`)

	// standalonePageNumberPattern matches lines containing only a page
	// number, with or without surrounding dashes.
	standalonePageNumberPattern = regexp.MustCompile(`^-?\s*\d+\s*-?$`)

	// hyphenBreakPattern matches a word split across a line break.
	hyphenBreakPattern = regexp.MustCompile(`[a-zA-Z]-$`)
)

// Preprocess cleans PDF- or markdown-extracted text before structural
// parsing: markdown markers are stripped, standalone page numbers and form
// feeds dropped, hyphenated words rejoined across line breaks, and runs of
// blank lines collapsed to one.
func Preprocess(lines []string) []string {
	var cleaned []string
	blankRun := 0

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(strings.ReplaceAll(lines[i], "\f", ""), " \t")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			blankRun++
			if blankRun == 1 {
				cleaned = append(cleaned, "")
			}
			continue
		}
		blankRun = 0

		if standalonePageNumberPattern.MatchString(trimmed) {
			continue
		}

		line = markdownHeaderPattern.ReplaceAllString(line, "")
		line = emphasisPattern.ReplaceAllString(line, "$1")

		// Rejoin a hyphenated word break with the next lowercase line.
		if hyphenBreakPattern.MatchString(line) && i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next != "" && next[0] >= 'a' && next[0] <= 'z' {
				line = strings.TrimSuffix(line, "-") + next
				i++
			}
		}

		cleaned = append(cleaned, line)
	}

	// Trim leading and trailing blanks.
	for len(cleaned) > 0 && cleaned[0] == "" {
		cleaned = cleaned[1:]
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return cleaned
}
