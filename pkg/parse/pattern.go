// Package parse recovers hierarchical structure from plain-text Indian legal
// documents: parts, chapters, articles, sections, clauses, provisos,
// explanations, and schedules. Classification runs against an ordered pattern
// table; tree construction is a single forward pass over an explicit stack of
// open containers. The parser never aborts on malformed input: anomalies are
// recovered locally and surfaced as diagnostics.
package parse

import (
	"regexp"
	"strings"

	"github.com/coolbeans/samhita/pkg/model"
)

// LineKind identifies the structural category a line matched.
type LineKind string

const (
	KindSchedule     LineKind = "schedule"
	KindPart         LineKind = "part"
	KindChapter      LineKind = "chapter"
	KindArticle      LineKind = "article"
	KindSection      LineKind = "section"
	KindProvision    LineKind = "provision" // bare numbered heading, e.g. "2A."
	KindClause       LineKind = "clause"
	KindProviso      LineKind = "proviso"
	KindExplanation  LineKind = "explanation"
	KindException    LineKind = "exception"
	KindIllustration LineKind = "illustration"
)

// Rule is one entry in the ordered pattern table: a named regular expression
// that classifies a line and the capture-group positions for the node number
// and inline heading. Number or heading may be 0 when the rule captures none.
type Rule struct {
	Name         string
	Kind         LineKind
	Pattern      *regexp.Regexp
	NumberGroup  int
	HeadingGroup int
}

// Match is the result of classifying a line against the table.
type Match struct {
	Rule    *Rule
	Number  string
	Heading string
	// Text is the full trimmed line, used by special-block rules whose
	// content includes the lead-in words.
	Text string
}

// defaultRules is the built-in pattern table for the Indian drafting
// conventions this parser targets. Order is an invariant: most specific
// first, and no rule may match a line an earlier rule already matched.
var defaultRules = []Rule{
	{
		Name:        "named-schedule",
		Kind:        KindSchedule,
		Pattern:     regexp.MustCompile(`(?i)^(?:THE\s+)?((?:FIRST|SECOND|THIRD|FOURTH|FIFTH|SIXTH|SEVENTH|EIGHTH|NINTH|TENTH|ELEVENTH|TWELFTH)\s+SCHEDULE)\b\s*[-–—:.]?\s*.*$`),
		NumberGroup: 1,
	},
	{
		Name:         "numbered-schedule",
		Kind:         KindSchedule,
		Pattern:      regexp.MustCompile(`(?i)^SCHEDULE(?:\s+([IVXLCDM]+|\d+[A-Z]?))?\s*[-–—:.]?\s*(.*)$`),
		NumberGroup:  1,
		HeadingGroup: 2,
	},
	{
		Name:         "part-heading",
		Kind:         KindPart,
		Pattern:      regexp.MustCompile(`(?i)^PART\s+([IVXLCDM]+[AB]?(?:-[A-Z])?)\.?\s*[-–—:]?\s*(.*)$`),
		NumberGroup:  1,
		HeadingGroup: 2,
	},
	{
		Name:         "chapter-heading",
		Kind:         KindChapter,
		Pattern:      regexp.MustCompile(`(?i)^CHAPTER\s+([IVXLCDM]+[AB]?|\d+[A-Z]?)\.?\s*[-–—:]?\s*(.*)$`),
		NumberGroup:  1,
		HeadingGroup: 2,
	},
	{
		Name:         "article-heading",
		Kind:         KindArticle,
		Pattern:      regexp.MustCompile(`(?i)^(?:ARTICLE|ART\.)\s+(\d+[A-Z]?(?:-[A-Z])?)\.?\s*[-–—:]?\s*(.*)$`),
		NumberGroup:  1,
		HeadingGroup: 2,
	},
	{
		Name:         "section-heading",
		Kind:         KindSection,
		Pattern:      regexp.MustCompile(`(?i)^(?:SECTION|SEC\.|§)\s+(\d+[A-Z]?(?:-[A-Z])?(?:\.\d+)*)\.?\s*[-–—:]?\s*(.*)$`),
		NumberGroup:  1,
		HeadingGroup: 2,
	},
	{
		Name:         "numbered-provision",
		Kind:         KindProvision,
		Pattern:      regexp.MustCompile(`^(\d+[A-Z]?(?:-[A-Z])?)\.\s+(.*)$`),
		NumberGroup:  1,
		HeadingGroup: 2,
	},
	{
		Name:         "clause-marker",
		Kind:         KindClause,
		Pattern:      regexp.MustCompile(`^\((\d+[A-Za-z]?|[a-z]{1,4})\)\s*(.*)$`),
		NumberGroup:  1,
		HeadingGroup: 2,
	},
	{
		Name:    "proviso-leadin",
		Kind:    KindProviso,
		Pattern: regexp.MustCompile(`^Provided\s+(?:further\s+|also\s+|always\s+)?that\b`),
	},
	{
		Name:         "explanation",
		Kind:         KindExplanation,
		Pattern:      regexp.MustCompile(`^Explanation(?:\s+([IVXLCDM]+|\d+))?\b\s*[-–—:.]*\s*(.*)$`),
		NumberGroup:  1,
		HeadingGroup: 2,
	},
	{
		Name:         "exception",
		Kind:         KindException,
		Pattern:      regexp.MustCompile(`^Exception(?:\s+(\d+))?\b\s*[-–—:.]*\s*(.*)$`),
		NumberGroup:  1,
		HeadingGroup: 2,
	},
	{
		Name:         "illustration",
		Kind:         KindIllustration,
		Pattern:      regexp.MustCompile(`^Illustrations?\b\s*[-–—:.]*\s*(.*)$`),
		HeadingGroup: 1,
	},
}

// DefaultRules returns a copy of the built-in pattern table in precedence
// order.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}

// Classify tests a trimmed line against the table in order and returns the
// first match, or nil when the line is leaf text.
func Classify(rules []Rule, line string) *Match {
	for i := range rules {
		rule := &rules[i]
		m := rule.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		match := &Match{Rule: rule, Text: line}
		if rule.NumberGroup > 0 && rule.NumberGroup < len(m) {
			match.Number = strings.TrimSpace(m[rule.NumberGroup])
		}
		if rule.HeadingGroup > 0 && rule.HeadingGroup < len(m) {
			match.Heading = strings.TrimSpace(m[rule.HeadingGroup])
		}
		return match
	}
	return nil
}

var romanValues = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

// romanValue converts a roman numeral (either case) to its integer value.
// Returns 0 for strings that are not roman numerals.
func romanValue(s string) int {
	s = strings.ToLower(s)
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	return total
}

var isRomanPattern = regexp.MustCompile(`^[ivxlcdm]+$`)

// classifyMarker determines the numbering scheme of a clause marker. Markers
// composed only of roman letters are ambiguous between roman and alphabetic
// ("(i)" may follow "(h)"): they are read as alphabetic when they continue an
// alphabetic sibling sequence, roman otherwise.
func classifyMarker(marker string, prevSibling string, siblingKind model.MarkerKind) model.MarkerKind {
	if marker == "" {
		return model.MarkerNumeric
	}
	if marker[0] >= '0' && marker[0] <= '9' {
		return model.MarkerNumeric
	}
	if !isRomanPattern.MatchString(strings.ToLower(marker)) {
		return model.MarkerAlpha
	}
	// Roman-letter-only marker.
	if siblingKind == model.MarkerAlpha && isAlphaSuccessor(prevSibling, marker) {
		return model.MarkerAlpha
	}
	if siblingKind == model.MarkerRoman {
		return model.MarkerRoman
	}
	// No sibling context: single letters like "i" or "v" begin a roman list
	// only when they are the first roman ordinal.
	if romanValue(marker) == 1 {
		return model.MarkerRoman
	}
	if len(marker) == 1 {
		return model.MarkerAlpha
	}
	return model.MarkerRoman
}

// isAlphaSuccessor reports whether next is the alphabetic marker immediately
// after prev ("h" -> "i", "z" -> "aa").
func isAlphaSuccessor(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	if len(prev) == 1 && len(next) == 1 {
		return next[0] == prev[0]+1
	}
	if prev == "z" && next == "aa" {
		return true
	}
	if len(prev) == 2 && len(next) == 2 && prev[0] == next[0] {
		return next[1] == prev[1]+1
	}
	return false
}

// firstOfScheme reports whether a marker is the natural first ordinal of its
// scheme: "1", "a", or "i". A deeper nesting level opening on any other
// marker indicates mixed marker types rather than deliberate nesting.
func firstOfScheme(marker string, kind model.MarkerKind) bool {
	switch kind {
	case model.MarkerNumeric:
		return marker == "1"
	case model.MarkerAlpha:
		return marker == "a"
	case model.MarkerRoman:
		return strings.ToLower(marker) == "i"
	}
	return false
}

// numericPrefix extracts the leading integer of a provision number
// ("2A" -> 2, "3-B" -> 3). Returns 0 when the number has no integer prefix.
func numericPrefix(number string) int {
	n := 0
	seen := false
	for i := 0; i < len(number); i++ {
		c := number[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}

// markerOrdinal maps a clause marker to its position in its numbering
// scheme: "3" -> 3, "c" -> 3, "iii" -> 3. Suffixed numeric markers keep
// their prefix value ("1A" -> 1).
func markerOrdinal(marker string, kind model.MarkerKind) int {
	switch kind {
	case model.MarkerNumeric:
		return numericPrefix(marker)
	case model.MarkerRoman:
		return romanValue(marker)
	case model.MarkerAlpha:
		n := 0
		for i := 0; i < len(marker); i++ {
			c := marker[i]
			if c < 'a' || c > 'z' {
				return 0
			}
			n = n*26 + int(c-'a'+1)
		}
		return n
	}
	return 0
}

// ordinalValue maps a container ordinal (roman or integer surface form,
// optionally with a compound suffix like "IXA" or "2A") to a comparable
// integer.
func ordinalValue(number string) int {
	trimmed := strings.TrimRight(strings.ToLower(number), "ab")
	trimmed = strings.SplitN(trimmed, "-", 2)[0]
	if v := romanValue(trimmed); v > 0 {
		return v
	}
	return numericPrefix(number)
}
