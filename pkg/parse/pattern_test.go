package parse

import (
	"testing"

	"github.com/coolbeans/samhita/pkg/model"
)

func TestClassifyRuleSelection(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name       string
		line       string
		wantKind   LineKind
		wantNumber string
	}{
		{"part with dash heading", "PART I - THE UNION", KindPart, "I"},
		{"part compound ordinal", "PART IXA", KindPart, "IXA"},
		{"part hyphen compound", "PART XIX-A", KindPart, "XIX-A"},
		{"chapter roman", "CHAPTER II", KindChapter, "II"},
		{"chapter numbered", "Chapter 3 - Preliminary", KindChapter, "3"},
		{"article with title", "Article 1. Name and territory", KindArticle, "1"},
		{"article abbreviated", "Art. 21A.", KindArticle, "21A"},
		{"section keyword", "Section 3. Interpretation", KindSection, "3"},
		{"section symbol", "§ 12A", KindSection, "12A"},
		{"bare numbered provision", "2. Definitions.", KindProvision, "2"},
		{"compound suffix provision", "2A. Insertion.", KindProvision, "2A"},
		{"hyphen compound provision", "3-B. Continuation.", KindProvision, "3-B"},
		{"numeric clause", "(1) India, that is Bharat, shall be a Union of States.", KindClause, "1"},
		{"alpha clause", "(a) the territories of the States;", KindClause, "a"},
		{"roman clause", "(iv) any other territory.", KindClause, "iv"},
		{"suffixed clause", "(1A) inserted by amendment.", KindClause, "1A"},
		{"proviso", "Provided that no person shall be deprived of property.", KindProviso, ""},
		{"proviso further", "Provided further that nothing in this section applies.", KindProviso, ""},
		{"explanation", "Explanation.—In this article, the expression means", KindExplanation, ""},
		{"numbered explanation", "Explanation II.—For the purposes hereof", KindExplanation, "II"},
		{"exception", "Exception.—This section does not extend to", KindException, ""},
		{"illustration", "Illustrations", KindIllustration, ""},
		{"named schedule", "THE FIRST SCHEDULE", KindSchedule, "FIRST SCHEDULE"},
		{"numbered schedule", "SCHEDULE III", KindSchedule, "III"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Classify(rules, tt.line)
			if m == nil {
				t.Fatalf("Classify(%q) = nil, want kind %s", tt.line, tt.wantKind)
			}
			if m.Rule.Kind != tt.wantKind {
				t.Errorf("Classify(%q) kind = %s (rule %s), want %s", tt.line, m.Rule.Kind, m.Rule.Name, tt.wantKind)
			}
			if m.Number != tt.wantNumber {
				t.Errorf("Classify(%q) number = %q, want %q", tt.line, m.Number, tt.wantNumber)
			}
		})
	}
}

func TestClassifyLeafText(t *testing.T) {
	rules := DefaultRules()

	leafLines := []string{
		"WE, THE PEOPLE OF INDIA, having solemnly resolved",
		"shall be called the Union of India.",
		"Particular attention is drawn to the following.",
		"Sections of the public objected.",
		"Provided accommodation was scarce.",
		"1.5 percent of the total revenue",
	}

	for _, line := range leafLines {
		if m := Classify(rules, line); m != nil {
			t.Errorf("Classify(%q) matched rule %s, want leaf text", line, m.Rule.Name)
		}
	}
}

// The table order is an invariant: more specific rules must win over later,
// more general ones.
func TestRulePrecedence(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		line     string
		wantRule string
	}{
		// "Article 1." must hit the article rule, never numbered-provision.
		{"Article 1. Name", "article-heading"},
		// A schedule heading must not be read as leaf text or a part.
		{"THE FIRST SCHEDULE", "named-schedule"},
		// "Section 1798.100" hits the section rule with its dotted number.
		{"Section 1798.100", "section-heading"},
	}

	for _, tt := range tests {
		m := Classify(rules, tt.line)
		if m == nil {
			t.Fatalf("Classify(%q) = nil, want rule %s", tt.line, tt.wantRule)
		}
		if m.Rule.Name != tt.wantRule {
			t.Errorf("Classify(%q) rule = %s, want %s", tt.line, m.Rule.Name, tt.wantRule)
		}
	}
}

func TestClassifyMarker(t *testing.T) {
	tests := []struct {
		marker      string
		prevSibling string
		siblingKind model.MarkerKind
		want        model.MarkerKind
	}{
		{"1", "", "", model.MarkerNumeric},
		{"2A", "", "", model.MarkerNumeric},
		{"a", "", "", model.MarkerAlpha},
		{"b", "a", model.MarkerAlpha, model.MarkerAlpha},
		{"i", "", "", model.MarkerRoman},
		{"ii", "i", model.MarkerRoman, model.MarkerRoman},
		// "(i)" continuing an alphabetic run after "(h)" stays alphabetic.
		{"i", "h", model.MarkerAlpha, model.MarkerAlpha},
		// "(v)" after "(iv)" in a roman run stays roman.
		{"v", "iv", model.MarkerRoman, model.MarkerRoman},
		// "(v)" with no context is a letter, not a fifth roman ordinal.
		{"v", "", "", model.MarkerAlpha},
		{"aa", "z", model.MarkerAlpha, model.MarkerAlpha},
	}

	for _, tt := range tests {
		got := classifyMarker(tt.marker, tt.prevSibling, tt.siblingKind)
		if got != tt.want {
			t.Errorf("classifyMarker(%q, prev=%q, kind=%s) = %s, want %s",
				tt.marker, tt.prevSibling, tt.siblingKind, got, tt.want)
		}
	}
}

func TestRomanValue(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"I", 1}, {"IV", 4}, {"IX", 9}, {"XIV", 14}, {"XXII", 22},
		{"xlii", 42}, {"not-roman", 0}, {"", 0},
	}
	for _, tt := range tests {
		if got := romanValue(tt.in); got != tt.want {
			t.Errorf("romanValue(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOrdinalValue(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"I", 1}, {"VII", 7}, {"IXA", 9}, {"XIX-A", 19},
		{"3", 3}, {"12A", 12},
	}
	for _, tt := range tests {
		if got := ordinalValue(tt.in); got != tt.want {
			t.Errorf("ordinalValue(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMarkerOrdinal(t *testing.T) {
	tests := []struct {
		marker string
		kind   model.MarkerKind
		want   int
	}{
		{"3", model.MarkerNumeric, 3},
		{"1A", model.MarkerNumeric, 1},
		{"c", model.MarkerAlpha, 3},
		{"aa", model.MarkerAlpha, 27},
		{"iii", model.MarkerRoman, 3},
	}
	for _, tt := range tests {
		if got := markerOrdinal(tt.marker, tt.kind); got != tt.want {
			t.Errorf("markerOrdinal(%q, %s) = %d, want %d", tt.marker, tt.kind, got, tt.want)
		}
	}
}
