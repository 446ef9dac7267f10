// Package model defines the document tree for Indian legal texts: metadata,
// hierarchical containers (parts, chapters), provisions, clauses, special
// blocks, and schedules. The tree is pure data; it is built once by the
// parser (or loaded from JSON) and consumed once by the converter.
package model

// DocumentType represents the type of legal document.
type DocumentType string

const (
	DocumentTypeConstitution DocumentType = "constitution"
	DocumentTypeAct          DocumentType = "act"
	DocumentTypeBill         DocumentType = "bill"
	DocumentTypeOrdinance    DocumentType = "ordinance"
	DocumentTypeRegulation   DocumentType = "regulation"
)

// ValidDocumentType reports whether t is one of the recognized document types.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeConstitution, DocumentTypeAct, DocumentTypeBill,
		DocumentTypeOrdinance, DocumentTypeRegulation:
		return true
	}
	return false
}

// ProvisionKind distinguishes articles (constitutions) from sections (acts).
type ProvisionKind string

const (
	ProvisionArticle ProvisionKind = "article"
	ProvisionSection ProvisionKind = "section"
)

// MarkerKind classifies a clause marker by its numbering scheme.
type MarkerKind string

const (
	MarkerNumeric MarkerKind = "numeric"
	MarkerAlpha   MarkerKind = "alpha"
	MarkerRoman   MarkerKind = "roman"
)

// BlockKind classifies a special block attached to a provision or clause.
type BlockKind string

const (
	BlockProviso      BlockKind = "proviso"
	BlockExplanation  BlockKind = "explanation"
	BlockException    BlockKind = "exception"
	BlockIllustration BlockKind = "illustration"
)

// Metadata holds bibliographic information for a legal document. It is
// attached once to a LegalDocument and not modified afterwards.
type Metadata struct {
	Title       string       `json:"title"`
	Type        DocumentType `json:"document_type"`
	Country     string       `json:"country"`
	Language    string       `json:"language"`
	Number      string       `json:"number,omitempty"`
	Year        string       `json:"year,omitempty"`
	DateEnacted string       `json:"date_enacted,omitempty"`
	Publisher   string       `json:"publisher,omitempty"`
}

// LegalDocument is the root aggregate. Structured documents carry parts
// (constitutions), chapters (acts), or bare top-level provisions when the
// source has no grouping containers. Unstructured documents carry the whole
// source text in RawText.
type LegalDocument struct {
	Metadata   Metadata     `json:"metadata"`
	Preamble   string       `json:"preamble,omitempty"`
	Parts      []*Part      `json:"parts,omitempty"`
	Chapters   []*Chapter   `json:"chapters,omitempty"`
	Provisions []*Provision `json:"provisions,omitempty"`
	Schedules  []*Schedule  `json:"schedules,omitempty"`
	Conclusion string       `json:"conclusion,omitempty"`

	Unstructured bool   `json:"unstructured,omitempty"`
	RawText      string `json:"raw_text,omitempty"`
}

// Part is a top-level container in a constitution, numbered with roman
// numerals (compound forms like "XIX-A" allowed). A part may own chapters,
// provisions, or both.
type Part struct {
	Number     string       `json:"number"`
	Heading    string       `json:"heading,omitempty"`
	Chapters   []*Chapter   `json:"chapters,omitempty"`
	Provisions []*Provision `json:"provisions,omitempty"`
}

// Chapter is a container in an act (or within a constitution part).
type Chapter struct {
	Number     string       `json:"number"`
	Heading    string       `json:"heading,omitempty"`
	Provisions []*Provision `json:"provisions,omitempty"`
}

// Provision is an article or section. Number supports compound forms such as
// "2A" and "3-B". IntroText holds text that precedes the first clause.
type Provision struct {
	Kind      ProvisionKind   `json:"kind"`
	Number    string          `json:"number"`
	Heading   string          `json:"heading,omitempty"`
	IntroText string          `json:"intro_text,omitempty"`
	Clauses   []*Clause       `json:"clauses,omitempty"`
	Blocks    []*SpecialBlock `json:"blocks,omitempty"`
}

// Clause is a marked subsection, e.g. "(1)" or "(a)". Clauses nest one level:
// Children holds sub-clauses; deeper source nesting is flattened by the
// parser at its depth cap.
type Clause struct {
	Marker     string          `json:"marker"`
	MarkerKind MarkerKind      `json:"marker_kind"`
	Text       string          `json:"text,omitempty"`
	Children   []*Clause       `json:"children,omitempty"`
	Blocks     []*SpecialBlock `json:"blocks,omitempty"`
}

// SpecialBlock is a proviso, explanation, exception, or illustration attached
// as a trailing child of the provision or clause it qualifies. Illustrations
// may carry an example item list.
type SpecialBlock struct {
	Kind   BlockKind `json:"kind"`
	Number string    `json:"number,omitempty"`
	Text   string    `json:"text,omitempty"`
	Items  []string  `json:"items,omitempty"`
}

// Schedule is a top-level sibling of parts and chapters holding tabular or
// list content as ordered rows of cell text.
type Schedule struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows,omitempty"`
}

// Statistics summarizes document structure for inspection and validation.
type Statistics struct {
	Parts      int `json:"parts"`
	Chapters   int `json:"chapters"`
	Provisions int `json:"provisions"`
	Clauses    int `json:"clauses"`
	Blocks     int `json:"blocks"`
	Schedules  int `json:"schedules"`
}

// Statistics returns counts of each structural entity in the document.
func (d *LegalDocument) Statistics() Statistics {
	stats := Statistics{
		Parts:     len(d.Parts),
		Schedules: len(d.Schedules),
	}

	var clauseWalk func(clauses []*Clause)
	clauseWalk = func(clauses []*Clause) {
		for _, clause := range clauses {
			stats.Clauses++
			stats.Blocks += len(clause.Blocks)
			clauseWalk(clause.Children)
		}
	}

	countProvisions := func(provisions []*Provision) {
		for _, provision := range provisions {
			stats.Provisions++
			stats.Blocks += len(provision.Blocks)
			clauseWalk(provision.Clauses)
		}
	}

	countChapters := func(chapters []*Chapter) {
		for _, chapter := range chapters {
			stats.Chapters++
			countProvisions(chapter.Provisions)
		}
	}

	for _, part := range d.Parts {
		countChapters(part.Chapters)
		countProvisions(part.Provisions)
	}
	countChapters(d.Chapters)
	countProvisions(d.Provisions)

	return stats
}

// AllProvisions returns every provision in document order.
func (d *LegalDocument) AllProvisions() []*Provision {
	var provisions []*Provision

	collectChapters := func(chapters []*Chapter) {
		for _, chapter := range chapters {
			provisions = append(provisions, chapter.Provisions...)
		}
	}

	for _, part := range d.Parts {
		collectChapters(part.Chapters)
		provisions = append(provisions, part.Provisions...)
	}
	collectChapters(d.Chapters)
	provisions = append(provisions, d.Provisions...)

	return provisions
}

// FindProvision returns the provision with the given number, or nil.
func (d *LegalDocument) FindProvision(number string) *Provision {
	for _, provision := range d.AllProvisions() {
		if provision.Number == number {
			return provision
		}
	}
	return nil
}

// HasStructure reports whether the document carries any recognized
// hierarchical content.
func (d *LegalDocument) HasStructure() bool {
	return len(d.Parts) > 0 || len(d.Chapters) > 0 ||
		len(d.Provisions) > 0 || len(d.Schedules) > 0
}
