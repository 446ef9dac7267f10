// Package akn converts a model.LegalDocument into an Akoma Ntoso 3.0 XML
// tree. Conversion is a pure, deterministic walk: identical documents yield
// byte-identical output, including element identifiers. The only fatal
// conditions are missing required metadata and an entity kind with no
// mapping; everything else was already settled by the parser.
package akn

import (
	"errors"
	"fmt"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/coolbeans/samhita/pkg/model"
)

// Namespace is the Akoma Ntoso 3.0 namespace every emitted element is bound
// to.
const Namespace = "http://docs.oasis-open.org/legaldocml/ns/akn/3.0"

// ErrSchemaMappingGap indicates a document entity kind with no converter
// mapping. The entity set is closed, so this signals a core inconsistency
// rather than bad input.
var ErrSchemaMappingGap = errors.New("no schema mapping for entity kind")

// Converter builds Akoma Ntoso trees from legal documents.
type Converter struct {
	generatedAt time.Time
	authorRef   string
}

// Option configures a Converter.
type Option func(*Converter)

// WithGeneratedAt supplies the generation timestamp recorded on the FRBR
// Manifestation. The converter never samples the clock itself; when no
// timestamp is supplied, the Manifestation date is omitted.
func WithGeneratedAt(t time.Time) Option {
	return func(c *Converter) { c.generatedAt = t }
}

// WithAuthorRef overrides the Manifestation author reference.
func WithAuthorRef(ref string) Option {
	return func(c *Converter) { c.authorRef = ref }
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{authorRef: "#samhita"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert maps a document to an Akoma Ntoso XML tree rooted at a document
// node (declaration plus akn element). The document must pass validation:
// missing mandatory metadata aborts conversion.
func (c *Converter) Convert(doc *model.LegalDocument) (*xmlquery.Node, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("document not convertible: %w", err)
	}

	root := &xmlquery.Node{Type: xmlquery.DocumentNode}
	decl := &xmlquery.Node{
		Type: xmlquery.DeclarationNode,
		Data: "xml",
		Attr: []xmlquery.Attr{
			{Name: attrName("version"), Value: "1.0"},
			{Name: attrName("encoding"), Value: "UTF-8"},
		},
	}
	xmlquery.AddChild(root, decl)

	akn := appendElement(root, "akn")
	setAttr(akn, "xmlns", Namespace)

	docElem := appendElement(akn, docElementName(doc.Metadata.Type))
	if docElem.Data == "doc" {
		setAttr(docElem, "name", string(doc.Metadata.Type))
	}

	c.buildMeta(docElem, doc.Metadata)

	if err := c.buildBody(docElem, doc); err != nil {
		return nil, err
	}

	if len(doc.Schedules) > 0 {
		c.buildAttachments(docElem, doc.Schedules)
	}

	return root, nil
}

// Bytes converts a document and serializes it as indented XML, verifying
// well-formedness of the result.
func (c *Converter) Bytes(doc *model.LegalDocument) ([]byte, error) {
	root, err := c.Convert(doc)
	if err != nil {
		return nil, err
	}
	data := Indent(root, "  ")
	if err := CheckWellFormed(data); err != nil {
		return nil, err
	}
	return data, nil
}

// docElementName maps a document type to its container element. Acts and
// bills have dedicated elements; other types use the generic doc container
// with a name attribute.
func docElementName(t model.DocumentType) string {
	switch t {
	case model.DocumentTypeAct:
		return "act"
	case model.DocumentTypeBill:
		return "bill"
	default:
		return "doc"
	}
}

func (c *Converter) buildBody(docElem *xmlquery.Node, doc *model.LegalDocument) error {
	if doc.Preamble != "" {
		preamble := appendElement(docElem, "preamble")
		appendTextElement(preamble, "p", normalizeText(doc.Preamble))
	}

	body := appendElement(docElem, "body")
	eids := newEIDAllocator()

	if doc.Unstructured {
		appendTextElement(body, "p", normalizeText(doc.RawText))
		return nil
	}

	for _, part := range doc.Parts {
		if err := c.buildPart(body, part, eids); err != nil {
			return err
		}
	}
	for _, chapter := range doc.Chapters {
		if err := c.buildChapter(body, "", chapter, eids); err != nil {
			return err
		}
	}
	for _, provision := range doc.Provisions {
		if err := c.buildProvision(body, "", provision, eids); err != nil {
			return err
		}
	}

	if doc.Conclusion != "" {
		conclusions := appendElement(docElem, "conclusions")
		appendTextElement(conclusions, "p", normalizeText(doc.Conclusion))
	}
	return nil
}

func (c *Converter) buildPart(parent *xmlquery.Node, part *model.Part, eids *eidAllocator) error {
	eid := eids.next("", abbrevPart)
	elem := appendElement(parent, "part")
	setAttr(elem, "eId", eid)
	appendTextElement(elem, "num", "PART "+part.Number)
	if part.Heading != "" {
		appendTextElement(elem, "heading", normalizeText(part.Heading))
	}

	for _, chapter := range part.Chapters {
		if err := c.buildChapter(elem, eid, chapter, eids); err != nil {
			return err
		}
	}
	for _, provision := range part.Provisions {
		if err := c.buildProvision(elem, eid, provision, eids); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) buildChapter(parent *xmlquery.Node, parentID string, chapter *model.Chapter, eids *eidAllocator) error {
	eid := eids.next(parentID, abbrevChapter)
	elem := appendElement(parent, "chapter")
	setAttr(elem, "eId", eid)
	appendTextElement(elem, "num", chapter.Number)
	if chapter.Heading != "" {
		appendTextElement(elem, "heading", normalizeText(chapter.Heading))
	}

	for _, provision := range chapter.Provisions {
		if err := c.buildProvision(elem, eid, provision, eids); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) buildProvision(parent *xmlquery.Node, parentID string, provision *model.Provision, eids *eidAllocator) error {
	var name, abbrev string
	switch provision.Kind {
	case model.ProvisionArticle:
		name, abbrev = "article", abbrevArticle
	case model.ProvisionSection:
		name, abbrev = "section", abbrevSection
	default:
		return fmt.Errorf("%w: provision kind %q", ErrSchemaMappingGap, provision.Kind)
	}

	eid := eids.next(parentID, abbrev)
	elem := appendElement(parent, name)
	setAttr(elem, "eId", eid)
	appendTextElement(elem, "num", provision.Number)
	if provision.Heading != "" {
		appendTextElement(elem, "heading", normalizeText(provision.Heading))
	}

	if provision.IntroText != "" {
		wrapper := "content"
		if len(provision.Clauses) > 0 || len(provision.Blocks) > 0 {
			wrapper = "intro"
		}
		w := appendElement(elem, wrapper)
		appendTextElement(w, "p", normalizeText(provision.IntroText))
	}

	for _, clause := range provision.Clauses {
		if err := c.buildClause(elem, eid, clause, 1, eids); err != nil {
			return err
		}
	}
	for _, block := range provision.Blocks {
		if err := c.buildBlock(elem, eid, block, eids); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) buildClause(parent *xmlquery.Node, parentID string, clause *model.Clause, depth int, eids *eidAllocator) error {
	name, abbrev := "paragraph", abbrevParagraph
	if depth > 1 {
		name, abbrev = "subparagraph", abbrevSubparagraph
	}

	eid := eids.next(parentID, abbrev)
	elem := appendElement(parent, name)
	setAttr(elem, "eId", eid)
	setAttr(elem, "num", clause.Marker)

	if clause.Text != "" {
		content := appendElement(elem, "content")
		appendTextElement(content, "p", normalizeText(clause.Text))
	}

	for _, child := range clause.Children {
		if err := c.buildClause(elem, eid, child, depth+1, eids); err != nil {
			return err
		}
	}
	for _, block := range clause.Blocks {
		if err := c.buildBlock(elem, eid, block, eids); err != nil {
			return err
		}
	}
	return nil
}

// buildBlock maps special blocks onto hcontainer elements with a
// classifying name attribute.
func (c *Converter) buildBlock(parent *xmlquery.Node, parentID string, block *model.SpecialBlock, eids *eidAllocator) error {
	var abbrev string
	switch block.Kind {
	case model.BlockProviso:
		abbrev = abbrevProviso
	case model.BlockExplanation:
		abbrev = abbrevExplanation
	case model.BlockException:
		abbrev = abbrevException
	case model.BlockIllustration:
		abbrev = abbrevIllustration
	default:
		return fmt.Errorf("%w: block kind %q", ErrSchemaMappingGap, block.Kind)
	}

	eid := eids.next(parentID, abbrev)
	elem := appendElement(parent, "hcontainer")
	setAttr(elem, "eId", eid)
	setAttr(elem, "name", string(block.Kind))
	if block.Number != "" {
		setAttr(elem, "num", block.Number)
	}

	if block.Text != "" {
		content := appendElement(elem, "content")
		appendTextElement(content, "p", normalizeText(block.Text))
	}
	if len(block.Items) > 0 {
		list := appendElement(elem, "blockList")
		for _, item := range block.Items {
			itemElem := appendElement(list, "item")
			appendTextElement(itemElem, "p", normalizeText(item))
		}
	}
	return nil
}

// buildAttachments maps schedules onto attachment elements holding tabular
// content.
func (c *Converter) buildAttachments(docElem *xmlquery.Node, schedules []*model.Schedule) {
	eids := newEIDAllocator()
	attachments := appendElement(docElem, "attachments")
	for _, schedule := range schedules {
		eid := eids.next("", abbrevAttachment)
		att := appendElement(attachments, "attachment")
		setAttr(att, "eId", eid)

		sched := appendElement(att, "schedule")
		if schedule.Name != "" {
			appendTextElement(sched, "heading", normalizeText(schedule.Name))
		}
		if len(schedule.Rows) == 0 {
			continue
		}

		table := appendElement(sched, "table")
		setAttr(table, "eId", eids.next(eid, abbrevTable))
		for _, row := range schedule.Rows {
			rowElem := appendElement(table, "row")
			for _, cell := range row {
				cellElem := appendElement(rowElem, "cell")
				appendTextElement(cellElem, "p", normalizeText(cell))
			}
		}
	}
}
