package akn

import (
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/coolbeans/samhita/pkg/model"
)

// buildMeta emits the meta block with the FRBR Work/Expression/Manifestation
// triple. Missing optional metadata fields are omitted from the URIs rather
// than rendered as empty segments.
func (c *Converter) buildMeta(docElem *xmlquery.Node, md model.Metadata) {
	meta := appendElement(docElem, "meta")

	identification := appendElement(meta, "identification")
	setAttr(identification, "source", "#source")

	workURI := buildWorkURI(md)
	exprURI := workURI + "/" + md.Language + "@"
	authorRef := "#author"
	if md.Publisher != "" {
		authorRef = "#" + md.Publisher
	}

	work := appendElement(identification, "FRBRWork")
	attrElement(work, "FRBRthis", "value", workURI+"/main")
	attrElement(work, "FRBRuri", "value", workURI)
	if md.DateEnacted != "" {
		dateElement(work, md.DateEnacted, "enactment")
	}
	attrElement(work, "FRBRauthor", "href", authorRef)
	attrElement(work, "FRBRcountry", "value", strings.ToLower(md.Country))
	attrElement(work, "FRBRname", "value", md.Title)

	expr := appendElement(identification, "FRBRExpression")
	attrElement(expr, "FRBRthis", "value", exprURI+"/main")
	attrElement(expr, "FRBRuri", "value", exprURI)
	if md.DateEnacted != "" {
		dateElement(expr, md.DateEnacted, "enactment")
	}
	attrElement(expr, "FRBRauthor", "href", authorRef)
	attrElement(expr, "FRBRlanguage", "language", md.Language)

	manif := appendElement(identification, "FRBRManifestation")
	attrElement(manif, "FRBRthis", "value", exprURI+"/main.xml")
	attrElement(manif, "FRBRuri", "value", exprURI+".akn")
	if !c.generatedAt.IsZero() {
		dateElement(manif, c.generatedAt.UTC().Format(time.RFC3339), "generation")
	}
	attrElement(manif, "FRBRauthor", "href", c.authorRef)

	if md.Publisher != "" {
		references := appendElement(meta, "references")
		setAttr(references, "source", "#source")
		org := appendElement(references, "TLCOrganization")
		setAttr(org, "eId", md.Publisher)
		setAttr(org, "href", "/ontology/organization/"+strings.ToLower(md.Country)+"/"+md.Publisher)
		setAttr(org, "showAs", md.Publisher)
	}
}

// buildWorkURI encodes country, document type, and the optional identifying
// year and number: /akn/in/act/1950/26.
func buildWorkURI(md model.Metadata) string {
	segments := []string{"", "akn", strings.ToLower(md.Country), string(md.Type)}
	if md.Year != "" {
		segments = append(segments, md.Year)
	}
	if md.Number != "" {
		segments = append(segments, md.Number)
	}
	return strings.Join(segments, "/")
}

func attrElement(parent *xmlquery.Node, name, attr, value string) *xmlquery.Node {
	elem := appendElement(parent, name)
	setAttr(elem, attr, value)
	return elem
}

func dateElement(parent *xmlquery.Node, date, name string) {
	elem := appendElement(parent, "FRBRdate")
	setAttr(elem, "date", date)
	setAttr(elem, "name", name)
}
