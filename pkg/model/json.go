package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingMetadata indicates that structured JSON input lacks a mandatory
// metadata field. Conversion cannot proceed without it because the FRBR Work
// URI requires title, type, and country.
var ErrMissingMetadata = errors.New("missing required metadata")

// LoadJSON decodes a pre-built document from JSON and validates it for
// conversion. This is the alternative input path that bypasses the parser:
// the JSON field names mirror the model struct tags.
func LoadJSON(data []byte) (*LegalDocument, error) {
	var doc LegalDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document JSON: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Validate checks the invariants required before conversion: mandatory
// metadata fields, a recognized document type, and the structured versus
// unstructured shape.
func (d *LegalDocument) Validate() error {
	if d.Metadata.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingMetadata)
	}
	if d.Metadata.Type == "" {
		return fmt.Errorf("%w: document_type", ErrMissingMetadata)
	}
	if !ValidDocumentType(d.Metadata.Type) {
		return fmt.Errorf("unknown document type %q", d.Metadata.Type)
	}
	if d.Metadata.Country == "" {
		return fmt.Errorf("%w: country", ErrMissingMetadata)
	}

	if d.Unstructured {
		if d.HasStructure() {
			return fmt.Errorf("document flagged unstructured but carries structure")
		}
		return nil
	}

	if !d.HasStructure() && d.RawText == "" {
		return fmt.Errorf("document has no top-level containers and is not flagged unstructured")
	}

	return d.validateNumbers()
}

// validateNumbers rejects structural nodes with empty identifiers. Ordinal
// ordering is not validated here: numbering regressions are a parser
// diagnostic, not a load failure.
func (d *LegalDocument) validateNumbers() error {
	for _, part := range d.Parts {
		if part.Number == "" {
			return fmt.Errorf("part with empty number")
		}
	}
	for _, chapter := range d.Chapters {
		if chapter.Number == "" {
			return fmt.Errorf("chapter with empty number")
		}
	}
	for _, provision := range d.AllProvisions() {
		if provision.Number == "" {
			return fmt.Errorf("provision with empty number")
		}
		if provision.Kind != ProvisionArticle && provision.Kind != ProvisionSection {
			return fmt.Errorf("provision %s: unknown kind %q", provision.Number, provision.Kind)
		}
	}
	return nil
}

// MarshalIndentJSON serializes the document as indented JSON, the same shape
// LoadJSON accepts.
func (d *LegalDocument) MarshalIndentJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
