package model

import "fmt"

// Severity indicates how serious a diagnostic is.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DiagnosticCode identifies the category of a data-quality condition.
type DiagnosticCode string

const (
	// UnrecognizedStructure: a line could not be classified and was
	// recovered as leaf text.
	UnrecognizedStructure DiagnosticCode = "UnrecognizedStructure"

	// NumberingAnomaly: a sibling ordinal regressed from the expected
	// monotonic sequence. The content is accepted as-is.
	NumberingAnomaly DiagnosticCode = "NumberingAnomaly"

	// MixedMarkerTypes: alphabetic and numeric markers appeared at the same
	// sibling depth. Later markers are treated as a new nesting level.
	MixedMarkerTypes DiagnosticCode = "MixedMarkerTypes"

	// DetectionAmbiguous: document-type auto-detection found no dominant
	// heading pattern and fell back to the default.
	DetectionAmbiguous DiagnosticCode = "DetectionAmbiguous"

	// MissingRequiredMetadata: a mandatory metadata field is absent from
	// structured JSON input. Fatal for conversion.
	MissingRequiredMetadata DiagnosticCode = "MissingRequiredMetadata"

	// SchemaMappingGap: an entity kind has no converter mapping. Fatal;
	// signals a core inconsistency rather than a data-quality issue.
	SchemaMappingGap DiagnosticCode = "SchemaMappingGap"
)

// Diagnostic records a recoverable data-quality condition found while
// parsing or validating a document. Line is 1-based; zero means the
// diagnostic applies to the document as a whole.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     DiagnosticCode `json:"code"`
	Message  string         `json:"message"`
	Line     int            `json:"line,omitempty"`
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s [%s] line %d: %s", d.Severity, d.Code, d.Line, d.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Severity, d.Code, d.Message)
}

// Warningf builds a warning diagnostic.
func Warningf(code DiagnosticCode, line int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	}
}

// Errorf builds an error diagnostic.
func Errorf(code DiagnosticCode, line int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	}
}

// HasWarnings reports whether any diagnostic in the list is a warning.
func HasWarnings(diags []Diagnostic) bool {
	return CountWarnings(diags) > 0
}

// CountWarnings returns the number of warning diagnostics in the list.
func CountWarnings(diags []Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			n++
		}
	}
	return n
}
