package parse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/coolbeans/samhita/pkg/model"
)

// Hint is the caller-supplied document-type hint. HintAuto asks the parser
// to classify the document from its dominant top-level heading pattern.
type Hint string

const HintAuto Hint = "auto"

// maxClauseDepth caps clause nesting. Deeper source nesting is parsed but
// flattened to this depth.
const maxClauseDepth = 2

// detectionWindow is the number of leading structural matches considered by
// document-type auto-detection.
const detectionWindow = 10

// Parser turns a sequence of text lines into a model.LegalDocument. A Parser
// is safe for reuse across documents; per-parse state lives in the builder.
type Parser struct {
	rules    []Rule
	hint     Hint
	title    string
	country  string
	language string
}

// Option configures a Parser.
type Option func(*Parser)

// WithHint sets the document-type hint. Valid values are the model document
// types and HintAuto (the default).
func WithHint(h Hint) Option { return func(p *Parser) { p.hint = h } }

// WithTitle sets the document title recorded in metadata.
func WithTitle(title string) Option { return func(p *Parser) { p.title = title } }

// WithCountry sets the jurisdiction country code (default "IN").
func WithCountry(cc string) Option { return func(p *Parser) { p.country = cc } }

// WithLanguage sets the expression language code (default "eng").
func WithLanguage(lang string) Option { return func(p *Parser) { p.language = lang } }

// WithProfile extends the built-in pattern table with heading rules from a
// compiled profile. Profile rules take precedence over the built-in rule of
// the same kind.
func WithProfile(profile *Profile) Option {
	return func(p *Parser) { p.rules = profile.mergedRules(p.rules) }
}

// New creates a Parser with the default pattern table.
func New(opts ...Option) *Parser {
	p := &Parser{
		rules:    DefaultRules(),
		hint:     HintAuto,
		country:  "IN",
		language: "eng",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads lines from r and builds a document. The error is non-nil only
// for read failures; malformed content is reported through diagnostics.
func (p *Parser) Parse(r io.Reader) (*model.LegalDocument, []model.Diagnostic, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}

	doc, diags := p.ParseLines(lines)
	return doc, diags, nil
}

// ParseLines builds a document from the given lines. It never fails: when no
// structural markers are found at all, the result is flagged unstructured and
// carries the whole input as raw text with a single diagnostic.
func (p *Parser) ParseLines(lines []string) (*model.LegalDocument, []model.Diagnostic) {
	b := &builder{
		parser: p,
		doc: &model.LegalDocument{
			Metadata: model.Metadata{
				Title:    p.title,
				Country:  p.country,
				Language: p.language,
			},
		},
	}

	for i, raw := range lines {
		b.line = i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			if b.buf.Len() > 0 {
				b.blankPending = true
			}
			continue
		}

		match := Classify(p.rules, line)
		if match == nil {
			b.leafText(line)
			continue
		}
		b.structural(match)
	}

	b.finish()
	return b.doc, b.diags
}

// levelState tracks the established marker scheme of one clause nesting
// depth within the current provision.
type levelState struct {
	kind       model.MarkerKind
	lastMarker string
}

// builder holds the per-parse state: the explicit stack of open containers
// and the pending leaf-text buffer of the deepest open node.
type builder struct {
	parser *Parser
	doc    *model.LegalDocument
	diags  []model.Diagnostic

	part      *model.Part
	chapter   *model.Chapter
	provision *model.Provision
	clauses   []*model.Clause // open clause chain, clauses[0] is depth 1
	block     *model.SpecialBlock
	schedule  *model.Schedule

	levels [maxClauseDepth]levelState

	buf          strings.Builder
	blankPending bool

	structuralMatches int
	partHeads         int
	chapterHeads      int

	line int
}

func (b *builder) warnf(code model.DiagnosticCode, format string, args ...any) {
	b.diags = append(b.diags, model.Warningf(code, b.line, format, args...))
}

// leafText appends an unmatched line to the deepest open node's pending
// buffer, or to the current schedule as a row.
func (b *builder) leafText(line string) {
	if b.schedule != nil {
		b.schedule.Rows = append(b.schedule.Rows, splitCells(line))
		return
	}
	if b.buf.Len() > 0 {
		if b.blankPending {
			b.buf.WriteString("\n")
		} else {
			b.buf.WriteString(" ")
		}
	}
	b.blankPending = false
	b.buf.WriteString(line)
}

// cellSeparator splits schedule rows into cells on tabs or runs of two or
// more spaces.
var cellSeparator = regexp.MustCompile(`\t+|\s{2,}`)

func splitCells(line string) []string {
	fields := cellSeparator.Split(line, -1)
	cells := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			cells = append(cells, f)
		}
	}
	if len(cells) == 0 {
		return []string{""}
	}
	return cells
}

// flushText attaches the pending buffer to the deepest open node.
func (b *builder) flushText() {
	text := strings.TrimSpace(b.buf.String())
	b.buf.Reset()
	b.blankPending = false
	if text == "" {
		return
	}

	switch {
	case b.block != nil:
		b.block.Text = joinText(b.block.Text, text)
	case len(b.clauses) > 0:
		top := b.clauses[len(b.clauses)-1]
		top.Text = joinText(top.Text, text)
	case b.provision != nil:
		b.provision.IntroText = joinText(b.provision.IntroText, text)
	case b.chapter != nil:
		b.chapter.Heading = joinText(b.chapter.Heading, text)
	case b.part != nil:
		b.part.Heading = joinText(b.part.Heading, text)
	default:
		b.doc.Preamble = joinText(b.doc.Preamble, text)
	}
}

func joinText(existing, text string) string {
	if existing == "" {
		return text
	}
	return existing + " " + text
}

// structural handles a classified line: closing open containers down to the
// correct parent depth, then opening the new node.
func (b *builder) structural(m *Match) {
	// An open illustration absorbs clause-marked lines as example items.
	if b.block != nil && b.block.Kind == model.BlockIllustration && m.Rule.Kind == KindClause {
		b.flushText()
		b.block.Items = append(b.block.Items, strings.TrimSpace(m.Heading))
		return
	}

	// An open schedule absorbs everything below top-level headings; its
	// finer sub-item structure is deliberately not modeled.
	if b.schedule != nil {
		switch m.Rule.Kind {
		case KindSchedule, KindPart, KindChapter:
			// falls through to normal handling below
		default:
			b.schedule.Rows = append(b.schedule.Rows, splitCells(m.Text))
			return
		}
	}

	b.structuralMatches++
	if b.structuralMatches <= detectionWindow {
		switch m.Rule.Kind {
		case KindPart:
			b.partHeads++
		case KindChapter:
			b.chapterHeads++
		}
	}

	switch m.Rule.Kind {
	case KindSchedule:
		b.openSchedule(m)
	case KindPart:
		b.openPart(m)
	case KindChapter:
		b.openChapter(m)
	case KindArticle:
		b.openProvision(m, model.ProvisionArticle)
	case KindSection:
		b.openProvision(m, model.ProvisionSection)
	case KindProvision:
		b.openProvision(m, b.impliedProvisionKind())
	case KindClause:
		b.openClause(m)
	case KindProviso:
		b.openBlock(model.BlockProviso, "", m.Text)
	case KindExplanation:
		b.openBlock(model.BlockExplanation, m.Number, m.Heading)
	case KindException:
		b.openBlock(model.BlockException, m.Number, m.Heading)
	case KindIllustration:
		b.openBlock(model.BlockIllustration, "", m.Heading)
	}
}

// closeClausesTo pops open clauses until n remain, flushing pending text and
// clearing the level state of the abandoned depths.
func (b *builder) closeClausesTo(n int) {
	if len(b.clauses) <= n {
		return
	}
	b.flushText()
	b.clauses = b.clauses[:n]
	for d := n; d < maxClauseDepth; d++ {
		b.levels[d] = levelState{}
	}
}

// closeProvision closes the open provision and everything below it.
func (b *builder) closeProvision() {
	b.flushText()
	b.block = nil
	b.closeClausesTo(0)
	b.provision = nil
}

// closeToDoc closes every open container, leaving the document itself open.
func (b *builder) closeToDoc() {
	b.closeProvision()
	b.flushText()
	b.chapter = nil
	b.part = nil
	b.schedule = nil
}

func (b *builder) openSchedule(m *Match) {
	b.closeToDoc()

	var name string
	switch {
	case strings.Contains(strings.ToUpper(m.Number), "SCHEDULE"):
		name = strings.ToUpper(m.Number)
	case m.Number != "":
		name = "SCHEDULE " + strings.ToUpper(m.Number)
	default:
		name = strings.TrimRight(m.Text, " -–—:.")
	}

	b.schedule = &model.Schedule{Name: name}
	b.doc.Schedules = append(b.doc.Schedules, b.schedule)
}

func (b *builder) openPart(m *Match) {
	b.closeToDoc()

	number := strings.ToUpper(m.Number)
	if prev := lastPart(b.doc.Parts); prev != nil {
		b.checkOrdinal("part", prev.Number, number)
	}

	b.part = &model.Part{Number: number, Heading: m.Heading}
	b.doc.Parts = append(b.doc.Parts, b.part)
}

func (b *builder) openChapter(m *Match) {
	b.closeProvision()
	b.flushText()
	b.chapter = nil
	b.schedule = nil

	number := strings.ToUpper(m.Number)
	b.chapter = &model.Chapter{Number: number, Heading: m.Heading}

	if b.part != nil {
		if prev := lastChapter(b.part.Chapters); prev != nil {
			b.checkOrdinal("chapter", prev.Number, number)
		}
		b.part.Chapters = append(b.part.Chapters, b.chapter)
	} else {
		if prev := lastChapter(b.doc.Chapters); prev != nil {
			b.checkOrdinal("chapter", prev.Number, number)
		}
		b.doc.Chapters = append(b.doc.Chapters, b.chapter)
	}
}

// impliedProvisionKind resolves the kind of a bare numbered heading from the
// enclosing context: articles inside constitution parts, sections otherwise.
func (b *builder) impliedProvisionKind() model.ProvisionKind {
	if b.part != nil && b.chapter == nil {
		return model.ProvisionArticle
	}
	if b.parser.hint == Hint(model.DocumentTypeConstitution) {
		return model.ProvisionArticle
	}
	return model.ProvisionSection
}

func (b *builder) openProvision(m *Match, kind model.ProvisionKind) {
	b.closeProvision()

	prov := &model.Provision{Kind: kind, Number: m.Number}
	heading, body := splitHeadingBody(m.Heading)
	prov.Heading = heading

	siblings := b.provisionSiblings()
	if prev := lastProvision(siblings); prev != nil {
		b.checkProvisionNumber(prev.Number, prov.Number)
	}

	switch {
	case b.chapter != nil:
		b.chapter.Provisions = append(b.chapter.Provisions, prov)
	case b.part != nil:
		b.part.Provisions = append(b.part.Provisions, prov)
	default:
		b.doc.Provisions = append(b.doc.Provisions, prov)
	}
	b.provision = prov

	// Inline body after the heading dash, e.g. "1. Short title.—(1) This
	// Act ...": reprocess the remainder as its own line.
	if body != "" {
		if cm := Classify(b.parser.rules, body); cm != nil && cm.Rule.Kind == KindClause {
			b.openClause(cm)
		} else {
			b.leafText(body)
		}
	}
}

func (b *builder) provisionSiblings() []*model.Provision {
	switch {
	case b.chapter != nil:
		return b.chapter.Provisions
	case b.part != nil:
		return b.part.Provisions
	default:
		return b.doc.Provisions
	}
}

func (b *builder) openClause(m *Match) {
	if b.provision == nil {
		b.warnf(model.UnrecognizedStructure,
			"clause marker (%s) outside any provision; kept as text", m.Number)
		b.leafText(m.Text)
		return
	}

	b.flushText()
	b.block = nil

	marker := m.Number

	// Prefer continuing an open sibling sequence, innermost depth first.
	for d := len(b.clauses); d >= 1; d-- {
		lv := &b.levels[d-1]
		kind := classifyMarker(marker, lv.lastMarker, lv.kind)
		if kind == lv.kind {
			mo, lo := markerOrdinal(marker, kind), markerOrdinal(lv.lastMarker, kind)
			if mo < lo || (mo == lo && marker == lv.lastMarker) {
				b.warnf(model.NumberingAnomaly,
					"clause (%s) follows (%s) out of sequence", marker, lv.lastMarker)
			}
			b.closeClausesTo(d - 1)
			b.pushClause(d, marker, kind, m.Heading)
			return
		}
	}

	if len(b.clauses) == 0 {
		kind := classifyMarker(marker, "", "")
		b.pushClause(1, marker, kind, m.Heading)
		return
	}

	// New nesting level under the innermost open clause.
	depth := len(b.clauses) + 1
	kind := classifyMarker(marker, "", "")
	if !firstOfScheme(marker, kind) {
		b.warnf(model.MixedMarkerTypes,
			"marker (%s) does not continue any open %s sequence; treating as a new nesting level",
			marker, b.levels[len(b.clauses)-1].kind)
	}
	if depth > maxClauseDepth {
		// Depth cap: flatten to the deepest modeled level.
		depth = maxClauseDepth
		b.closeClausesTo(depth - 1)
	}
	b.pushClause(depth, marker, kind, m.Heading)
}

// pushClause opens a clause at the given depth; exactly depth-1 clauses must
// be open.
func (b *builder) pushClause(depth int, marker string, kind model.MarkerKind, text string) {
	clause := &model.Clause{
		Marker:     "(" + marker + ")",
		MarkerKind: kind,
	}
	if depth == 1 {
		b.provision.Clauses = append(b.provision.Clauses, clause)
	} else {
		parent := b.clauses[depth-2]
		parent.Children = append(parent.Children, clause)
	}
	b.clauses = append(b.clauses[:depth-1], clause)
	b.levels[depth-1] = levelState{kind: kind, lastMarker: marker}
	for d := depth; d < maxClauseDepth; d++ {
		b.levels[d] = levelState{}
	}
	if text != "" {
		b.buf.WriteString(text)
	}
}

// openBlock attaches a special block to the deepest open clause, or to the
// provision when no clause is open.
func (b *builder) openBlock(kind model.BlockKind, number, text string) {
	if b.provision == nil && len(b.clauses) == 0 {
		b.warnf(model.UnrecognizedStructure,
			"%s outside any provision; kept as text", kind)
		b.leafText(text)
		return
	}

	b.flushText()
	block := &model.SpecialBlock{Kind: kind, Number: number}
	if len(b.clauses) > 0 {
		top := b.clauses[len(b.clauses)-1]
		top.Blocks = append(top.Blocks, block)
	} else {
		b.provision.Blocks = append(b.provision.Blocks, block)
	}
	b.block = block
	if text != "" {
		b.buf.WriteString(text)
	}
}

// checkOrdinal warns when a container ordinal fails to increase. Gaps are
// allowed; regressions and duplicates are accepted as-is but flagged.
func (b *builder) checkOrdinal(what, prev, next string) {
	pv, nv := ordinalValue(prev), ordinalValue(next)
	if pv == 0 || nv == 0 {
		return
	}
	if nv < pv || (nv == pv && strings.EqualFold(prev, next)) {
		b.warnf(model.NumberingAnomaly,
			"%s %s follows %s out of sequence", what, next, prev)
	}
}

// checkProvisionNumber warns on provision number regressions. Compound
// suffix insertions like "2A" after "2" are a recognized renumbering pattern
// and not anomalous.
func (b *builder) checkProvisionNumber(prev, next string) {
	pv, nv := numericPrefix(prev), numericPrefix(next)
	if pv == 0 || nv == 0 {
		return
	}
	if nv < pv || (nv == pv && prev == next) {
		b.warnf(model.NumberingAnomaly,
			"provision %s follows %s out of sequence", next, prev)
	}
}

// finish closes all open containers bottom-to-top, resolves the document
// type, and applies the unstructured fallback when no container was opened.
// Matches alone do not count: clause markers and block lead-ins with no
// provision to anchor to are recovered as text, and a document made only of
// those must still fall back rather than emit an empty structured tree.
func (b *builder) finish() {
	if !b.doc.HasStructure() {
		b.doc.Metadata.Type = b.fallbackType()
		raw := strings.TrimSpace(b.buf.String())
		b.buf.Reset()
		b.doc.Preamble = ""
		b.doc.Unstructured = true
		b.doc.RawText = raw
		b.diags = []model.Diagnostic{model.Warningf(model.UnrecognizedStructure, 0,
			"no document structure recognized; emitting unstructured document")}
		return
	}

	b.closeToDoc()
	b.doc.Metadata.Type = b.resolveType()
}

func (b *builder) fallbackType() model.DocumentType {
	if b.parser.hint != HintAuto && b.parser.hint != "" {
		return model.DocumentType(b.parser.hint)
	}
	return model.DocumentTypeAct
}

// resolveType applies the caller hint, or classifies by the dominant
// top-level heading pattern: PART headings indicate a constitution, CHAPTER
// headings an act. A non-zero tie defaults to act with a diagnostic.
func (b *builder) resolveType() model.DocumentType {
	if b.parser.hint != HintAuto && b.parser.hint != "" {
		return model.DocumentType(b.parser.hint)
	}
	switch {
	case b.partHeads > b.chapterHeads:
		return model.DocumentTypeConstitution
	case b.chapterHeads > b.partHeads:
		return model.DocumentTypeAct
	case b.partHeads > 0:
		b.diags = append(b.diags, model.Warningf(model.DetectionAmbiguous, 0,
			"part and chapter headings equally frequent (%d each); defaulting to act", b.partHeads))
		return model.DocumentTypeAct
	default:
		return model.DocumentTypeAct
	}
}

// splitHeadingBody separates a provision heading from inline body text after
// the customary em-dash, e.g. "Short title.—(1) This Act ...".
func splitHeadingBody(s string) (heading, body string) {
	for _, dash := range []string{".—", ".--", "—", "--"} {
		if idx := strings.Index(s, dash); idx >= 0 {
			heading = strings.TrimRight(strings.TrimSpace(s[:idx]), ".")
			body = strings.TrimSpace(s[idx+len(dash):])
			return heading, body
		}
	}
	return strings.TrimRight(strings.TrimSpace(s), "."), ""
}

func lastPart(parts []*model.Part) *model.Part {
	if len(parts) == 0 {
		return nil
	}
	return parts[len(parts)-1]
}

func lastChapter(chapters []*model.Chapter) *model.Chapter {
	if len(chapters) == 0 {
		return nil
	}
	return chapters[len(chapters)-1]
}

func lastProvision(provisions []*model.Provision) *model.Provision {
	if len(provisions) == 0 {
		return nil
	}
	return provisions[len(provisions)-1]
}
