package akn

import "fmt"

// eId abbreviations per element kind. Identifiers are path-based: the
// abbreviation and the 1-based ordinal among same-type siblings, joined to
// the parent's eId with "__". A second article inside the first part is
// "part_1__art_2".
const (
	abbrevPart         = "part"
	abbrevChapter      = "chp"
	abbrevArticle      = "art"
	abbrevSection      = "sec"
	abbrevParagraph    = "para"
	abbrevSubparagraph = "subpara"
	abbrevProviso      = "proviso"
	abbrevExplanation  = "expl"
	abbrevException    = "exc"
	abbrevIllustration = "ill"
	abbrevAttachment   = "att"
	abbrevTable        = "table"
)

// eidAllocator assigns stable path-based identifiers. Ordinals count
// same-type siblings under the same parent, so identifiers depend only on
// the document's fixed sibling order.
type eidAllocator struct {
	counts map[string]int
}

func newEIDAllocator() *eidAllocator {
	return &eidAllocator{counts: make(map[string]int)}
}

// next returns the eId for the next sibling of the given abbreviation under
// parent. An empty parent denotes a top-level element.
func (a *eidAllocator) next(parent, abbrev string) string {
	key := parent + "|" + abbrev
	a.counts[key]++
	if parent == "" {
		return fmt.Sprintf("%s_%d", abbrev, a.counts[key])
	}
	return fmt.Sprintf("%s__%s_%d", parent, abbrev, a.counts[key])
}
