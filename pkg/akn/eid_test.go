package akn

import "testing"

func TestEIDAllocator(t *testing.T) {
	eids := newEIDAllocator()

	if got := eids.next("", abbrevPart); got != "part_1" {
		t.Errorf("first part = %q", got)
	}
	if got := eids.next("part_1", abbrevArticle); got != "part_1__art_1" {
		t.Errorf("first article = %q", got)
	}
	if got := eids.next("part_1", abbrevArticle); got != "part_1__art_2" {
		t.Errorf("second article = %q", got)
	}
	if got := eids.next("", abbrevPart); got != "part_2" {
		t.Errorf("second part = %q", got)
	}
	// Ordinals restart per parent.
	if got := eids.next("part_2", abbrevArticle); got != "part_2__art_1" {
		t.Errorf("article under second part = %q", got)
	}
	// Different abbreviations count independently under one parent.
	if got := eids.next("part_1__art_1", abbrevParagraph); got != "part_1__art_1__para_1" {
		t.Errorf("paragraph = %q", got)
	}
	if got := eids.next("part_1__art_1", abbrevProviso); got != "part_1__art_1__proviso_1" {
		t.Errorf("proviso = %q", got)
	}
}
