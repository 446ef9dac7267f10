package akn

import (
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  plain  text  ", "plain text"},
		{"line one\nline two", "line one line two"},
		{"tabs\t\tand   spaces", "tabs and spaces"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeText(tt.in); got != tt.want {
			t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndentEscapesContent(t *testing.T) {
	root := element("root")
	appendTextElement(root, "p", `clause (a) & <b> "quoted"`)
	setAttr(root, "title", `provisos & "exceptions"`)

	out := string(Indent(root, "  "))
	if !strings.Contains(out, "clause (a) &amp; &lt;b&gt;") {
		t.Errorf("text not escaped: %s", out)
	}
	if !strings.Contains(out, `title="provisos &amp; &#34;exceptions&#34;"`) {
		t.Errorf("attribute not escaped: %s", out)
	}
	if err := CheckWellFormed([]byte(out)); err != nil {
		t.Errorf("escaped output not well formed: %v", err)
	}
}

func TestIndentLayout(t *testing.T) {
	root := element("body")
	sec := appendElement(root, "section")
	setAttr(sec, "eId", "sec_1")
	appendTextElement(sec, "num", "1")
	appendElement(sec, "empty")

	got := string(Indent(root, "  "))
	want := "<body>\n" +
		"  <section eId=\"sec_1\">\n" +
		"    <num>1</num>\n" +
		"    <empty/>\n" +
		"  </section>\n" +
		"</body>\n"
	if got != want {
		t.Errorf("Indent() =\n%s\nwant\n%s", got, want)
	}
}

func TestCheckWellFormed(t *testing.T) {
	if err := CheckWellFormed([]byte("<a><b>text</b></a>")); err != nil {
		t.Errorf("valid XML rejected: %v", err)
	}
	if err := CheckWellFormed([]byte("<a><b></a>")); err == nil {
		t.Error("mismatched tags accepted")
	}
	if err := CheckWellFormed([]byte("<a>&undefined;</a>")); err == nil {
		t.Error("undefined entity accepted")
	}
}
