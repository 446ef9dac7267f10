package parse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coolbeans/samhita/pkg/model"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing profile: %v", err)
	}
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
name: regulations
version: "1"
headings:
  - kind: section
    pattern: '^Regulation\s+(\d+[A-Z]?)\.?\s*[-:]?\s*(.*)$'
    number_group: 1
    heading_group: 2
`)
	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if profile.Name != "regulations" || len(profile.Headings) != 1 {
		t.Fatalf("profile = %+v", profile)
	}

	doc, diags, err := New(
		WithProfile(profile),
		WithHint(Hint(model.DocumentTypeRegulation)),
	).Parse(strings.NewReader("Regulation 4 - Fees payable on registration.\nEvery application shall be accompanied by the prescribed fee.\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(doc.Provisions) != 1 {
		t.Fatalf("provisions = %d, want 1", len(doc.Provisions))
	}
	prov := doc.Provisions[0]
	if prov.Kind != model.ProvisionSection || prov.Number != "4" {
		t.Errorf("provision = %q %q", prov.Kind, prov.Number)
	}
	if prov.Heading != "Fees payable on registration" {
		t.Errorf("heading = %q", prov.Heading)
	}
}

func TestProfileRulePrecedence(t *testing.T) {
	profile := &Profile{
		Name: "override",
		Headings: []ProfileRule{
			// Claims PART headings with an arabic number, which the
			// built-in part rule does not accept.
			{Kind: "part", Pattern: `^PART\s+(\d+)\s*[-:]?\s*(.*)$`, NumberGroup: 1, HeadingGroup: 2},
		},
	}
	if err := profile.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	rules := profile.mergedRules(DefaultRules())
	m := Classify(rules, "PART 2 - REGISTRATION OF DOCUMENTS")
	if m == nil {
		t.Fatal("no match for profile part heading")
	}
	if m.Rule.Name != "override:part" || m.Rule.Kind != KindPart {
		t.Errorf("matched rule = %q (%q)", m.Rule.Name, m.Rule.Kind)
	}
	if m.Number != "2" {
		t.Errorf("number = %q, want 2", m.Number)
	}

	// Built-in rules still win for lines the profile does not claim.
	m = Classify(rules, "PART II - REGISTRATION OF DOCUMENTS")
	if m == nil || m.Rule.Name != "part-heading" {
		t.Errorf("built-in part rule not reached: %+v", m)
	}
}

func TestProfileCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr string
	}{
		{
			name:    "missing name",
			profile: Profile{Headings: []ProfileRule{{Kind: "part", Pattern: `^X (\d+)`, NumberGroup: 1}}},
			wantErr: "name is required",
		},
		{
			name:    "no headings",
			profile: Profile{Name: "empty"},
			wantErr: "at least one heading rule",
		},
		{
			name:    "unknown kind",
			profile: Profile{Name: "bad", Headings: []ProfileRule{{Kind: "stanza", Pattern: `^X (\d+)`, NumberGroup: 1}}},
			wantErr: `unknown kind "stanza"`,
		},
		{
			name:    "missing number group",
			profile: Profile{Name: "bad", Headings: []ProfileRule{{Kind: "part", Pattern: `^X (\d+)`}}},
			wantErr: "needs a number_group",
		},
		{
			name:    "bad pattern",
			profile: Profile{Name: "bad", Headings: []ProfileRule{{Kind: "part", Pattern: `^X ([`, NumberGroup: 1}}},
			wantErr: "compiling part pattern",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Compile()
			if err == nil {
				t.Fatal("Compile succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadProfileBadFile(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadProfile succeeded on a missing file")
	}

	path := writeProfile(t, "{not yaml: [")
	if _, err := LoadProfile(path); err == nil {
		t.Error("LoadProfile succeeded on malformed YAML")
	}
}
