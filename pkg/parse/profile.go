package parse

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Profile is a YAML-loadable extension of the built-in pattern table for
// document families whose headings deviate from the standard conventions.
// Profile rules are tried before the built-in rule of the same kind; the
// overall precedence order of kinds is unchanged.
type Profile struct {
	Name     string        `yaml:"name"`
	Version  string        `yaml:"version"`
	Headings []ProfileRule `yaml:"headings"`
}

// ProfileRule describes one extra heading pattern. Pattern must anchor at
// the start of the line and expose the node number in NumberGroup (and the
// inline heading in HeadingGroup, when present).
type ProfileRule struct {
	Kind         string `yaml:"kind"`
	Pattern      string `yaml:"pattern"`
	NumberGroup  int    `yaml:"number_group"`
	HeadingGroup int    `yaml:"heading_group,omitempty"`

	compiled *regexp.Regexp
}

var profileKinds = map[string]LineKind{
	"part":      KindPart,
	"chapter":   KindChapter,
	"article":   KindArticle,
	"section":   KindSection,
	"provision": KindProvision,
	"schedule":  KindSchedule,
}

// LoadProfile reads and compiles a pattern profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile YAML: %w", err)
	}

	if err := profile.Compile(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Compile validates the profile and compiles its patterns. Returns an error
// naming the offending rule when a pattern does not compile or a kind is
// unknown.
func (p *Profile) Compile() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if len(p.Headings) == 0 {
		return fmt.Errorf("profile %s: at least one heading rule is required", p.Name)
	}

	for i := range p.Headings {
		rule := &p.Headings[i]
		if _, ok := profileKinds[rule.Kind]; !ok {
			return fmt.Errorf("profile %s: heading %d has unknown kind %q", p.Name, i, rule.Kind)
		}
		if rule.NumberGroup <= 0 {
			return fmt.Errorf("profile %s: heading %d (%s) needs a number_group", p.Name, i, rule.Kind)
		}
		compiled, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("profile %s: compiling %s pattern %q: %w", p.Name, rule.Kind, rule.Pattern, err)
		}
		rule.compiled = compiled
	}
	return nil
}

// mergedRules inserts the profile's compiled rules into a pattern table,
// each immediately before the first built-in rule of the same kind.
func (p *Profile) mergedRules(base []Rule) []Rule {
	merged := make([]Rule, 0, len(base)+len(p.Headings))

	byKind := make(map[LineKind][]Rule)
	for _, pr := range p.Headings {
		kind := profileKinds[pr.Kind]
		byKind[kind] = append(byKind[kind], Rule{
			Name:         fmt.Sprintf("%s:%s", p.Name, pr.Kind),
			Kind:         kind,
			Pattern:      pr.compiled,
			NumberGroup:  pr.NumberGroup,
			HeadingGroup: pr.HeadingGroup,
		})
	}

	for _, rule := range base {
		if extra, ok := byKind[rule.Kind]; ok {
			merged = append(merged, extra...)
			delete(byKind, rule.Kind)
		}
		merged = append(merged, rule)
	}

	// Kinds with no built-in counterpart go last.
	for _, extra := range byKind {
		merged = append(merged, extra...)
	}
	return merged
}
