package domain

import "fmt"

// BuiltinSource is the RuleSet.Source of the embedded default rule set.
const BuiltinSource = "builtin"

// RuleSet is the immutable, process-wide collection of heuristic rules.
// It is built once by NewRuleSet and only read afterwards.
type RuleSet struct {
	Source  string `json:"source"`
	Headers []Rule `json:"headers,omitempty"`
	Meta    []Rule `json:"meta,omitempty"`
	Script  *Rule  `json:"script,omitempty"`
	Link    *Rule  `json:"link,omitempty"`
}

// RuleSpec is an uncompiled sub-rule, in document order.
type RuleSpec struct {
	Key     string
	Pattern string
}

// RuleSetSpec is the decoded, not yet validated shape of a rule file.
type RuleSetSpec struct {
	Headers []RuleSpec
	Meta    []RuleSpec
	Script  *string
	Link    *string
}

// NewRuleSet validates spec and compiles every pattern.
// Any failure is returned as a *ConfigError naming source.
func NewRuleSet(source string, spec RuleSetSpec) (*RuleSet, error) {
	rs := &RuleSet{Source: source}

	var err error
	if rs.Headers, err = compileNamed(CategoryHeader, spec.Headers); err != nil {
		return nil, &ConfigError{Source: source, Err: err}
	}
	if rs.Meta, err = compileNamed(CategoryMeta, spec.Meta); err != nil {
		return nil, &ConfigError{Source: source, Err: err}
	}
	if rs.Script, err = compileSingle(CategoryScript, spec.Script); err != nil {
		return nil, &ConfigError{Source: source, Err: err}
	}
	if rs.Link, err = compileSingle(CategoryLink, spec.Link); err != nil {
		return nil, &ConfigError{Source: source, Err: err}
	}
	return rs, nil
}

func compileNamed(category Category, specs []RuleSpec) ([]Rule, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(specs))
	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		if s.Key == "" {
			return nil, fmt.Errorf("%s rule with empty name", category)
		}
		if seen[s.Key] {
			return nil, fmt.Errorf("duplicate %s rule %q", category, s.Key)
		}
		seen[s.Key] = true

		r, err := NewRule(category, s.Key, s.Pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func compileSingle(category Category, pattern *string) (*Rule, error) {
	if pattern == nil {
		return nil, nil
	}
	r, err := NewRule(category, "", *pattern)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Rules returns the rules configured for category, in evaluation order.
func (rs *RuleSet) Rules(category Category) []Rule {
	if rs == nil {
		return nil
	}
	switch category {
	case CategoryHeader:
		return rs.Headers
	case CategoryMeta:
		return rs.Meta
	case CategoryScript:
		if rs.Script != nil {
			return []Rule{*rs.Script}
		}
	case CategoryLink:
		if rs.Link != nil {
			return []Rule{*rs.Link}
		}
	}
	return nil
}

// Configured reports whether category has at least one rule.
func (rs *RuleSet) Configured(category Category) bool {
	return len(rs.Rules(category)) > 0
}

// Len returns the number of configured categories.
func (rs *RuleSet) Len() int {
	n := 0
	for _, c := range Categories {
		if rs.Configured(c) {
			n++
		}
	}
	return n
}

// RulesReport describes the effective rule set and where it came from.
type RulesReport struct {
	Rules    *RuleSet `json:"rules"`
	Revision string   `json:"revision,omitempty"`
}
