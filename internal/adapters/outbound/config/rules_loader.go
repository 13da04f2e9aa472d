package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/fingerprinter/fingerprinter/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_rules.yaml
var defaultRules []byte

// metaShorthandKey is the sub-rule name used when `meta` is a bare pattern.
const metaShorthandKey = "generator"

// RulesLoader implements domain.RuleLoader for YAML (and therefore JSON) rule files.
type RulesLoader struct{}

// NewRulesLoader creates a RulesLoader.
func NewRulesLoader() *RulesLoader { return &RulesLoader{} }

// Load reads the rule file at path. An empty path returns the builtin rule set.
// Every failure is a *domain.ConfigError.
func (l *RulesLoader) Load(path string) (*domain.RuleSet, error) {
	if path == "" {
		return Parse(domain.BuiltinSource, defaultRules)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Source: path, Err: fmt.Errorf("reading rule file: %w", err)}
	}
	return Parse(path, data)
}

// Parse decodes a rule document and compiles it into a RuleSet.
func Parse(source string, data []byte) (*domain.RuleSet, error) {
	spec, err := decodeRuleSetSpec(data)
	if err != nil {
		return nil, &domain.ConfigError{Source: source, Err: err}
	}
	return domain.NewRuleSet(source, spec)
}

func decodeRuleSetSpec(data []byte) (domain.RuleSetSpec, error) {
	var spec domain.RuleSetSpec

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return spec, fmt.Errorf("parsing rule file: %w", err)
	}
	if len(doc.Content) == 0 {
		return spec, nil // empty document
	}

	root := resolve(doc.Content[0])
	if isNull(root) {
		return spec, nil
	}
	if root.Kind != yaml.MappingNode {
		return spec, fmt.Errorf("line %d: rule file must be a mapping of categories", root.Line)
	}

	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := resolve(root.Content[i]), resolve(root.Content[i+1])
		if seen[key.Value] {
			return spec, fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
		}
		seen[key.Value] = true

		var err error
		switch key.Value {
		case "headers":
			spec.Headers, err = decodeNamed(key.Value, val)
		case "meta":
			if val.Kind == yaml.ScalarNode && !isNull(val) {
				spec.Meta = []domain.RuleSpec{{Key: metaShorthandKey, Pattern: val.Value}}
			} else {
				spec.Meta, err = decodeNamed(key.Value, val)
			}
		case "script":
			spec.Script, err = decodePattern(key.Value, val)
		case "link":
			spec.Link, err = decodePattern(key.Value, val)
		default:
			err = fmt.Errorf("line %d: unknown category %q (valid: headers, meta, script, link)", key.Line, key.Value)
		}
		if err != nil {
			return spec, err
		}
	}
	return spec, nil
}

// decodeNamed reads a name -> pattern mapping, preserving document order.
func decodeNamed(field string, n *yaml.Node) ([]domain.RuleSpec, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %s must be a mapping of name to pattern", n.Line, field)
	}

	specs := make([]domain.RuleSpec, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, val := resolve(n.Content[i]), resolve(n.Content[i+1])
		if val.Kind != yaml.ScalarNode || isNull(val) {
			return nil, fmt.Errorf("line %d: %s.%s must be a pattern string", val.Line, field, name.Value)
		}
		specs = append(specs, domain.RuleSpec{Key: name.Value, Pattern: val.Value})
	}
	return specs, nil
}

func decodePattern(field string, n *yaml.Node) (*string, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: %s must be a single pattern string", n.Line, field)
	}
	p := n.Value
	return &p, nil
}

// resolve follows YAML aliases (*name) to their anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
