package scoring

import "github.com/fingerprinter/fingerprinter/internal/domain"

// Evaluate applies every configured category of rs to doc, in domain.Categories order.
// Categories without rules are omitted. Within a category sub-rules are OR-ed and the
// first matching one is recorded.
func Evaluate(rs *domain.RuleSet, doc *domain.DocumentSnapshot) []domain.CategoryResult {
	if doc == nil {
		doc = &domain.DocumentSnapshot{}
	}

	var results []domain.CategoryResult
	for _, cat := range domain.Categories {
		rules := rs.Rules(cat)
		if len(rules) == 0 {
			continue
		}

		res := domain.CategoryResult{Category: cat, RuleCount: len(rules)}
		for i := range rules {
			if evidence, ok := matchRule(rules[i], doc); ok {
				rule := rules[i]
				res.Matched = true
				res.Rule = &rule
				res.Evidence = evidence
				break
			}
		}
		results = append(results, res)
	}
	return results
}

func matchRule(r domain.Rule, doc *domain.DocumentSnapshot) (string, bool) {
	switch r.Category {
	case domain.CategoryHeader:
		return firstMatch(r.Regexp(), doc.HeaderValues(r.Key))
	case domain.CategoryMeta:
		for _, tag := range doc.MetaTags {
			if tag.Name == r.Key && Matches(r.Regexp(), tag.Content) {
				return tag.Content, true
			}
		}
	case domain.CategoryScript:
		return firstMatch(r.Regexp(), doc.ScriptSrcs)
	case domain.CategoryLink:
		return firstMatch(r.Regexp(), doc.LinkHrefs)
	}
	return "", false
}
