package scoring

import "github.com/fingerprinter/fingerprinter/internal/domain"

// Score counts evaluated and matched categories. Results for categories without rules
// are ignored, so an empty rule set scores 0 / 0.
func Score(results []domain.CategoryResult) domain.ScoreResult {
	score := domain.ScoreResult{Categories: make([]domain.CategoryResult, 0, len(results))}
	for _, r := range results {
		if r.RuleCount == 0 {
			continue
		}
		score.Total++
		if r.Matched {
			score.Matched++
		}
		score.Categories = append(score.Categories, r)
	}
	return score
}

// Fingerprint evaluates doc against rs and scores the outcome.
func Fingerprint(rs *domain.RuleSet, doc *domain.DocumentSnapshot) domain.ScoreResult {
	return Score(Evaluate(rs, doc))
}
