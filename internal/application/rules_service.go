package application

import "github.com/fingerprinter/fingerprinter/internal/domain"

// RulesService loads the effective rule set and reports its provenance.
type RulesService struct {
	loader   domain.RuleLoader
	revision domain.RevisionReader
}

// NewRulesService creates a RulesService. revision may be nil.
func NewRulesService(loader domain.RuleLoader, revision domain.RevisionReader) *RulesService {
	return &RulesService{loader: loader, revision: revision}
}

// Load returns the rule set at path, or the builtin rules when path is empty.
func (s *RulesService) Load(path string) (*domain.RuleSet, error) {
	return s.loader.Load(path)
}

// Describe loads the rule set and, when it comes from a file inside a git
// repository, attaches the repository's HEAD revision.
func (s *RulesService) Describe(path string) (*domain.RulesReport, error) {
	rs, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}

	report := &domain.RulesReport{Rules: rs}
	if path != "" && s.revision != nil {
		if rev, err := s.revision.Revision(path); err == nil {
			report.Revision = rev
		}
	}
	return report, nil
}
