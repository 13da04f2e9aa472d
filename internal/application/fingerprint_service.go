package application

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fingerprinter/fingerprinter/internal/domain"
	"github.com/fingerprinter/fingerprinter/internal/domain/scoring"
	"github.com/fingerprinter/fingerprinter/internal/shared"
)

// FingerprintService orchestrates the per-URL pipeline:
// fetch → evaluate rules → score. URLs are independent of each other.
type FingerprintService struct {
	fetcher     domain.Fetcher
	rules       *domain.RuleSet
	concurrency int
	logger      *slog.Logger
}

// Option configures a FingerprintService.
type Option func(*FingerprintService)

// WithConcurrency bounds how many URLs are fetched at once.
func WithConcurrency(n int) Option {
	return func(s *FingerprintService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger used for fetch failures and match details.
func WithLogger(l *slog.Logger) Option {
	return func(s *FingerprintService) { s.logger = l }
}

// NewFingerprintService scores URLs against rules, fetching through fetcher.
func NewFingerprintService(fetcher domain.Fetcher, rules *domain.RuleSet, opts ...Option) *FingerprintService {
	s := &FingerprintService{
		fetcher:     fetcher,
		rules:       rules,
		concurrency: domain.DefaultConcurrency,
		logger:      shared.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run fingerprints every URL and returns one result per URL in input order.
// A failing URL never aborts the batch.
func (s *FingerprintService) Run(ctx context.Context, urls []string) []domain.URLResult {
	results := make([]domain.URLResult, len(urls))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = s.FingerprintURL(ctx, u)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return results
}

// FingerprintURL fetches and scores a single URL.
func (s *FingerprintService) FingerprintURL(ctx context.Context, url string) domain.URLResult {
	s.logger.Debug("fetching", "url", url)

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		err = asURLError(url, err)
		s.logger.Warn("fetch failed", "url", url, "error", err)
		return domain.URLResult{URL: url, Err: err}
	}

	score := scoring.Fingerprint(s.rules, doc)
	for _, c := range score.Categories {
		if c.Matched {
			s.logger.Debug("found "+string(c.Category),
				"url", url,
				"rule", c.Rule.Label(),
				"evidence", c.Evidence,
			)
		}
	}
	s.logger.Debug("scored", "url", url, "score", score.String())

	return domain.URLResult{URL: url, Score: &score}
}

// asURLError keeps the per-URL taxonomy: anything a fetcher returns that is not
// already a ParseError is reported as a FetchError.
func asURLError(url string, err error) error {
	var fe *domain.FetchError
	var pe *domain.ParseError
	if errors.As(err, &fe) || errors.As(err, &pe) {
		return err
	}
	return &domain.FetchError{URL: url, Err: err}
}
