package domain

import "context"

// Fetcher retrieves a single page and reduces it to a DocumentSnapshot.
// Failures are *FetchError or *ParseError.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*DocumentSnapshot, error)
}

// RuleLoader builds the process-wide RuleSet. An empty path selects the builtin rules.
type RuleLoader interface {
	Load(path string) (*RuleSet, error)
}

// RevisionReader reports the VCS revision of the repository containing a file.
type RevisionReader interface {
	Revision(path string) (string, error)
}
