package domain

import "fmt"

// ConfigError reports a malformed rule or settings file. It is fatal at startup.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FetchError reports a transport failure for one URL.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response body that could not be turned into a snapshot.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
