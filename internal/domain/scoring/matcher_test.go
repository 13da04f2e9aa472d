package scoring_test

import (
	"regexp"
	"testing"

	"github.com/fingerprinter/fingerprinter/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
)

func TestMatches_Unanchored(t *testing.T) {
	re := regexp.MustCompile("mod_rails|Phusion Passenger")
	assert.True(t, scoring.Matches(re, "Apache mod_rails/1.0"))
	assert.True(t, scoring.Matches(re, "nginx + Phusion Passenger 6.0"))
	assert.False(t, scoring.Matches(re, "nginx/1.25"))
}

func TestMatches_CaseSensitiveByDefault(t *testing.T) {
	re := regexp.MustCompile("authenticity_token")
	assert.False(t, scoring.Matches(re, "AUTHENTICITY_TOKEN"))

	ci := regexp.MustCompile("(?i)authenticity_token")
	assert.True(t, scoring.Matches(ci, "AUTHENTICITY_TOKEN"))
}

func TestMatches_EmptyCandidate(t *testing.T) {
	// Even a pattern that matches the empty string reports no match.
	re := regexp.MustCompile(".*")
	assert.False(t, scoring.Matches(re, ""))
}

func TestMatches_NilPattern(t *testing.T) {
	assert.False(t, scoring.Matches(nil, "anything"))
}
