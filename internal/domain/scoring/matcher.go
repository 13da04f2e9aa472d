package scoring

import "regexp"

// Matches reports whether re finds a match anywhere in candidate.
// An empty candidate is evidence of absence and never matches.
func Matches(re *regexp.Regexp, candidate string) bool {
	if re == nil || candidate == "" {
		return false
	}
	return re.MatchString(candidate)
}

// firstMatch returns the first candidate matched by re.
func firstMatch(re *regexp.Regexp, candidates []string) (string, bool) {
	for _, c := range candidates {
		if Matches(re, c) {
			return c, true
		}
	}
	return "", false
}
