package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Category is one of the four artifact kinds a rule set can inspect.
type Category string

const (
	CategoryHeader Category = "header"
	CategoryMeta   Category = "meta"
	CategoryScript Category = "script"
	CategoryLink   Category = "link"
)

// Categories lists every category in evaluation order.
var Categories = []Category{
	CategoryHeader,
	CategoryMeta,
	CategoryScript,
	CategoryLink,
}

// Rule is a named pattern check against one kind of artifact.
type Rule struct {
	Category Category `json:"category"`
	Key      string   `json:"key,omitempty"`
	Pattern  string   `json:"pattern"`

	re *regexp.Regexp
}

// NewRule compiles pattern and returns a ready-to-evaluate rule.
func NewRule(category Category, key, pattern string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("compiling %s pattern %q: %w", category, pattern, err)
	}
	return Rule{Category: category, Key: key, Pattern: pattern, re: re}, nil
}

// Regexp returns the compiled pattern.
func (r Rule) Regexp() *regexp.Regexp { return r.re }

// Label identifies the rule in verbose output, e.g. "header X-Powered-By".
func (r Rule) Label() string {
	if r.Key == "" {
		return string(r.Category)
	}
	return string(r.Category) + " " + r.Key
}

// MetaTag is a single <meta name=... content=...> pair.
type MetaTag struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// DocumentSnapshot holds the artifacts fetched for one URL at one point in time.
type DocumentSnapshot struct {
	URL        string            `json:"url"`
	StatusCode int               `json:"status_code,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	MetaTags   []MetaTag         `json:"meta_tags,omitempty"`
	ScriptSrcs []string          `json:"script_srcs,omitempty"`
	LinkHrefs  []string          `json:"link_hrefs,omitempty"`
}

// Header looks up a header value by case-insensitive name. An exact-case key wins;
// otherwise the lowest of the case-variant keys is used.
func (d *DocumentSnapshot) Header(name string) (string, bool) {
	values := d.HeaderValues(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// HeaderValues returns the values of every header whose name equals name ignoring
// case: the exact-case key first, then the others ordered by key.
func (d *DocumentSnapshot) HeaderValues(name string) []string {
	var keys []string
	for k := range d.Headers {
		if k != name && strings.EqualFold(k, name) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var values []string
	if v, ok := d.Headers[name]; ok {
		values = append(values, v)
	}
	for _, k := range keys {
		values = append(values, d.Headers[k])
	}
	return values
}

// CategoryResult is the outcome of evaluating one category.
// Rule and Evidence are informational and do not affect scoring.
type CategoryResult struct {
	Category  Category `json:"category"`
	Matched   bool     `json:"matched"`
	RuleCount int      `json:"rule_count"`
	Rule      *Rule    `json:"rule,omitempty"`
	Evidence  string   `json:"evidence,omitempty"`
}

// ScoreResult is the aggregated score for one URL.
type ScoreResult struct {
	Matched    int              `json:"matched"`
	Total      int              `json:"total"`
	Categories []CategoryResult `json:"categories"`
}

// String renders the literal fraction, e.g. "3 / 4" or "0 / 0".
func (s ScoreResult) String() string {
	return fmt.Sprintf("%d / %d", s.Matched, s.Total)
}

// URLResult pairs an input URL with either its score or the error that prevented scoring.
type URLResult struct {
	URL   string       `json:"url"`
	Score *ScoreResult `json:"score,omitempty"`
	Err   error        `json:"-"`
}

// Failed reports whether the URL could not be scored.
func (r URLResult) Failed() bool { return r.Err != nil }

type urlResultJSON struct {
	URL        string           `json:"url"`
	Score      string           `json:"score,omitempty"`
	Matched    *int             `json:"matched,omitempty"`
	Total      *int             `json:"total,omitempty"`
	Categories []CategoryResult `json:"categories,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// MarshalJSON renders the score as its literal fraction next to the raw counts,
// and a failure as its error text.
func (r URLResult) MarshalJSON() ([]byte, error) {
	out := urlResultJSON{URL: r.URL}
	if r.Err != nil {
		out.Error = r.Err.Error()
	} else if r.Score != nil {
		out.Score = r.Score.String()
		out.Matched = &r.Score.Matched
		out.Total = &r.Score.Total
		out.Categories = r.Score.Categories
	}
	return json.Marshal(out)
}
