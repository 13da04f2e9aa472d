package htmlparser

import (
	"errors"
	"io"
	"strings"

	"github.com/fingerprinter/fingerprinter/internal/domain"
	"golang.org/x/net/html"
)

// Artifacts are the HTML elements a rule set can inspect.
type Artifacts struct {
	MetaTags   []domain.MetaTag
	ScriptSrcs []string
	LinkHrefs  []string
}

// Extract tokenizes r and collects <meta name content>, <script src> and <link href>
// in document order. Elements missing the relevant attribute are ignored.
func Extract(r io.Reader) (Artifacts, error) {
	var a Artifacts
	z := html.NewTokenizer(r)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return a, err
			}
			return a, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			a.collect(z.Token())
		}
	}
}

func (a *Artifacts) collect(tok html.Token) {
	switch tok.Data {
	case "meta":
		name, hasName := attr(tok, "name")
		content, hasContent := attr(tok, "content")
		if hasName && hasContent {
			a.MetaTags = append(a.MetaTags, domain.MetaTag{Name: name, Content: content})
		}
	case "script":
		if src, ok := attr(tok, "src"); ok {
			a.ScriptSrcs = append(a.ScriptSrcs, src)
		}
	case "link":
		if href, ok := attr(tok, "href"); ok {
			a.LinkHrefs = append(a.LinkHrefs, href)
		}
	}
}

// attr returns the value of the named attribute. Keys are already lower-cased by the tokenizer.
func attr(tok html.Token, key string) (string, bool) {
	for _, at := range tok.Attr {
		if at.Namespace == "" && at.Key == key {
			return strings.TrimSpace(at.Val), true
		}
	}
	return "", false
}
