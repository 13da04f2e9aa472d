package htmlparser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/htmlparser"
	"github.com/fingerprinter/fingerprinter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const railsPage = `<!DOCTYPE html>
<html>
<head>
  <title>Shop</title>
  <meta charset="utf-8">
  <meta name="csrf-param" content="authenticity_token" />
  <meta name="csrf-token" content="abc123">
  <META NAME="viewport" CONTENT="width=device-width">
  <meta property="og:title" content="Shop">
  <link rel="stylesheet" href="/assets/application-1a2b.css" media="all">
  <link rel="icon">
  <script src="/assets/application-3c4d.js"></script>
  <script>var x = "<script src='/not/a/tag.js'>";</script>
</head>
<body>
  <script src="https://cdn.example.com/analytics.js" async></script>
</body>
</html>`

func TestExtract_MetaTags(t *testing.T) {
	a, err := htmlparser.Extract(strings.NewReader(railsPage))
	require.NoError(t, err)

	assert.Equal(t, []domain.MetaTag{
		{Name: "csrf-param", Content: "authenticity_token"},
		{Name: "csrf-token", Content: "abc123"},
		{Name: "viewport", Content: "width=device-width"},
	}, a.MetaTags)
}

func TestExtract_ScriptSrcs(t *testing.T) {
	a, err := htmlparser.Extract(strings.NewReader(railsPage))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/assets/application-3c4d.js",
		"https://cdn.example.com/analytics.js",
	}, a.ScriptSrcs)
}

func TestExtract_LinkHrefs(t *testing.T) {
	a, err := htmlparser.Extract(strings.NewReader(railsPage))
	require.NoError(t, err)

	assert.Equal(t, []string{"/assets/application-1a2b.css"}, a.LinkHrefs)
}

func TestExtract_EmptyBody(t *testing.T) {
	a, err := htmlparser.Extract(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, a.MetaTags)
	assert.Empty(t, a.ScriptSrcs)
	assert.Empty(t, a.LinkHrefs)
}

func TestExtract_NotHTML(t *testing.T) {
	a, err := htmlparser.Extract(strings.NewReader(`{"status":"ok"}`))
	require.NoError(t, err)
	assert.Empty(t, a.ScriptSrcs)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestExtract_ReaderError(t *testing.T) {
	_, err := htmlparser.Extract(failingReader{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
