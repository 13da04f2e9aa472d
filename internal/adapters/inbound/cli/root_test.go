package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fingerprinter/fingerprinter/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const railsPage = `<!DOCTYPE html>
<html><head>
<meta name="csrf-param" content="authenticity_token">
<link rel="stylesheet" href="/assets/application-abc.css">
<script src="/assets/application-abc.js"></script>
</head><body></body></html>`

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rails", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "nginx + Phusion Passenger 6.0")
		_, _ = w.Write([]byte(railsPage))
	})
	mux.HandleFunc("/static", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "Apache mod_rails/1.0")
		_, _ = w.Write([]byte("<html></html>"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_DefaultTable(t *testing.T) {
	srv := newSite(t)

	out, _, err := run(t, srv.URL+"/rails", srv.URL+"/static")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Score")
	assert.Contains(t, lines[0], "URL")
	assert.Contains(t, lines[1], "4 / 4")
	assert.Contains(t, lines[1], srv.URL+"/rails")
	assert.Contains(t, lines[2], "1 / 4")
	assert.Contains(t, lines[2], srv.URL+"/static")
}

func TestRootCommand_Verbose(t *testing.T) {
	srv := newSite(t)

	out, logs, err := run(t, "-v", srv.URL+"/rails")
	require.NoError(t, err)
	assert.Contains(t, out, "Server: nginx + Phusion Passenger 6.0")
	assert.Contains(t, out, "/assets/application-abc.js")
	assert.Contains(t, logs, "found header")
}

func TestRootCommand_JSON(t *testing.T) {
	srv := newSite(t)

	out, _, err := run(t, "--json", srv.URL+"/static")
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, srv.URL+"/static", results[0]["url"])
	assert.Equal(t, "1 / 4", results[0]["score"])
	assert.EqualValues(t, 1, results[0]["matched"])
	assert.EqualValues(t, 4, results[0]["total"])
}

func TestRootCommand_FailedURLDoesNotFailRun(t *testing.T) {
	srv := newSite(t)
	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	out, _, err := run(t, "--timeout", "2s", downURL, srv.URL+"/static")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "ERROR")
	assert.Contains(t, lines[1], downURL)
	assert.Contains(t, lines[2], "1 / 4")
}

func TestRootCommand_RequiresURL(t *testing.T) {
	_, _, err := run(t)
	assert.Error(t, err)
}

func TestRootCommand_CustomRules(t *testing.T) {
	srv := newSite(t)
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headers:\n  Server: \"nginx\"\n"), 0644))

	out, _, err := run(t, "--rules", path, srv.URL+"/rails", srv.URL+"/static")
	require.NoError(t, err)
	assert.Contains(t, out, "1 / 1")
	assert.Contains(t, out, "0 / 1")
}

func TestRootCommand_BadRulesFileFails(t *testing.T) {
	srv := newSite(t)
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headers:\n  Server: \"(\"\n"), 0644))

	out, _, err := run(t, "--rules", path, srv.URL+"/rails")
	require.Error(t, err)
	assert.Empty(t, out, "no URL is fetched when the rule set is invalid")
}

func TestRootCommand_MissingRulesFileFails(t *testing.T) {
	_, _, err := run(t, "--rules", filepath.Join(t.TempDir(), "nope.yaml"), "http://example.invalid")
	assert.Error(t, err)
}

func TestRootCommand_MissingConfigFileFails(t *testing.T) {
	_, _, err := run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "http://example.invalid")
	assert.Error(t, err)
}

func TestRootCommand_InvalidConcurrencyFails(t *testing.T) {
	_, _, err := run(t, "--concurrency", "0", "http://example.invalid")
	assert.Error(t, err)
}

func TestRootCommand_SettingsFile(t *testing.T) {
	srv := newSite(t)
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("link: \"/assets/\"\n"), 0644))
	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("rules: "+rules+"\ntimeout: 3s\n"), 0644))

	out, _, err := run(t, "--config", settings, srv.URL+"/rails")
	require.NoError(t, err)
	assert.Contains(t, out, "1 / 1")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fingerprinter")
}
